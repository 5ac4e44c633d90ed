package models

// NamedRecord is a row of a table that carries nothing but a key and a name.
type NamedRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Director represents a film director.
type Director = NamedRecord

// Genre represents a movie genre.
type Genre = NamedRecord

// CreateNamedRequest is the request body for creating a director or genre.
// ID is optional; when omitted the database assigns one.
type CreateNamedRequest struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

// Validate checks that the required fields are present.
func (r CreateNamedRequest) Validate() error {
	if r.Name == nil {
		return Invalid("name is required")
	}
	return nil
}

// UpdateNamedRequest is the request body for replacing a director or genre.
type UpdateNamedRequest struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

// Validate checks that the required fields are present.
func (r UpdateNamedRequest) Validate() error {
	if r.ID == nil || r.Name == nil {
		return Invalid("id and name are required")
	}
	return nil
}

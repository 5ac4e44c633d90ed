package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-service/internal/models"
)

const maxBodyBytes = 1_048_576

// readJSON decodes the request body into dst, rejecting unknown fields and
// trailing data. Failures are ErrInvalidInput with a client-facing reason.
func readJSON(c fiber.Ctx, dst any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return models.Invalid("body must not be empty")
	}
	if len(body) > maxBodyBytes {
		return models.Invalid("body must not be larger than %d bytes", maxBodyBytes)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return models.Invalid("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return models.Invalid("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return models.Invalid("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return models.Invalid("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return models.Invalid("body contains unknown key %s", fieldName)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return models.Invalid("%s", err.Error())
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return models.Invalid("body must only contain a single JSON value")
	}
	return nil
}

// parseKey parses a key that fits the INTEGER key columns.
func parseKey(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// readIDParam reads an integer path parameter.
func readIDParam(c fiber.Ctx, name string) (int, error) {
	id, err := parseKey(c.Params(name))
	if err != nil {
		return 0, models.Invalid("invalid %s parameter", name)
	}
	return id, nil
}

// readOptionalInt reads an integer query parameter. An absent or empty
// parameter gives nil; a value that is not an integer, or does not fit a
// key column, reports ok=false.
func readOptionalInt(c fiber.Ctx, key string) (v *int, ok bool) {
	s := c.Query(key)
	if s == "" {
		return nil, true
	}
	i, err := parseKey(s)
	if err != nil {
		return nil, false
	}
	return &i, true
}

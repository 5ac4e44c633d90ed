// Package docs holds the OpenAPI description served at /swagger.
package docs

import _ "embed"

//go:embed swagger.yaml
var SwaggerYAML []byte

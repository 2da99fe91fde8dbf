// Package api holds the OpenAPI description served under /swagger.
package api

import _ "embed"

//go:embed swagger.yaml
var OpenAPI []byte

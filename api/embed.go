// Package api embeds the OpenAPI document served and enforced by chat-server.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPISpec []byte

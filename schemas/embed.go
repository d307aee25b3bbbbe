// Package schemas holds the JSON Schemas for the enhancement API payloads.
package schemas

import _ "embed"

// EnhancementRequest is the schema for the body of POST /api/enhance.
//
//go:embed enhancement_request.schema.json
var EnhancementRequest []byte

// EnhancementResponse is the schema for a successful enhancement response.
//
//go:embed enhancement_response.schema.json
var EnhancementResponse []byte

package generate

import "encoding/json"

const (
	ServiceName  = "testgen.v1.GenerateService"
	MethodName   = "Generate"
	FullMethod   = "/" + ServiceName + "/" + MethodName
	ConnectRoute = FullMethod
)

// GenerateRequest is the RPC input; it mirrors the HTTP body.
type GenerateRequest struct {
	Requirement string `json:"requirement,omitempty"`
}

// GenerateResponse is the model JSON as produced for the HTTP endpoint.
type GenerateResponse = json.RawMessage

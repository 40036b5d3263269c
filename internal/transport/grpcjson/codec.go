// Package grpcjson lets gRPC carry plain JSON messages instead of protobuf.
package grpcjson

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Name is the content-subtype clients select, as in application/grpc+json.
const Name = "json"

// Codec is a JSON codec for gRPC unary calls.
type Codec struct{}

func (Codec) Name() string                    { return Name }
func (Codec) Marshal(v any) ([]byte, error)   { return json.Marshal(v) }
func (Codec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

// Register registers the codec globally; safe to call multiple times.
func Register() { encoding.RegisterCodec(Codec{}) }

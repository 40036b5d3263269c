package generate

import (
	"errors"

	gensvc "github.com/blastlab/testgen/internal/service/generate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError maps service errors to Connect error codes and messages.
func mapError(err error) (code, message string) {
	if err == nil {
		return "ok", ""
	}
	if errors.Is(err, gensvc.ErrRequirementRequired) {
		return "invalid_argument", "Requirement is required"
	}
	return "internal", "Failed to generate test cases: " + err.Error()
}

// grpcError converts a service error into a gRPC status error.
func grpcError(err error) error {
	code, msg := mapError(err)
	switch code {
	case "ok":
		return nil
	case "invalid_argument":
		return status.Error(codes.InvalidArgument, msg)
	default:
		return status.Error(codes.Internal, msg)
	}
}

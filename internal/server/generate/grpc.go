package generate

import (
	"context"

	gensvc "github.com/blastlab/testgen/internal/service/generate"
	grpcjson "github.com/blastlab/testgen/internal/transport/grpcjson"
	"google.golang.org/grpc"
)

// GenerateServiceServer is the server API for testgen.v1.GenerateService.
type GenerateServiceServer interface {
	Generate(ctx context.Context, req *GenerateRequest) (GenerateResponse, error)
}

// Service exposes the generator as testgen.v1.GenerateService.
type Service struct {
	Generator gensvc.Generator
}

// Register registers the service on the provided gRPC server.
func (s *Service) Register(grpcServer *grpc.Server) {
	// ensure codec registered once
	grpcjson.Register()
	grpcServer.RegisterService(&grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*GenerateServiceServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: MethodName, Handler: s.handleGenerate},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "proto/testgen/v1/generate.proto",
	}, s)
}

// handleGenerate is the unary handler for Generate.
func (s *Service) handleGenerate(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GenerateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	h := func(ctx context.Context, req any) (any, error) {
		return s.Generate(ctx, req.(*GenerateRequest))
	}
	if interceptor == nil {
		return h(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FullMethod,
	}
	return interceptor(ctx, in, info, h)
}

// Generate runs the generator and converts its errors to gRPC statuses.
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (GenerateResponse, error) {
	out, err := s.Generator.Generate(ctx, req.Requirement)
	if err != nil {
		return nil, grpcError(err)
	}
	return out, nil
}

// Package v1alpha1 serves movement costs over gRPC.
//
// Messages travel as google.protobuf.Struct so the host plugin can speak the
// service without generated stubs. The Struct holds the JSON form of the
// request and response types in this package.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "massaffect.movement.v1alpha1.MoveCostService"

// Method names
const (
	MethodTicksPerMove        = "TicksPerMove"
	MethodTicksPerMoveForPawn = "TicksPerMoveForPawn"
	MethodPutPawn             = "PutPawn"
	MethodGetPawn             = "GetPawn"
	MethodDeletePawn          = "DeletePawn"
)

// FullMethod returns the invoke path for a method of the service
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// MoveCostServiceServer is the server API for the move cost service
type MoveCostServiceServer interface {
	TicksPerMove(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	TicksPerMoveForPawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	PutPawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetPawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeletePawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the move cost service for grpc.Server
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MoveCostServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodTicksPerMove, MoveCostServiceServer.TicksPerMove),
		unary(MethodTicksPerMoveForPawn, MoveCostServiceServer.TicksPerMoveForPawn),
		unary(MethodPutPawn, MoveCostServiceServer.PutPawn),
		unary(MethodGetPawn, MoveCostServiceServer.GetPawn),
		unary(MethodDeletePawn, MoveCostServiceServer.DeletePawn),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterMoveCostServiceServer registers the service with a gRPC server
func RegisterMoveCostServiceServer(s grpc.ServiceRegistrar, srv MoveCostServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryCall func(MoveCostServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}

			server := srv.(MoveCostServiceServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*structpb.Struct))
			})
		},
	}
}

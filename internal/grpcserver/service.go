package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "carcatalog.CatalogService"

// CatalogServiceServer is the server API of carcatalog.CatalogService.
type CatalogServiceServer interface {
	ListCars(context.Context, *ListCarsRequest) (*ListCarsResponse, error)
	GetCar(context.Context, *GetCarRequest) (*GetCarResponse, error)
	DistinctValues(context.Context, *DistinctValuesRequest) (*DistinctValuesResponse, error)
	MaxSpeed(context.Context, *MaxSpeedRequest) (*MaxSpeedResponse, error)
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&catalogServiceDesc, srv)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCars", Handler: unary(func(s CatalogServiceServer, ctx context.Context, in *ListCarsRequest) (any, error) {
			return s.ListCars(ctx, in)
		})},
		{MethodName: "GetCar", Handler: unary(func(s CatalogServiceServer, ctx context.Context, in *GetCarRequest) (any, error) {
			return s.GetCar(ctx, in)
		})},
		{MethodName: "DistinctValues", Handler: unary(func(s CatalogServiceServer, ctx context.Context, in *DistinctValuesRequest) (any, error) {
			return s.DistinctValues(ctx, in)
		})},
		{MethodName: "MaxSpeed", Handler: unary(func(s CatalogServiceServer, ctx context.Context, in *MaxSpeedRequest) (any, error) {
			return s.MaxSpeed(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "carcatalog/catalog.proto",
}

// unary adapts a typed method call to grpc's method handler signature.
func unary[Req any](call func(CatalogServiceServer, context.Context, *Req) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(CatalogServiceServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(ctx)}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		})
	}
}

func fullMethod(ctx context.Context) string {
	if m, ok := grpc.Method(ctx); ok {
		return m
	}
	return "/" + serviceName
}

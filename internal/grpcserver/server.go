// Package grpcserver serves the catalog query engine over gRPC.
package grpcserver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carcatalog/internal/catalog"
	"carcatalog/pkg/logger"
)

type Server struct {
	Engine *catalog.Engine
}

func NewServer(engine *catalog.Engine) *Server {
	return &Server{Engine: engine}
}

// New returns a grpc.Server with the catalog service and request logging installed.
func New(engine *catalog.Engine, log *slog.Logger, opts ...grpc.ServerOption) *grpc.Server {
	if log == nil {
		log = logger.Get()
	}
	opts = append(opts, grpc.ChainUnaryInterceptor(LoggingInterceptor(log)))
	gs := grpc.NewServer(opts...)
	RegisterCatalogServiceServer(gs, NewServer(engine))
	return gs
}

func (s *Server) ListCars(ctx context.Context, req *ListCarsRequest) (*ListCarsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	f := catalog.Filter{
		Country:               req.Country,
		Segment:               req.Segment,
		MinEngineDisplacement: req.MinEngineDisplacement,
		MinEngineHorsepower:   req.MinEngineHorsepower,
		MinMaxSpeed:           req.MinMaxSpeed,
		Search:                req.Search,
		IsFull:                req.IsFull,
		Year:                  req.Year,
		BodyStyle:             req.BodyStyle,
	}
	return &ListCarsResponse{Cars: s.Engine.List(f)}, nil
}

func (s *Server) GetCar(ctx context.Context, req *GetCarRequest) (*GetCarResponse, error) {
	if req == nil || req.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	rec, ok := s.Engine.Get(req.ID)
	if !ok {
		return nil, status.Error(codes.NotFound, "car not found")
	}
	return &GetCarResponse{Car: rec}, nil
}

func (s *Server) DistinctValues(ctx context.Context, req *DistinctValuesRequest) (*DistinctValuesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	attr, err := catalog.ParseAttribute(req.Attribute)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	values, err := s.Engine.DistinctValues(attr)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &DistinctValuesResponse{Values: values}, nil
}

func (s *Server) MaxSpeed(ctx context.Context, req *MaxSpeedRequest) (*MaxSpeedResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	avg, ok, err := s.Engine.MaxSpeed(catalog.MaxSpeedQuery{Model: req.Model, Brand: req.Brand})
	if errors.Is(err, catalog.ErrInvalidQueryCombination) {
		return nil, status.Error(codes.InvalidArgument, "specify either model or brand, not both")
	}
	if err != nil {
		return nil, status.Error(codes.Internal, "max speed failed")
	}
	if !ok {
		return nil, status.Error(codes.NotFound, "no matching cars")
	}
	return &MaxSpeedResponse{MaxSpeed: avg}, nil
}

func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Info("grpc request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"latency", time.Since(start).String(),
		)
		return resp, err
	}
}

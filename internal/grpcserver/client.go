package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

// Client is a thin typed wrapper over a connection to carcatalog.CatalogService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) ListCars(ctx context.Context, in *ListCarsRequest, opts ...grpc.CallOption) (*ListCarsResponse, error) {
	out := new(ListCarsResponse)
	if err := c.invoke(ctx, "ListCars", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCar(ctx context.Context, in *GetCarRequest, opts ...grpc.CallOption) (*GetCarResponse, error) {
	out := new(GetCarResponse)
	if err := c.invoke(ctx, "GetCar", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DistinctValues(ctx context.Context, in *DistinctValuesRequest, opts ...grpc.CallOption) (*DistinctValuesResponse, error) {
	out := new(DistinctValuesResponse)
	if err := c.invoke(ctx, "DistinctValues", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MaxSpeed(ctx context.Context, in *MaxSpeedRequest, opts ...grpc.CallOption) (*MaxSpeedResponse, error) {
	out := new(MaxSpeedResponse)
	if err := c.invoke(ctx, "MaxSpeed", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...)
}

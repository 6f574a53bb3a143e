package grpcserver

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"carcatalog/internal/catalog"
	"carcatalog/pkg/logger"
	"carcatalog/pkg/models"
)

func strp(s string) *string { return &s }

func newTestClient(t *testing.T) *Client {
	t.Helper()

	ds := models.NewDataset()
	ds.Brands[1] = models.Brand{ID: 1, Title: "Toyota", Country: "Japan"}
	ds.Brands[2] = models.Brand{ID: 2, Title: "BMW", Country: "Germany"}
	ds.Cars = []models.RawCar{
		{ID: 1, BrandID: 1, Segment: "C", Model: "Corolla"},
		{ID: 2, BrandID: 1, Segment: "D", Model: "Camry"},
		{ID: 3, BrandID: 2, Segment: "D", Model: "X3"},
	}
	ds.Specs[1] = models.RawSpec{ID: 1, FuelType: models.FuelPetrol, MaxSpeed: 180, BodyStyle: "Sedan"}
	ds.Specs[2] = models.RawSpec{ID: 2, FuelType: models.FuelHybrid, MaxSpeed: 200, BodyStyle: "Sedan"}
	ds.Specs[3] = models.RawSpec{ID: 3, FuelType: models.FuelDiesel, MaxSpeed: 215, BodyStyle: "SUV"}
	records, _ := catalog.Build(ds)
	store := catalog.NewStore()
	store.Load(records)

	lis := bufconn.Listen(1 << 20)
	gs := New(catalog.NewEngine(store), logger.Discard())
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn)
}

func TestGRPCListCars(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	resp, err := c.ListCars(ctx, &ListCarsRequest{Country: strp("Japan")})
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if len(resp.Cars) != 2 || resp.Cars[0].Model != "Corolla" {
		t.Fatalf("cars = %+v", resp.Cars)
	}

	resp, err = c.ListCars(ctx, &ListCarsRequest{Country: strp("France")})
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if resp.Cars == nil || len(resp.Cars) != 0 {
		t.Fatalf("expected empty list, got %+v", resp.Cars)
	}
}

func TestGRPCGetCar(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	resp, err := c.GetCar(ctx, &GetCarRequest{ID: 3})
	if err != nil {
		t.Fatalf("GetCar: %v", err)
	}
	if resp.Car.Brand != "BMW" {
		t.Fatalf("car = %+v", resp.Car)
	}

	if _, err := c.GetCar(ctx, &GetCarRequest{ID: 42}); status.Code(err) != codes.NotFound {
		t.Fatalf("GetCar(42) code = %v, want NotFound", status.Code(err))
	}
	if _, err := c.GetCar(ctx, &GetCarRequest{}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("GetCar(0) code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestGRPCDistinctValues(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	resp, err := c.DistinctValues(ctx, &DistinctValuesRequest{Attribute: "body-styles"})
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	if len(resp.Values) != 2 || resp.Values[0] != "Sedan" || resp.Values[1] != "SUV" {
		t.Fatalf("values = %v", resp.Values)
	}

	_, err = c.DistinctValues(ctx, &DistinctValuesRequest{Attribute: "colour"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("unknown attribute code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestGRPCMaxSpeed(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	resp, err := c.MaxSpeed(ctx, &MaxSpeedRequest{Brand: strp("Toyota")})
	if err != nil {
		t.Fatalf("MaxSpeed: %v", err)
	}
	if resp.MaxSpeed != 190 {
		t.Fatalf("max speed = %v, want 190", resp.MaxSpeed)
	}

	tests := []struct {
		name string
		req  *MaxSpeedRequest
		code codes.Code
	}{
		{"both", &MaxSpeedRequest{Brand: strp("Toyota"), Model: strp("Camry")}, codes.InvalidArgument},
		{"unknown brand", &MaxSpeedRequest{Brand: strp("Lada")}, codes.NotFound},
		{"neither", &MaxSpeedRequest{}, codes.NotFound},
	}
	for _, tt := range tests {
		if _, err := c.MaxSpeed(ctx, tt.req); status.Code(err) != tt.code {
			t.Errorf("%s: code = %v, want %v", tt.name, status.Code(err), tt.code)
		}
	}
}

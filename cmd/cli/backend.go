package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"carcatalog/internal/catalog"
	"carcatalog/internal/grpcserver"
	"carcatalog/pkg/models"
)

// backend is what the commands talk to; HTTP by default, gRPC with --grpc.
type backend interface {
	ListCars(ctx context.Context, f catalog.Filter) ([]models.CatalogRecord, error)
	GetCar(ctx context.Context, id int64) (models.CatalogRecord, error)
	DistinctValues(ctx context.Context, attribute string) ([]string, error)
	MaxSpeed(ctx context.Context, q catalog.MaxSpeedQuery) (float64, error)
	Close() error
}

func newBackend() (backend, error) {
	if grpcAddr != "" {
		conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("grpc dial %s: %w", grpcAddr, err)
		}
		return &grpcBackend{conn: conn, client: grpcserver.NewClient(conn), timeout: timeout}, nil
	}
	return &httpBackend{
		baseURL: strings.TrimRight(apiURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type httpBackend struct {
	baseURL string
	client  *http.Client
}

func (b *httpBackend) ListCars(ctx context.Context, f catalog.Filter) ([]models.CatalogRecord, error) {
	var out []models.CatalogRecord
	err := doJSON(ctx, b.client, b.baseURL+"/api/cars?"+carsQuery(f).Encode(), &out)
	return out, err
}

func (b *httpBackend) GetCar(ctx context.Context, id int64) (models.CatalogRecord, error) {
	var out models.CatalogRecord
	err := doJSON(ctx, b.client, b.baseURL+"/api/cars/"+strconv.FormatInt(id, 10), &out)
	return out, err
}

var attributeRoutes = map[catalog.Attribute]string{
	catalog.AttrFuelType:       "fuel-types",
	catalog.AttrBodyStyle:      "body-styles",
	catalog.AttrCylinderType:   "engine-types",
	catalog.AttrWheelDriveType: "wheel-drives",
	catalog.AttrGearboxType:    "gearboxes",
}

func (b *httpBackend) DistinctValues(ctx context.Context, attribute string) ([]string, error) {
	attr, err := catalog.ParseAttribute(attribute)
	if err != nil {
		return nil, err
	}
	var out []string
	err = doJSON(ctx, b.client, b.baseURL+"/api/"+attributeRoutes[attr], &out)
	return out, err
}

func (b *httpBackend) MaxSpeed(ctx context.Context, q catalog.MaxSpeedQuery) (float64, error) {
	v := url.Values{}
	if q.Model != nil {
		v.Set("model", *q.Model)
	}
	if q.Brand != nil {
		v.Set("brand", *q.Brand)
	}
	var out float64
	err := doJSON(ctx, b.client, b.baseURL+"/api/max-speed?"+v.Encode(), &out)
	return out, err
}

func (b *httpBackend) Close() error { return nil }

// carsQuery encodes f with the camelCase parameter names the HTTP API expects.
func carsQuery(f catalog.Filter) url.Values {
	v := url.Values{}
	setStr := func(k string, p *string) {
		if p != nil {
			v.Set(k, *p)
		}
	}
	setInt := func(k string, p *int) {
		if p != nil {
			v.Set(k, strconv.Itoa(*p))
		}
	}
	setStr("country", f.Country)
	setStr("segment", f.Segment)
	setStr("search", f.Search)
	setStr("bodyStyle", f.BodyStyle)
	setInt("minEngineDisplacement", f.MinEngineDisplacement)
	setInt("minEngineHorsepower", f.MinEngineHorsepower)
	setInt("minMaxSpeed", f.MinMaxSpeed)
	setInt("year", f.Year)
	if f.IsFull != nil {
		v.Set("isFull", strconv.FormatBool(*f.IsFull))
	}
	return v
}

type grpcBackend struct {
	conn    *grpc.ClientConn
	client  *grpcserver.Client
	timeout time.Duration
}

func (b *grpcBackend) ListCars(ctx context.Context, f catalog.Filter) ([]models.CatalogRecord, error) {
	ctx, cancel := b.ctx(ctx)
	defer cancel()
	resp, err := b.client.ListCars(ctx, &grpcserver.ListCarsRequest{
		Country:               f.Country,
		Segment:               f.Segment,
		MinEngineDisplacement: f.MinEngineDisplacement,
		MinEngineHorsepower:   f.MinEngineHorsepower,
		MinMaxSpeed:           f.MinMaxSpeed,
		Search:                f.Search,
		IsFull:                f.IsFull,
		Year:                  f.Year,
		BodyStyle:             f.BodyStyle,
	})
	if err != nil {
		return nil, err
	}
	return resp.Cars, nil
}

func (b *grpcBackend) GetCar(ctx context.Context, id int64) (models.CatalogRecord, error) {
	ctx, cancel := b.ctx(ctx)
	defer cancel()
	resp, err := b.client.GetCar(ctx, &grpcserver.GetCarRequest{ID: id})
	if err != nil {
		return models.CatalogRecord{}, err
	}
	return resp.Car, nil
}

func (b *grpcBackend) DistinctValues(ctx context.Context, attribute string) ([]string, error) {
	ctx, cancel := b.ctx(ctx)
	defer cancel()
	resp, err := b.client.DistinctValues(ctx, &grpcserver.DistinctValuesRequest{Attribute: attribute})
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (b *grpcBackend) MaxSpeed(ctx context.Context, q catalog.MaxSpeedQuery) (float64, error) {
	ctx, cancel := b.ctx(ctx)
	defer cancel()
	resp, err := b.client.MaxSpeed(ctx, &grpcserver.MaxSpeedRequest{Model: q.Model, Brand: q.Brand})
	if err != nil {
		return 0, err
	}
	return resp.MaxSpeed, nil
}

func (b *grpcBackend) Close() error { return b.conn.Close() }

func (b *grpcBackend) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, b.timeout)
}

func doJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s failed: %s", endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

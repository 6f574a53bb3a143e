package grpcserver

import "carcatalog/pkg/models"

// ListCarsRequest mirrors the HTTP listing parameters. Unset fields are not applied.
type ListCarsRequest struct {
	Country               *string `json:"country,omitempty"`
	Segment               *string `json:"segment,omitempty"`
	MinEngineDisplacement *int    `json:"min_engine_displacement,omitempty"`
	MinEngineHorsepower   *int    `json:"min_engine_horsepower,omitempty"`
	MinMaxSpeed           *int    `json:"min_max_speed,omitempty"`
	Search                *string `json:"search,omitempty"`
	IsFull                *bool   `json:"is_full,omitempty"`
	Year                  *int    `json:"year,omitempty"`
	BodyStyle             *string `json:"body_style,omitempty"`
}

type ListCarsResponse struct {
	Cars []models.CatalogRecord `json:"cars"`
}

type GetCarRequest struct {
	ID int64 `json:"id"`
}

type GetCarResponse struct {
	Car models.CatalogRecord `json:"car"`
}

// DistinctValuesRequest.Attribute takes either the attribute name
// ("fuelType") or the HTTP route name ("fuel-types").
type DistinctValuesRequest struct {
	Attribute string `json:"attribute"`
}

type DistinctValuesResponse struct {
	Values []string `json:"values"`
}

type MaxSpeedRequest struct {
	Model *string `json:"model,omitempty"`
	Brand *string `json:"brand,omitempty"`
}

type MaxSpeedResponse struct {
	MaxSpeed float64 `json:"max_speed"`
}

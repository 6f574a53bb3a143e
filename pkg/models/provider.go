package models

// Brand is a manufacturer as published by the external provider.
type Brand struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Country string `json:"country"`
}

// RawCar is the provider's car listing entry. BrandID points at a Brand.
type RawCar struct {
	ID           int64  `json:"id"`
	BrandID      int64  `json:"brand_id"`
	Segment      string `json:"segment"`
	Model        string `json:"model"`
	Generation   string `json:"generation"`
	Modification string `json:"modification"`
}

// RawSpec is the per-car specification record. Its ID is the owning RawCar's ID.
type RawSpec struct {
	ID                 int64          `json:"id"`
	FuelType           FuelType       `json:"fuel_type"`
	EngineType         EngineType     `json:"engine_type"`
	EngineDisplacement int            `json:"engine_displacement"`
	HP                 int            `json:"hp"`
	MaxSpeed           int            `json:"max_speed"`
	GearboxType        GearboxType    `json:"gearbox_type"`
	WheelDriveType     WheelDriveType `json:"wheel_drive_type"`
	BodyLength         int            `json:"body_length"`
	BodyWidth          int            `json:"body_width"`
	BodyHeight         int            `json:"body_height"`
	BodyStyle          string         `json:"body_style"`
}

// Dataset is everything a Source hands to the catalog builder.
//
// Brands and Specs are keyed by provider ID so the builder can resolve
// references without scanning. Cars keep provider order.
type Dataset struct {
	Brands map[int64]Brand
	Cars   []RawCar
	Specs  map[int64]RawSpec
}

// NewDataset returns a Dataset with its maps allocated.
func NewDataset() Dataset {
	return Dataset{
		Brands: make(map[int64]Brand),
		Specs:  make(map[int64]RawSpec),
	}
}

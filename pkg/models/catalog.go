package models

// CatalogRecord is the normalized, queryable form of a car: a RawCar joined
// with its Brand and RawSpec.
//
// Records are built once and never changed afterwards; the store hands the
// same values to every reader.
type CatalogRecord struct {
	ID           int64                 `json:"id"`
	Segment      string                `json:"segment"`
	Brand        string                `json:"brand"`
	Model        string                `json:"model"`
	Country      string                `json:"country"`
	Generation   string                `json:"generation"`
	Modification string                `json:"modification"`
	Engine       EngineCharacteristics `json:"engine_characteristics"`
	Body         BodyCharacteristics   `json:"body_characteristics"`
}

// EngineCharacteristics. MaxSpeed and GearboxType are queryable but never
// serialized to API consumers.
type EngineCharacteristics struct {
	FuelType     FuelType    `json:"engine_type"`
	CylinderType EngineType  `json:"engine_cylinders"`
	Displacement int         `json:"engine_displacement"`
	Horsepower   int         `json:"engine_horsepower"`
	MaxSpeed     int         `json:"-"`
	GearboxType  GearboxType `json:"-"`
}

// BodyCharacteristics. WheelDriveType is queryable but not serialized.
type BodyCharacteristics struct {
	Length         int            `json:"body_length"`
	Width          int            `json:"body_width"`
	Height         int            `json:"body_height"`
	BodyStyle      string         `json:"body_style"`
	WheelDriveType WheelDriveType `json:"-"`
}

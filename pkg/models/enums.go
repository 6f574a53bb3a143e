package models

// The provider is free to add values; anything outside these constants is
// carried through verbatim and still shows up in distinct-value listings.

type FuelType string

const (
	FuelPetrol   FuelType = "PETROL"
	FuelGasoline FuelType = "GASOLINE"
	FuelDiesel   FuelType = "DIESEL"
	FuelHybrid   FuelType = "HYBRID"
	FuelElectric FuelType = "ELECTRIC"
)

func (f FuelType) String() string { return string(f) }

// EngineType is the cylinder layout (the legacy API calls it "engine_cylinders").
type EngineType string

const (
	EngineI3       EngineType = "I3"
	EngineI4       EngineType = "I4"
	EngineI5       EngineType = "I5"
	EngineI6       EngineType = "I6"
	EngineV6       EngineType = "V6"
	EngineV8       EngineType = "V8"
	EngineV10      EngineType = "V10"
	EngineV12      EngineType = "V12"
	EngineW12      EngineType = "W12"
	EngineBoxer    EngineType = "BOXER"
	EngineRotary   EngineType = "ROTARY"
	EngineElectric EngineType = "ELECTRIC"
)

func (e EngineType) String() string { return string(e) }

type GearboxType string

const (
	GearboxManual  GearboxType = "MANUAL"
	GearboxAuto    GearboxType = "AUTO"
	GearboxRobotic GearboxType = "ROBOTIC"
	GearboxCVT     GearboxType = "CVT"
)

func (g GearboxType) String() string { return string(g) }

type WheelDriveType string

const (
	WheelDriveFront WheelDriveType = "FWD"
	WheelDriveRear  WheelDriveType = "RWD"
	WheelDriveAll   WheelDriveType = "AWD"
	WheelDrive4WD   WheelDriveType = "FOUR_WD"
)

func (w WheelDriveType) String() string { return string(w) }

package catalog

import "carcatalog/pkg/models"

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func sampleDataset() models.Dataset {
	ds := models.NewDataset()
	ds.Brands[1] = models.Brand{ID: 1, Title: "Toyota", Country: "Japan"}
	ds.Brands[2] = models.Brand{ID: 2, Title: "BMW", Country: "Germany"}
	ds.Brands[3] = models.Brand{ID: 3, Title: "Nissan", Country: "Japan"}

	ds.Cars = []models.RawCar{
		{ID: 10, BrandID: 1, Segment: "C", Model: "Corolla", Generation: "E210", Modification: "1.8 CVT"},
		{ID: 11, BrandID: 1, Segment: "C", Model: "Corolla", Generation: "E170", Modification: "1.6 MT"},
		{ID: 12, BrandID: 1, Segment: "D", Model: "Camry", Generation: "XV70", Modification: "3.5 V6"},
		{ID: 20, BrandID: 2, Segment: "D", Model: "3 Series", Generation: "G20", Modification: "M340i xDrive"},
		{ID: 21, BrandID: 2, Segment: "E", Model: "5 Series", Generation: "G30", Modification: "530d"},
		{ID: 30, BrandID: 3, Segment: "S", Model: "GT-R", Generation: "R35", Modification: "Nismo"},
	}

	ds.Specs[10] = models.RawSpec{ID: 10, FuelType: models.FuelPetrol, EngineType: models.EngineI4, EngineDisplacement: 1798, HP: 140, MaxSpeed: 180, GearboxType: models.GearboxCVT, WheelDriveType: models.WheelDriveFront, BodyLength: 4630, BodyWidth: 1780, BodyHeight: 1435, BodyStyle: "Sedan"}
	ds.Specs[11] = models.RawSpec{ID: 11, FuelType: models.FuelPetrol, EngineType: models.EngineI4, EngineDisplacement: 1598, HP: 124, MaxSpeed: 220, GearboxType: models.GearboxManual, WheelDriveType: models.WheelDriveFront, BodyLength: 4540, BodyWidth: 1760, BodyHeight: 1470, BodyStyle: "Sedan"}
	ds.Specs[12] = models.RawSpec{ID: 12, FuelType: models.FuelPetrol, EngineType: models.EngineV6, EngineDisplacement: 3456, HP: 249, MaxSpeed: 210, GearboxType: models.GearboxAuto, WheelDriveType: models.WheelDriveFront, BodyLength: 4885, BodyWidth: 1840, BodyHeight: 1445, BodyStyle: "Sedan"}
	ds.Specs[20] = models.RawSpec{ID: 20, FuelType: models.FuelPetrol, EngineType: models.EngineI6, EngineDisplacement: 2998, HP: 374, MaxSpeed: 250, GearboxType: models.GearboxAuto, WheelDriveType: models.WheelDriveAll, BodyLength: 4709, BodyWidth: 1827, BodyHeight: 1442, BodyStyle: "Sedan"}
	ds.Specs[21] = models.RawSpec{ID: 21, FuelType: models.FuelDiesel, EngineType: models.EngineI6, EngineDisplacement: 2993, HP: 265, MaxSpeed: 250, GearboxType: models.GearboxAuto, WheelDriveType: models.WheelDriveRear, BodyLength: 4936, BodyWidth: 1868, BodyHeight: 1479, BodyStyle: "Touring"}
	ds.Specs[30] = models.RawSpec{ID: 30, FuelType: models.FuelPetrol, EngineType: models.EngineV6, EngineDisplacement: 3799, HP: 600, MaxSpeed: 315, GearboxType: models.GearboxRobotic, WheelDriveType: models.WheelDriveAll, BodyLength: 4690, BodyWidth: 1895, BodyHeight: 1370, BodyStyle: "Coupe"}
	return ds
}

func loadedEngine(ds models.Dataset) (*Store, *Engine) {
	records, _ := Build(ds)
	st := NewStore()
	st.Load(records)
	return st, NewEngine(st)
}

func ids(records []models.CatalogRecord) map[int64]bool {
	out := make(map[int64]bool, len(records))
	for _, r := range records {
		out[r.ID] = true
	}
	return out
}

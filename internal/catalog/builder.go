// Package catalog joins the provider datasets into CatalogRecords, keeps them
// in an append-only in-memory store and answers read queries over it.
package catalog

import "carcatalog/pkg/models"

// Report summarizes a Build call.
//
// Dropped counts every car left out: len(Unresolved) + len(Duplicates).
// Duplicates holds the IDs of repeated cars after their first occurrence;
// they are not unresolved references.
type Report struct {
	Built      int
	Dropped    int
	Unresolved []*UnresolvedReferenceError
	Duplicates []int64
}

// DroppedBy counts dropped cars for one reason (RefBrand, RefSpec or RefDuplicate).
func (r Report) DroppedBy(kind string) int {
	if kind == RefDuplicate {
		return len(r.Duplicates)
	}
	n := 0
	for _, u := range r.Unresolved {
		if u.Kind == kind {
			n++
		}
	}
	return n
}

// Build joins every raw car with its brand and spec.
//
// A car whose brand or spec cannot be found is left out and recorded in the
// report; a partial provider dataset never fails the whole build. Only the
// first car with a given ID is used.
func Build(ds models.Dataset) ([]models.CatalogRecord, Report) {
	var rep Report
	records := make([]models.CatalogRecord, 0, len(ds.Cars))
	seen := make(map[int64]struct{}, len(ds.Cars))

	for _, car := range ds.Cars {
		if _, dup := seen[car.ID]; dup {
			rep.Duplicates = append(rep.Duplicates, car.ID)
			continue
		}
		seen[car.ID] = struct{}{}

		brand, ok := ds.Brands[car.BrandID]
		if !ok {
			rep.Unresolved = append(rep.Unresolved, &UnresolvedReferenceError{CarID: car.ID, Kind: RefBrand, Ref: car.BrandID})
			continue
		}
		spec, ok := ds.Specs[car.ID]
		if !ok {
			rep.Unresolved = append(rep.Unresolved, &UnresolvedReferenceError{CarID: car.ID, Kind: RefSpec, Ref: car.ID})
			continue
		}

		records = append(records, newRecord(car, brand, spec))
	}

	rep.Built = len(records)
	rep.Dropped = len(rep.Unresolved) + len(rep.Duplicates)
	return records, rep
}

func newRecord(car models.RawCar, brand models.Brand, spec models.RawSpec) models.CatalogRecord {
	return models.CatalogRecord{
		ID:           car.ID,
		Segment:      car.Segment,
		Brand:        brand.Title,
		Model:        car.Model,
		Country:      brand.Country,
		Generation:   car.Generation,
		Modification: car.Modification,
		Engine: models.EngineCharacteristics{
			FuelType:     spec.FuelType,
			CylinderType: spec.EngineType,
			Displacement: spec.EngineDisplacement,
			Horsepower:   spec.HP,
			MaxSpeed:     spec.MaxSpeed,
			GearboxType:  spec.GearboxType,
		},
		Body: models.BodyCharacteristics{
			Length:         spec.BodyLength,
			Width:          spec.BodyWidth,
			Height:         spec.BodyHeight,
			BodyStyle:      spec.BodyStyle,
			WheelDriveType: spec.WheelDriveType,
		},
	}
}

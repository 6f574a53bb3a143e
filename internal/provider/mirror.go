package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"carcatalog/pkg/models"
)

// MirrorSource reads a provider snapshot previously saved with SaveDataset.
type MirrorSource struct {
	DB *sql.DB
}

func NewMirrorSource(db *sql.DB) *MirrorSource {
	return &MirrorSource{DB: db}
}

func (m *MirrorSource) Name() string { return "mirror" }

func (m *MirrorSource) Fetch(ctx context.Context) (models.Dataset, error) {
	ds := models.NewDataset()

	brands, err := m.ListBrands(ctx)
	if err != nil {
		return ds, err
	}
	for _, b := range brands {
		ds.Brands[b.ID] = b
	}

	if ds.Cars, err = m.ListCars(ctx); err != nil {
		return ds, err
	}

	rows, err := m.DB.QueryContext(ctx, specSelect)
	if err != nil {
		return ds, fmt.Errorf("mirror: list specs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		spec, err := scanSpec(rows)
		if err != nil {
			return ds, fmt.Errorf("mirror: scan spec: %w", err)
		}
		ds.Specs[spec.ID] = spec
	}
	if err := rows.Err(); err != nil {
		return ds, fmt.Errorf("mirror: rows err: %w", err)
	}
	return ds, nil
}

func (m *MirrorSource) ListBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := m.DB.QueryContext(ctx, `SELECT id, title, country FROM brands ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("mirror: list brands: %w", err)
	}
	defer rows.Close()

	out := make([]models.Brand, 0)
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Title, &b.Country); err != nil {
			return nil, fmt.Errorf("mirror: scan brand: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mirror: rows err: %w", err)
	}
	return out, nil
}

func (m *MirrorSource) ListCars(ctx context.Context) ([]models.RawCar, error) {
	rows, err := m.DB.QueryContext(ctx, `
		SELECT id, brand_id, segment, model, generation, modification
		FROM cars
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("mirror: list cars: %w", err)
	}
	defer rows.Close()

	out := make([]models.RawCar, 0)
	for rows.Next() {
		var c models.RawCar
		if err := rows.Scan(&c.ID, &c.BrandID, &c.Segment, &c.Model, &c.Generation, &c.Modification); err != nil {
			return nil, fmt.Errorf("mirror: scan car: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mirror: rows err: %w", err)
	}
	return out, nil
}

// GetSpec returns ErrNotFound when the mirror has no spec for id.
func (m *MirrorSource) GetSpec(ctx context.Context, id int64) (models.RawSpec, error) {
	row := m.DB.QueryRowContext(ctx, specSelect+` WHERE id = ?`, id)
	spec, err := scanSpec(row)
	if errors.Is(err, sql.ErrNoRows) {
		return spec, fmt.Errorf("mirror: spec %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return spec, fmt.Errorf("mirror: get spec %d: %w", id, err)
	}
	return spec, nil
}

const specSelect = `
	SELECT id, fuel_type, engine_type, engine_displacement, hp, max_speed,
	       gearbox_type, wheel_drive_type, body_length, body_width, body_height, body_style
	FROM specs`

type scanner interface {
	Scan(dest ...any) error
}

func scanSpec(sc scanner) (models.RawSpec, error) {
	var s models.RawSpec
	err := sc.Scan(
		&s.ID, &s.FuelType, &s.EngineType, &s.EngineDisplacement, &s.HP, &s.MaxSpeed,
		&s.GearboxType, &s.WheelDriveType, &s.BodyLength, &s.BodyWidth, &s.BodyHeight, &s.BodyStyle,
	)
	return s, err
}

// SaveDataset upserts a whole dataset into the mirror in one transaction.
func SaveDataset(ctx context.Context, db *sql.DB, ds models.Dataset) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	brandStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO brands (id, title, country) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, country = excluded.country
	`)
	if err != nil {
		return fmt.Errorf("prepare brands: %w", err)
	}
	defer brandStmt.Close()

	carStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cars (id, brand_id, segment, model, generation, modification)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  brand_id = excluded.brand_id,
		  segment = excluded.segment,
		  model = excluded.model,
		  generation = excluded.generation,
		  modification = excluded.modification
	`)
	if err != nil {
		return fmt.Errorf("prepare cars: %w", err)
	}
	defer carStmt.Close()

	specStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO specs (id, fuel_type, engine_type, engine_displacement, hp, max_speed,
		                   gearbox_type, wheel_drive_type, body_length, body_width, body_height, body_style)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  fuel_type = excluded.fuel_type,
		  engine_type = excluded.engine_type,
		  engine_displacement = excluded.engine_displacement,
		  hp = excluded.hp,
		  max_speed = excluded.max_speed,
		  gearbox_type = excluded.gearbox_type,
		  wheel_drive_type = excluded.wheel_drive_type,
		  body_length = excluded.body_length,
		  body_width = excluded.body_width,
		  body_height = excluded.body_height,
		  body_style = excluded.body_style
	`)
	if err != nil {
		return fmt.Errorf("prepare specs: %w", err)
	}
	defer specStmt.Close()

	for _, id := range sortedKeys(ds.Brands) {
		b := ds.Brands[id]
		if _, err := brandStmt.ExecContext(ctx, b.ID, b.Title, b.Country); err != nil {
			return fmt.Errorf("upsert brand %d: %w", b.ID, err)
		}
	}
	for _, c := range ds.Cars {
		if _, err := carStmt.ExecContext(ctx, c.ID, c.BrandID, c.Segment, c.Model, c.Generation, c.Modification); err != nil {
			return fmt.Errorf("upsert car %d: %w", c.ID, err)
		}
	}
	for _, id := range sortedKeys(ds.Specs) {
		s := ds.Specs[id]
		if _, err := specStmt.ExecContext(ctx,
			s.ID, string(s.FuelType), string(s.EngineType), s.EngineDisplacement, s.HP, s.MaxSpeed,
			string(s.GearboxType), string(s.WheelDriveType), s.BodyLength, s.BodyWidth, s.BodyHeight, s.BodyStyle,
		); err != nil {
			return fmt.Errorf("upsert spec %d: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

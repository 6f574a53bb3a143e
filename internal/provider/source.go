// Package provider fetches the raw brand, car and spec datasets from the
// external car provider, either live over HTTP or from a local SQLite mirror.
package provider

import (
	"context"
	"fmt"

	"carcatalog/pkg/database"
	"carcatalog/pkg/models"
	"carcatalog/pkg/utils"
)

// Source is implemented by every place the raw datasets can come from.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (models.Dataset, error)
}

// FromConfig opens the source selected by cfg.Source. The returned close
// func releases the mirror database, if one was opened.
func FromConfig(cfg utils.Config) (Source, func() error, error) {
	switch cfg.Source {
	case utils.SourceMirror:
		db, err := database.Open(database.Config{Path: cfg.MirrorPath})
		if err != nil {
			return nil, nil, fmt.Errorf("open mirror: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate mirror: %w", err)
		}
		return NewMirrorSource(db), db.Close, nil
	case utils.SourceHTTP:
		src := NewHTTPSource(cfg.ProviderURL, cfg.ProviderTimeout, cfg.ProviderConcurrency, cfg.ProviderRPS)
		return src, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
}

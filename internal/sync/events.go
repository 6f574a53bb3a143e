package sync

import "time"

const (
	EventCatalogLoaded = "catalog.loaded"
	EventCatalogFailed = "catalog.failed"
)

// CatalogEvent is pushed to subscribers while the catalog is being loaded.
// Loaded is the number of records added by this batch, Size the store size after it.
type CatalogEvent struct {
	Type   string    `json:"type"`
	RunID  string    `json:"run_id"`
	Batch  int       `json:"batch"`
	Loaded int       `json:"loaded"`
	Size   int       `json:"size"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}

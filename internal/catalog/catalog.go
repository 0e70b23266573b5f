package catalog

import (
	"context"
	"errors"
	"time"
)

// AssetID uniquely identifies a video asset in the catalog.
type AssetID int64

// Asset describes one on-demand video item. The coordinator treats assets as
// read-only: the catalog is the only writer.
type Asset struct {
	ID          AssetID
	Title       string
	ReleaseDate time.Time
	Length      string // runtime in HH:MM:SS form, as stored
	Genre       string
	Description string
	Rating      float64
	PosterRef   string // where the client fetches the poster image
	SourceRef   string // where the media engine reads the video from
}

// ErrNotFound is returned when an asset id has no catalog entry.
var ErrNotFound = errors.New("asset not found")

// Catalog is the read model for video assets.
// Implementations can be backed by SQLite or held in memory.
type Catalog interface {
	// AssetByID returns the asset with the given id, or ErrNotFound.
	AssetByID(ctx context.Context, id AssetID) (Asset, error)

	// AllAssets returns every asset, ordered by id ascending.
	AllAssets(ctx context.Context) ([]Asset, error)
}

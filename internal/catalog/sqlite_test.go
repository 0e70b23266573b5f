package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteCatalog(t *testing.T) *SQLiteCatalog {
	t.Helper()
	cat, err := OpenSQLite(filepath.Join(t.TempDir(), "movies.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { cat.Close() })
	return cat
}

func TestSQLiteCatalog_insert_and_query(t *testing.T) {
	cat := newTestSQLiteCatalog(t)
	ctx := context.Background()

	empty, err := cat.Empty(ctx)
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	if !empty {
		t.Fatal("fresh catalog should be empty")
	}

	assets := []Asset{
		{
			Title:       "Cargo",
			ReleaseDate: time.Date(2017, 5, 22, 0, 0, 0, 0, time.UTC),
			Length:      "00:01:01",
			Genre:       "Action",
			Description: "Cargo boat carrying containers.",
			Rating:      1,
			PosterRef:   "/assets/Cargo.png",
			SourceRef:   "/assets/Cargo.mp4",
		},
		{
			Title:       "Dogs",
			ReleaseDate: time.Date(2020, 4, 15, 0, 0, 0, 0, time.UTC),
			Length:      "00:00:49",
			Genre:       "Adventure",
			Description: "Dogs enjoying the snow.",
			Rating:      3,
			PosterRef:   "/assets/Dogs.png",
			SourceRef:   "/assets/Dogs.mp4",
		},
	}
	for _, a := range assets {
		if err := cat.InsertAsset(ctx, a); err != nil {
			t.Fatalf("InsertAsset(%s): %v", a.Title, err)
		}
	}

	t.Run("all_assets_ordered", func(t *testing.T) {
		got, err := cat.AllAssets(ctx)
		if err != nil {
			t.Fatalf("AllAssets: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 assets, got %d", len(got))
		}
		if got[0].Title != "Cargo" || got[1].Title != "Dogs" {
			t.Errorf("unexpected order: %q, %q", got[0].Title, got[1].Title)
		}
		if got[0].ID != 1 || got[1].ID != 2 {
			t.Errorf("expected autoincrement ids 1,2; got %d,%d", got[0].ID, got[1].ID)
		}
	})

	t.Run("asset_by_id", func(t *testing.T) {
		a, err := cat.AssetByID(ctx, 2)
		if err != nil {
			t.Fatalf("AssetByID: %v", err)
		}
		if a.Title != "Dogs" || a.Genre != "Adventure" || a.Rating != 3 {
			t.Errorf("unexpected asset: %+v", a)
		}
		if !a.ReleaseDate.Equal(time.Date(2020, 4, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("release date did not round-trip: %v", a.ReleaseDate)
		}
		if a.SourceRef != "/assets/Dogs.mp4" {
			t.Errorf("unexpected source ref: %s", a.SourceRef)
		}
	})

	t.Run("unknown_id", func(t *testing.T) {
		_, err := cat.AssetByID(ctx, 99)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("no_longer_empty", func(t *testing.T) {
		empty, err := cat.Empty(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if empty {
			t.Error("catalog with rows should not report empty")
		}
	})
}

package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryCatalog_AssetByID(t *testing.T) {
	cat := NewInMemoryCatalog([]Asset{
		{ID: 1, Title: "Cargo"},
		{ID: 2, Title: "Dogs"},
	})
	ctx := context.Background()

	a, err := cat.AssetByID(ctx, 2)
	if err != nil {
		t.Fatalf("AssetByID: %v", err)
	}
	if a.Title != "Dogs" {
		t.Errorf("unexpected asset: %+v", a)
	}

	_, err = cat.AssetByID(ctx, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryCatalog_AllAssets_ordered(t *testing.T) {
	cat := NewInMemoryCatalog([]Asset{
		{ID: 3, Title: "Rocket"},
		{ID: 1, Title: "Cargo"},
		{ID: 2, Title: "Dogs"},
	})

	assets, err := cat.AllAssets(context.Background())
	if err != nil {
		t.Fatalf("AllAssets: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(assets))
	}
	for i, want := range []AssetID{1, 2, 3} {
		if assets[i].ID != want {
			t.Errorf("position %d: got id %d want %d", i, assets[i].ID, want)
		}
	}
}

func TestInMemoryCatalog_duplicate_ids_ignored(t *testing.T) {
	cat := NewInMemoryCatalog([]Asset{
		{ID: 1, Title: "Cargo"},
		{ID: 1, Title: "Impostor"},
	})

	a, err := cat.AssetByID(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Title != "Cargo" {
		t.Errorf("first entry should win, got %q", a.Title)
	}
}

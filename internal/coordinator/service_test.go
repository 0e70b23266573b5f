package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"vod-coordinator/internal/catalog"
)

func newTestService(engines *[]*fakeEngine) *Service {
	cat := catalog.NewInMemoryCatalog([]catalog.Asset{
		{
			ID:          1,
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
			ID:          2,
			Title:       "Dogs",
			ReleaseDate: time.Date(2020, 4, 15, 0, 0, 0, 0, time.UTC),
			Length:      "00:00:49",
			Genre:       "Adventure",
			Description: "Dogs enjoying the snow.",
			Rating:      3,
			PosterRef:   "/assets/Dogs.png",
			SourceRef:   "/assets/Dogs.mp4",
		},
	})
	reg := NewRegistry(newFakeEngineFactory(engines), NewAllocator("localhost", 8554))
	return NewService(reg, cat)
}

func TestService_Movies(t *testing.T) {
	svc := newTestService(nil)

	assets, err := svc.Movies(context.Background())
	if err != nil {
		t.Fatalf("Movies: %v", err)
	}
	if len(assets) != 2 || assets[0].Title != "Cargo" || assets[1].Title != "Dogs" {
		t.Errorf("unexpected movie list: %+v", assets)
	}
}

func TestService_PrepareEndpoint(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	id := svc.Connect()

	t.Run("unknown_asset", func(t *testing.T) {
		_, err := svc.PrepareEndpoint(ctx, id, catalog.AssetID(99))
		if !errors.Is(err, ErrAssetNotFound) {
			t.Errorf("expected ErrAssetNotFound, got %v", err)
		}
	})

	t.Run("unknown_session", func(t *testing.T) {
		_, err := svc.PrepareEndpoint(ctx, SessionID(99), catalog.AssetID(1))
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ep, err := svc.PrepareEndpoint(ctx, id, catalog.AssetID(1))
		if err != nil {
			t.Fatalf("PrepareEndpoint: %v", err)
		}
		if ep.URI != "rtsp://localhost:8554/1/1" {
			t.Errorf("unexpected endpoint URI: %s", ep.URI)
		}
	})
}

func TestService_full_lifecycle(t *testing.T) {
	var engines []*fakeEngine
	svc := newTestService(&engines)
	ctx := context.Background()

	id := svc.Connect()
	if _, err := svc.PrepareEndpoint(ctx, id, catalog.AssetID(2)); err != nil {
		t.Fatalf("PrepareEndpoint: %v", err)
	}
	if err := svc.StartStreaming(id); err != nil {
		t.Fatalf("StartStreaming: %v", err)
	}
	if svc.StreamingCount() != 1 {
		t.Errorf("streaming count: got %d want 1", svc.StreamingCount())
	}
	if err := svc.SeekTo(id, 30*time.Second); err != nil {
		t.Fatalf("SeekTo: %v", err)
	}
	if err := svc.StopStreaming(id); err != nil {
		t.Fatalf("StopStreaming: %v", err)
	}
	wasStreaming, err := svc.Disconnect(id)
	if err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if wasStreaming {
		t.Error("disconnect after a voluntary stop should report idle")
	}
	if svc.ConnectedCount() != 0 {
		t.Errorf("connected count: got %d want 0", svc.ConnectedCount())
	}
}

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vod-coordinator/internal/catalog"
)

// Service ties the session registry to the asset catalog. Handlers talk to
// the Service; the Service resolves assets and delegates state transitions
// to the Registry.
type Service struct {
	registry *Registry
	catalog  catalog.Catalog
}

// NewService returns a Service using the given registry and catalog.
func NewService(registry *Registry, cat catalog.Catalog) *Service {
	return &Service{registry: registry, catalog: cat}
}

// Connect registers a new viewer and returns its session id.
func (s *Service) Connect() SessionID {
	return s.registry.Connect()
}

// Movies lists every asset in the catalog.
func (s *Service) Movies(ctx context.Context) ([]catalog.Asset, error) {
	assets, err := s.catalog.AllAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return assets, nil
}

// PrepareEndpoint resolves the asset and binds it to the session, returning
// the endpoint the viewer should play from. Fails with ErrAssetNotFound for
// unknown assets and ErrSessionNotFound for unknown sessions.
func (s *Service) PrepareEndpoint(ctx context.Context, id SessionID, assetID catalog.AssetID) (EndpointDescriptor, error) {
	asset, err := s.catalog.AssetByID(ctx, assetID)
	if errors.Is(err, catalog.ErrNotFound) {
		return EndpointDescriptor{}, ErrAssetNotFound
	}
	if err != nil {
		return EndpointDescriptor{}, fmt.Errorf("resolve movie %d: %w", assetID, err)
	}
	return s.registry.Prepare(id, asset)
}

// StartStreaming begins playback for a prepared session.
func (s *Service) StartStreaming(id SessionID) error {
	return s.registry.Start(id)
}

// SeekTo jumps a streaming session to the given offset from the start.
func (s *Service) SeekTo(id SessionID, offset time.Duration) error {
	return s.registry.Seek(id, offset)
}

// StopStreaming voluntarily halts a streaming session; the session stays
// connected and can prepare another asset.
func (s *Service) StopStreaming(id SessionID) error {
	return s.registry.Stop(id)
}

// Disconnect removes the session entirely. The returned flag reports whether
// playback had to be stopped on the way out.
func (s *Service) Disconnect(id SessionID) (wasStreaming bool, err error) {
	return s.registry.Disconnect(id)
}

// ConnectedCount reports the number of live sessions, for metrics.
func (s *Service) ConnectedCount() int {
	return s.registry.ConnectedCount()
}

// StreamingCount reports the number of streaming sessions, for metrics.
func (s *Service) StreamingCount() int {
	return s.registry.StreamingCount()
}

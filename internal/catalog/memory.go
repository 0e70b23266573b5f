package catalog

import (
	"context"
	"sort"
)

// InMemoryCatalog is a Catalog held entirely in memory. It is immutable after
// construction, so reads need no locking.
type InMemoryCatalog struct {
	byID  map[AssetID]Asset
	order []AssetID
}

// NewInMemoryCatalog returns a catalog serving the given assets.
func NewInMemoryCatalog(assets []Asset) *InMemoryCatalog {
	c := &InMemoryCatalog{byID: make(map[AssetID]Asset, len(assets))}
	for _, a := range assets {
		if _, exists := c.byID[a.ID]; exists {
			continue
		}
		c.byID[a.ID] = a
		c.order = append(c.order, a.ID)
	}
	sort.Slice(c.order, func(i, j int) bool { return c.order[i] < c.order[j] })
	return c
}

// AssetByID implements Catalog.AssetByID.
func (c *InMemoryCatalog) AssetByID(_ context.Context, id AssetID) (Asset, error) {
	a, ok := c.byID[id]
	if !ok {
		return Asset{}, ErrNotFound
	}
	return a, nil
}

// AllAssets implements Catalog.AllAssets.
func (c *InMemoryCatalog) AllAssets(_ context.Context) ([]Asset, error) {
	out := make([]Asset, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

package coordinator

import (
	"fmt"

	"vod-coordinator/internal/catalog"
)

// EndpointDescriptor is the derived network location of one (session, asset)
// stream. It is never stored authoritatively: the same pair always recomputes
// to the same URI.
type EndpointDescriptor struct {
	SessionID SessionID
	AssetID   catalog.AssetID
	URI       string
}

// Allocator derives streaming endpoints. It is pure: no state, no side
// effects, and distinct (session, asset) pairs never collide because both
// ids appear in the path.
type Allocator struct {
	host string
	port int
}

// NewAllocator returns an Allocator publishing on the given host and port.
func NewAllocator(host string, port int) Allocator {
	return Allocator{host: host, port: port}
}

// Endpoint returns the descriptor a viewer uses to receive the stream for
// the given session and asset.
func (a Allocator) Endpoint(sid SessionID, aid catalog.AssetID) EndpointDescriptor {
	return EndpointDescriptor{
		SessionID: sid,
		AssetID:   aid,
		URI:       fmt.Sprintf("rtsp://%s:%d/%d/%d", a.host, a.port, sid, aid),
	}
}

// SinkOption returns the engine-side stream-output option for the same pair,
// so the engine emits on exactly the endpoint the viewer was given.
func (a Allocator) SinkOption(sid SessionID, aid catalog.AssetID) string {
	return fmt.Sprintf(":sout=#rtp{sdp=rtsp://:%d/%d/%d}", a.port, sid, aid)
}

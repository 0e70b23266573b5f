package coordinator

import "errors"

var (
	// ErrSessionNotFound is returned when a session id has no registry entry.
	ErrSessionNotFound = errors.New("client not found")

	// ErrAssetNotFound is returned when an asset id has no catalog entry.
	ErrAssetNotFound = errors.New("movie not found")

	// ErrAlreadyStreaming is returned when a transition requires the session
	// not to be streaming but it is.
	ErrAlreadyStreaming = errors.New("client is already streaming a movie")

	// ErrNotStreaming is returned when a transition requires the session to
	// be streaming but it is not.
	ErrNotStreaming = errors.New("client is not currently streaming any movie")

	// ErrNotPrepared is returned by StartStreaming when the session has never
	// prepared an endpoint, so there is no bound asset or loaded engine.
	ErrNotPrepared = errors.New("client has no prepared movie endpoint")
)

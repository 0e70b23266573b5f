package engine

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

// DefaultVLCBinary is the headless VLC binary used when none is configured.
const DefaultVLCBinary = "cvlc"

var errNotLoaded = errors.New("engine: no media loaded")

// vlcEngine drives one headless VLC process through its remote-control (rc)
// interface: the process is started paused with the stream-output option and
// then commanded over stdin.
type vlcEngine struct {
	binary string

	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
	state PlaybackState
}

// NewVLCFactory returns a Factory producing VLC-backed engines using the
// given binary. An empty binary selects DefaultVLCBinary.
func NewVLCFactory(binary string) Factory {
	if binary == "" {
		binary = DefaultVLCBinary
	}
	return func() (Engine, error) {
		return &vlcEngine{binary: binary, state: StateIdle}, nil
	}
}

// vlcArgs builds the VLC invocation for one source/sink pair. The process
// starts paused so playback only begins on an explicit Play.
func vlcArgs(source, sinkOption string) []string {
	return []string{
		"-I", "rc",
		"--rc-fake-tty",
		"--no-video-title-show",
		"--start-paused",
		source,
		sinkOption,
	}
}

// Load implements Engine.Load. Any previously loaded process is torn down
// first; the engine object itself stays usable across loads.
func (e *vlcEngine) Load(source, sinkOption string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		e.teardownLocked()
	}

	cmd := exec.Command(e.binary, vlcArgs(source, sinkOption)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("engine stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", e.binary, err)
	}

	// Reap the process when it exits on its own.
	go cmd.Wait()

	e.cmd = cmd
	e.stdin = stdin
	e.state = StateLoaded
	return nil
}

// Play implements Engine.Play.
func (e *vlcEngine) Play() error {
	return e.command("play", StatePlaying)
}

// Pause implements Engine.Pause.
func (e *vlcEngine) Pause() error {
	return e.command("pause", StatePaused)
}

// Seek implements Engine.Seek. VLC's rc interface seeks in whole seconds.
func (e *vlcEngine) Seek(offset time.Duration) error {
	if offset < 0 {
		return fmt.Errorf("engine: negative seek offset %s", offset)
	}
	return e.command(fmt.Sprintf("seek %d", int(offset.Seconds())), e.stateLocked())
}

// SetVolume implements Engine.SetVolume. VLC's rc volume scale is 0-256.
func (e *vlcEngine) SetVolume(percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return e.command(fmt.Sprintf("volume %d", percent*256/100), e.stateLocked())
}

// Stop implements Engine.Stop.
func (e *vlcEngine) Stop() error {
	return e.command("stop", StateStopped)
}

// State implements Engine.State.
func (e *vlcEngine) State() PlaybackState {
	return e.stateLocked()
}

// Close implements Engine.Close.
func (e *vlcEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.teardownLocked()
	e.state = StateIdle
	return nil
}

func (e *vlcEngine) stateLocked() PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// command writes one rc command to the process and records the state it
// leaves the engine in.
func (e *vlcEngine) command(cmd string, next PlaybackState) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return errNotLoaded
	}
	if _, err := io.WriteString(e.stdin, cmd+"\n"); err != nil {
		return fmt.Errorf("engine command %q: %w", cmd, err)
	}
	e.state = next
	return nil
}

// teardownLocked asks the process to quit and kills it if it will not.
// Caller must hold e.mu.
func (e *vlcEngine) teardownLocked() {
	if e.cmd == nil {
		return
	}
	if e.stdin != nil {
		io.WriteString(e.stdin, "quit\n")
		e.stdin.Close()
	}
	if e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}
	e.cmd = nil
	e.stdin = nil
}

package audio

import (
	"errors"
	"os/exec"
	"runtime"
)

var ErrNoPlayer = errors.New("audio: no player command available")

type Process interface {
	Wait() error
	Kill() error
}

type Player interface {
	// Start launches playback of path without waiting for it to finish.
	Start(path string) (Process, error)
}

type NoopPlayer struct{}

func (NoopPlayer) Start(string) (Process, error) { return noopProcess{}, nil }

type noopProcess struct{}

func (noopProcess) Wait() error { return nil }
func (noopProcess) Kill() error { return nil }

// Fallback tries each player in order and keeps the first that starts.
type Fallback []Player

func (f Fallback) Start(path string) (Process, error) {
	errs := make([]error, 0, len(f))
	for _, p := range f {
		proc, err := p.Start(path)
		if err == nil {
			return proc, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrNoPlayer
	}
	return nil, errors.Join(errs...)
}

// ExecPlayer shells out to a command-line player. An empty Command selects
// the platform default.
type ExecPlayer struct {
	Command string
	Args    []string
}

func DefaultPlayer() ExecPlayer {
	switch runtime.GOOS {
	case "darwin":
		return ExecPlayer{Command: "afplay"}
	case "linux":
		return ExecPlayer{Command: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}}
	default:
		return ExecPlayer{}
	}
}

func (p ExecPlayer) Start(path string) (Process, error) {
	if p.Command == "" {
		p = DefaultPlayer()
	}
	if p.Command == "" {
		return nil, ErrNoPlayer
	}
	args := append(append([]string{}, p.Args...), path)
	cmd := exec.Command(p.Command, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p execProcess) Wait() error { return p.cmd.Wait() }

func (p execProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

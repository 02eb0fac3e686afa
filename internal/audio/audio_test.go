package audio

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	done   chan struct{}
	once   sync.Once
	killed bool
}

func newFakeProcess() *fakeProcess {
	return &fakeProcess{done: make(chan struct{})}
}

func (p *fakeProcess) Wait() error {
	<-p.done
	return nil
}

func (p *fakeProcess) Kill() error {
	p.once.Do(func() {
		p.killed = true
		close(p.done)
	})
	return nil
}

type fakePlayer struct {
	mu    sync.Mutex
	paths []string
	procs []*fakeProcess
	err   error
}

func (p *fakePlayer) Start(path string) (Process, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	proc := newFakeProcess()
	p.paths = append(p.paths, path)
	p.procs = append(p.procs, proc)
	return proc, nil
}

func (p *fakePlayer) started() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolverPrefersOverrides(t *testing.T) {
	r := Resolver{
		Dir: "/assets",
		Overrides: func() model.NotificationSounds {
			return model.NotificationSounds{Start: "/custom/start.wav", Focus: "/custom/focus.wav"}
		},
	}
	require.Equal(t, "/custom/start.wav", r.Path(CueStart))
	require.Equal(t, "/custom/focus.wav", r.Path(CueComplete))
	require.Equal(t, filepath.Join("/assets", "notification.mp3"), r.Path(CueNotification))
	require.Equal(t, filepath.Join("/assets", "brown-noise.mp3"), r.Path(CueAmbient))
	require.Empty(t, r.Path(Cue("break")))

	plain := Resolver{Dir: "/assets"}
	require.Equal(t, filepath.Join("/assets", "start.mp3"), plain.Path(CueStart))
}

func TestCuesPlayAndSwallowErrors(t *testing.T) {
	player := &fakePlayer{}
	cues := NewCues(Resolver{Dir: "/a"}, player, nil, quietLogger())
	cues.Play(CueComplete)
	require.Equal(t, []string{filepath.Join("/a", "complete.mp3")}, player.started())
	for _, p := range player.procs {
		require.NoError(t, p.Kill())
	}

	player.err = errors.New("no device")
	cues.Play(CueStart)
	require.Len(t, player.started(), 1)
}

func TestCuesRespectEnabledFlag(t *testing.T) {
	player := &fakePlayer{}
	enabled := false
	cues := NewCues(Resolver{Dir: "/a"}, player, func() bool { return enabled }, quietLogger())
	cues.Play(CueStart)
	require.Empty(t, player.started())

	enabled = true
	cues.Play(CueStart)
	require.Len(t, player.started(), 1)
	player.procs[0].Kill()
}

func TestChannelStartStopIdempotent(t *testing.T) {
	player := &fakePlayer{}
	ch := NewChannel(Resolver{Dir: "/a"}, player, quietLogger())

	ch.Stop()
	require.False(t, ch.Playing())

	ch.Start()
	ch.Start()
	require.True(t, ch.Playing())
	require.Len(t, player.started(), 1)

	ch.Stop()
	ch.Stop()
	require.False(t, ch.Playing())
	require.True(t, player.procs[0].killed)

	ch.Start()
	require.Len(t, player.started(), 2)
	ch.Stop()
}

func TestChannelWithNoopPlayerDoesNotSpin(t *testing.T) {
	ch := NewChannel(Resolver{Dir: "/a"}, NoopPlayer{}, quietLogger())
	ch.Start()
	require.True(t, ch.Playing())
	ch.Stop()
	require.False(t, ch.Playing())
}

func TestExecPlayerReportsMissingCommand(t *testing.T) {
	_, err := ExecPlayer{Command: filepath.Join(t.TempDir(), "missing-player")}.Start("x.mp3")
	require.Error(t, err)
}

func TestFallbackUsesFirstWorkingPlayer(t *testing.T) {
	broken := &fakePlayer{err: errors.New("no speaker")}
	working := &fakePlayer{}
	proc, err := Fallback{broken, working}.Start("/a/start.mp3")
	require.NoError(t, err)
	require.NoError(t, proc.Kill())
	require.Equal(t, []string{"/a/start.mp3"}, working.started())

	_, err = Fallback{broken, &fakePlayer{err: errors.New("no ffplay")}}.Start("x.mp3")
	require.ErrorContains(t, err, "no speaker")
	require.ErrorContains(t, err, "no ffplay")

	_, err = Fallback{}.Start("x.mp3")
	require.ErrorIs(t, err, ErrNoPlayer)
}

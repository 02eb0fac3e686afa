//go:build !nobeep

package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// speakerRate is the output rate the shared speaker is opened with; other
// rates are resampled.
const speakerRate beep.SampleRate = 44100

var ErrUnsupportedFormat = errors.New("audio: unsupported sound format")

// BeepPlayer decodes mp3 and wav files in-process and mixes them on the
// system speaker. The speaker is opened on first use.
type BeepPlayer struct {
	once    sync.Once
	initErr error
}

func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

func (p *BeepPlayer) Start(path string) (Process, error) {
	stream, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	p.once.Do(func() {
		p.initErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	if p.initErr != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("audio: open speaker: %w", p.initErr)
	}

	proc := &beepProcess{stream: stream, done: make(chan struct{})}
	var s beep.Streamer = stream
	if format.SampleRate != speakerRate {
		s = beep.Resample(4, format.SampleRate, speakerRate, s)
	}
	proc.ctrl = &beep.Ctrl{Streamer: beep.Seq(s, beep.Callback(proc.finish))}
	speaker.Play(proc.ctrl)
	return proc, nil
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return stream, format, nil
}

type beepProcess struct {
	ctrl   *beep.Ctrl
	stream beep.StreamSeekCloser
	done   chan struct{}
	once   sync.Once
}

// finish runs on the speaker goroutine once the track drains.
func (p *beepProcess) finish() {
	p.once.Do(func() {
		_ = p.stream.Close()
		close(p.done)
	})
}

func (p *beepProcess) Wait() error {
	<-p.done
	return nil
}

func (p *beepProcess) Kill() error {
	speaker.Lock()
	p.ctrl.Streamer = nil
	speaker.Unlock()
	p.finish()
	return nil
}

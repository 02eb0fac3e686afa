//go:build nobeep

package audio

// BeepPlayer is compiled out with the nobeep tag, for hosts without ALSA
// headers. Every Start fails so a Fallback moves on to the exec player.
type BeepPlayer struct{}

func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

func (*BeepPlayer) Start(string) (Process, error) {
	return nil, ErrNoPlayer
}

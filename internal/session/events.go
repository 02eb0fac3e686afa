package session

import "github.com/sandeepkv93/focusboard/internal/model"

type Event interface {
	isEvent()
}

type PhaseChanged struct {
	From    model.Phase
	To      model.Phase
	Cycle   int
	Skipped bool
}

// SessionCompleted is emitted when a work phase runs out. Subscribers use it
// to open the reflection prompt.
type SessionCompleted struct {
	Cycle       int
	WorkMinutes int
}

type StateChanged struct {
	State State
}

func (PhaseChanged) isEvent()     {}
func (SessionCompleted) isEvent() {}
func (StateChanged) isEvent()     {}

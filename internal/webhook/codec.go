// Package webhook encodes submission history into per-day JSON payloads and
// delivers them to a configured endpoint.
package webhook

import (
	"time"

	"github.com/sandeepkv93/focusboard/internal/history"
	"github.com/sandeepkv93/focusboard/internal/lines"
	"github.com/sandeepkv93/focusboard/internal/model"
)

const (
	TimeLayout = "03:04 PM"

	StatusCompleted = "Completed"
	StatusPartial   = "Partial"
)

type Reflection struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Entry struct {
	Time           string       `json:"time"`
	Title          string       `json:"title"`
	Duration       int          `json:"duration"`
	Status         string       `json:"status"`
	CompletedTasks []string     `json:"completedTasks"`
	Reflections    []Reflection `json:"reflections"`
}

// Payload is the body of one POST: every submission of a single day.
type Payload struct {
	Date        string  `json:"date"`
	Submissions []Entry `json:"submissions"`
}

// Encode groups subs by calendar date in loc. Days keep the order in which
// they first appear in subs.
func Encode(subs []model.Submission, loc *time.Location) []Payload {
	if loc == nil {
		loc = time.Local
	}
	groups := history.GroupByDay(subs, loc)
	out := make([]Payload, 0, len(groups))
	for _, g := range groups {
		p := Payload{Date: g.Date, Submissions: make([]Entry, 0, len(g.Submissions))}
		for _, s := range g.Submissions {
			p.Submissions = append(p.Submissions, encodeEntry(s, loc))
		}
		out = append(out, p)
	}
	return out
}

func encodeEntry(s model.Submission, loc *time.Location) Entry {
	status := StatusPartial
	if s.Completed {
		status = StatusCompleted
	}
	reflections := make([]Reflection, 0, len(s.Questions))
	for i, q := range s.Questions {
		reflections = append(reflections, Reflection{Question: q, Answer: s.Answer(i)})
	}
	return Entry{
		Time:           s.Timestamp.In(loc).Format(TimeLayout),
		Title:          s.Title,
		Duration:       s.Duration,
		Status:         status,
		CompletedTasks: lines.CompletedLabels(s.TaskContent),
		Reflections:    reflections,
	}
}

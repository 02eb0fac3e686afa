package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/stretchr/testify/require"
)

func paris(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	return loc
}

func exampleSubmission(loc *time.Location) model.Submission {
	return model.Submission{
		ID:          "s1",
		Title:       "Focus Session",
		Content:     []string{"a", "b", "c"},
		Timestamp:   time.Date(2024, 3, 1, 14, 5, 0, 0, loc),
		Duration:    25,
		Completed:   true,
		Questions:   []string{"Q1", "Q2", "Q3"},
		TaskContent: "- [x] Review emails\n- [ ] Check calendar",
	}
}

func TestEncodeExampleSubmission(t *testing.T) {
	loc := paris(t)
	payloads := Encode([]model.Submission{exampleSubmission(loc)}, loc)
	require.Len(t, payloads, 1)
	require.Equal(t, "3/1/2024", payloads[0].Date)

	entry := payloads[0].Submissions[0]
	require.Equal(t, "02:05 PM", entry.Time)
	require.Equal(t, StatusCompleted, entry.Status)
	require.Equal(t, 25, entry.Duration)
	require.Equal(t, []string{"Review emails"}, entry.CompletedTasks)
	require.Equal(t, []Reflection{{"Q1", "a"}, {"Q2", "b"}, {"Q3", "c"}}, entry.Reflections)
}

func TestEncodePadsMissingAnswersAndMarksPartial(t *testing.T) {
	loc := paris(t)
	sub := exampleSubmission(loc)
	sub.Completed = false
	sub.Content = []string{"only"}
	sub.TaskContent = ""

	entry := Encode([]model.Submission{sub}, loc)[0].Submissions[0]
	require.Equal(t, StatusPartial, entry.Status)
	require.Equal(t, "", entry.Reflections[2].Answer)

	raw, err := json.Marshal(entry)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"completedTasks":[]`)
}

func TestEncodeMorningTimeAndGrouping(t *testing.T) {
	loc := paris(t)
	a := exampleSubmission(loc)
	a.ID, a.Timestamp = "a", time.Date(2024, 3, 2, 8, 7, 0, 0, loc)
	b := exampleSubmission(loc)
	c := exampleSubmission(loc)
	c.ID, c.Timestamp = "c", time.Date(2024, 3, 1, 9, 0, 0, 0, loc)

	payloads := Encode([]model.Submission{a, b, c}, loc)
	require.Len(t, payloads, 2)
	require.Equal(t, "3/2/2024", payloads[0].Date)
	require.Equal(t, "08:07 AM", payloads[0].Submissions[0].Time)
	require.Equal(t, "3/1/2024", payloads[1].Date)
	require.Len(t, payloads[1].Submissions, 2)
}

type recorder struct {
	mu       sync.Mutex
	payloads []Payload
	types    []string
	failOn   int
}

func (r *recorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		defer r.mu.Unlock()
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		var p Payload
		if err := json.Unmarshal(raw, &p); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		r.payloads = append(r.payloads, p)
		r.types = append(r.types, req.Header.Get("Content-Type"))
		if r.failOn > 0 && len(r.payloads) == r.failOn {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func newClient(loc *time.Location) *Client {
	return NewClient(nil, loc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSendPostsOnePayloadPerDay(t *testing.T) {
	loc := paris(t)
	rec := &recorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	a := exampleSubmission(loc)
	b := exampleSubmission(loc)
	b.Timestamp = b.Timestamp.AddDate(0, 0, -1)
	require.NoError(t, newClient(loc).Send(t.Context(), srv.URL, []model.Submission{a, b}))

	require.Len(t, rec.payloads, 2)
	require.Equal(t, "3/1/2024", rec.payloads[0].Date)
	require.Equal(t, "2/29/2024", rec.payloads[1].Date)
	require.Equal(t, []string{"application/json", "application/json"}, rec.types)
}

func TestSendAbortsOnNon2xx(t *testing.T) {
	loc := paris(t)
	rec := &recorder{failOn: 1}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	a := exampleSubmission(loc)
	b := exampleSubmission(loc)
	b.Timestamp = b.Timestamp.AddDate(0, 0, -1)
	err := newClient(loc).Send(t.Context(), srv.URL, []model.Submission{a, b})

	var derr *DeliveryError
	require.True(t, errors.As(err, &derr))
	require.Equal(t, http.StatusBadGateway, derr.StatusCode)
	require.Equal(t, "3/1/2024", derr.Date)
	require.Len(t, rec.payloads, 1, "remaining days must not be sent")
}

func TestSendTransportFailure(t *testing.T) {
	loc := paris(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newClient(loc).Send(t.Context(), url, []model.Submission{exampleSubmission(loc)})
	var derr *DeliveryError
	require.ErrorAs(t, err, &derr)
	require.Zero(t, derr.StatusCode)
}

func TestSendRequiresURL(t *testing.T) {
	err := newClient(time.UTC).Send(t.Context(), "  ", nil)
	require.ErrorIs(t, err, ErrNoURL)
}

func TestSendWithoutSubmissionsPostsNothing(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()
	require.NoError(t, newClient(time.UTC).Send(t.Context(), srv.URL, nil))
	require.Empty(t, rec.payloads)
}

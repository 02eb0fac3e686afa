package update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/history"
	"github.com/sandeepkv93/focusboard/internal/lines"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/views"
	"github.com/sandeepkv93/focusboard/internal/webhook"
)

const shareTimeout = time.Minute

func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "S":
		return m.startShare()
	case "C":
		if m.deps.History.Len() == 0 {
			m.Status = StatusBar{Text: "history is already empty", IsError: false}
			return m, nil
		}
		m.History.ConfirmClear = true
		m.Status = StatusBar{Text: "clear all history? press y to confirm", IsError: false}
		return m, nil
	}
	var cmd tea.Cmd
	m.historyView, cmd = m.historyView.Update(msg)
	return m, cmd
}

func (m Model) handleClearConfirmKey(msg tea.KeyMsg) Model {
	m.History.ConfirmClear = false
	if msg.String() != "y" {
		m.Status = StatusBar{Text: "clear cancelled", IsError: false}
		return m
	}
	if err := m.deps.History.Clear(context.Background()); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("clear history: %v", err), IsError: true}
	} else {
		m.Status = StatusBar{Text: "history cleared", IsError: false}
	}
	m.refreshHistory()
	return m
}

// startShare sends the whole history to the configured webhook in the
// background and reports through ShareResultMsg.
func (m Model) startShare() (Model, tea.Cmd) {
	if m.Sharing {
		m.Status = StatusBar{Text: "share already in progress", IsError: false}
		return m, nil
	}
	if m.deps.Sharer == nil {
		m.Status = StatusBar{Text: "sharing is not available", IsError: true}
		return m, nil
	}
	url := m.deps.Settings.Get().WebhookURL
	if strings.TrimSpace(url) == "" {
		m.Status = StatusBar{Text: webhook.ErrNoURL.Error(), IsError: true}
		return m, nil
	}
	subs := m.deps.History.All()
	if len(subs) == 0 {
		m.Status = StatusBar{Text: "nothing to share", IsError: false}
		return m, nil
	}
	m.Sharing = true
	m.Status = StatusBar{Text: fmt.Sprintf("sharing %d submission(s)...", len(subs)), IsError: false}
	sharer, logger := m.deps.Sharer, m.deps.Logger
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
		defer cancel()
		err := sharer.Send(ctx, url, subs)
		if err != nil {
			var de *webhook.DeliveryError
			if errors.As(err, &de) {
				logger.Warn("share delivery failed", "date", de.Date, "status", de.StatusCode, "error", de.Err)
			} else {
				logger.Warn("share failed", "error", err)
			}
		}
		return ShareResultMsg{Count: len(subs), Err: err}
	}
}

func (m *Model) refreshHistory() {
	subs := m.deps.History.All()
	m.historyView.SetContent(views.RenderMarkdown(historyMarkdown(subs, m.deps.Location), m.deps.Settings.Get().DarkMode))
	m.historyView.GotoTop()
}

func historyMarkdown(subs []model.Submission, loc *time.Location) string {
	var b strings.Builder
	for _, group := range history.GroupByDay(subs, loc) {
		b.WriteString("## " + group.Date + "\n\n")
		for _, s := range group.Submissions {
			status := webhook.StatusPartial
			if s.Completed {
				status = webhook.StatusCompleted
			}
			b.WriteString(fmt.Sprintf("- **%s** %s (%d min, %s)\n", s.Timestamp.In(loc).Format(webhook.TimeLayout), s.Title, s.Duration, status))
			for _, label := range lines.CompletedLabels(s.TaskContent) {
				b.WriteString("  - [x] " + label + "\n")
			}
			for i, q := range s.Questions {
				if a := s.Answer(i); a != "" {
					b.WriteString(fmt.Sprintf("  - _%s_ %s\n", q, a))
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHistoryView() string {
	return views.RenderHistoryPanel(m.historyView.View(), m.deps.History.Len())
}

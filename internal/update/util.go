package update

import (
	"strings"
	"time"
)

const maxNotifications = 40

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// notify records n in the in-app log and, when notifications are enabled in
// the settings, forwards it to the desktop.
func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	if !m.deps.Settings.Get().Notifications || m.deps.Notifier == nil {
		return
	}
	if err := m.deps.Notifier.Send(n); err != nil {
		m.deps.Logger.Debug("desktop notification failed", "error", err)
	}
}

// syncBubbleData keeps the widgets in line with the model state after every
// update.
func (m *Model) syncBubbleData() {
	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}
}

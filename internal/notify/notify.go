package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{enabled: true}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "nexus")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

// SendOverdueReminder reports how many tasks slipped past their date
func (n *Notifier) SendOverdueReminder(count int) error {
	if count == 0 {
		return nil
	}
	body := fmt.Sprintf("%d tasks are overdue. Open the Overdue view to reschedule them.", count)
	if count == 1 {
		body = "1 task is overdue. Open the Overdue view to reschedule it."
	}
	return n.Send(Notification{
		Title:   "Overdue tasks",
		Body:    body,
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "appointment-missed-symbolic",
	})
}

// SendProjectArchived announces a project reaching 100%
func (n *Notifier) SendProjectArchived(title string) error {
	return n.Send(Notification{
		Title:   "Project archived",
		Body:    fmt.Sprintf("%s is 100%% complete and moved to Archives.", title),
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "emblem-ok-symbolic",
	})
}

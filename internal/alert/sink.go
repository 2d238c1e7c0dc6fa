package alert

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salon/internal/notify"
)

// Message is the wire form of an alert published to brokers.
type Message struct {
	Key           string    `json:"key"`
	AppointmentID string    `json:"appointmentId"`
	Offset        int       `json:"offset"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	FiredAt       time.Time `json:"firedAt"`
}

func NewMessage(a notify.Alert, at time.Time) Message {
	return Message{
		Key:           a.Key,
		AppointmentID: a.AppointmentID,
		Offset:        a.Offset,
		Title:         a.Title,
		Body:          a.Body,
		FiredAt:       at.UTC(),
	}
}

var titleStyle = lipgloss.NewStyle().Bold(true)

// Console writes alerts as lines of text.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	bell bool
	now  func() time.Time
}

func NewConsole(w io.Writer, bell bool) *Console {
	return &Console{w: w, bell: bell, now: time.Now}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Send(_ context.Context, a notify.Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := ""
	if c.bell {
		prefix = "\a"
	}

	_, err := fmt.Fprintf(c.w, "%s[%s] %s %s\n", prefix, c.now().Format("15:04"), titleStyle.Render(a.Title), a.Body)

	return err
}

// Func adapts a function to a Sink.
type Func func(ctx context.Context, alert notify.Alert) error

func (f Func) Name() string { return "func" }

func (f Func) Send(ctx context.Context, a notify.Alert) error {
	return f(ctx, a)
}

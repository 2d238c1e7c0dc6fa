package alert_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salon/internal/alert"
	"github.com/MrJamesThe3rd/salon/internal/notify"
)

type recordingSink struct {
	name string
	err  error
	got  []notify.Alert
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Send(_ context.Context, a notify.Alert) error {
	s.got = append(s.got, a)
	return s.err
}

var sample = notify.Alert{
	Key:           "a1:15",
	AppointmentID: "a1",
	Offset:        15,
	Title:         "Appointment in 15 min: Ana Souza",
	Body:          "Pintura Completa scheduled for 14:00.",
}

func TestGate_Permission(t *testing.T) {
	g := alert.NewGate(alert.GateConfig{})
	assert.False(t, g.Permitted())

	g.Grant()
	assert.True(t, g.Permitted())

	g.Revoke()
	assert.False(t, g.Permitted())

	assert.True(t, alert.NewGate(alert.GateConfig{Permitted: true}).Permitted())
}

func TestGate_Dispatch(t *testing.T) {
	t.Run("NotPermitted", func(t *testing.T) {
		sink := &recordingSink{name: "a"}
		g := alert.NewGate(alert.GateConfig{}, sink)

		err := g.Dispatch(context.Background(), sample)
		assert.ErrorIs(t, err, alert.ErrNotPermitted)
		assert.Empty(t, sink.got)
	})

	t.Run("FansOut", func(t *testing.T) {
		a, b := &recordingSink{name: "a"}, &recordingSink{name: "b"}
		g := alert.NewGate(alert.GateConfig{Permitted: true}, a, b)

		require.NoError(t, g.Dispatch(context.Background(), sample))
		assert.Equal(t, []notify.Alert{sample}, a.got)
		assert.Equal(t, []notify.Alert{sample}, b.got)
		assert.Equal(t, []string{"a", "b"}, g.Sinks())
	})

	t.Run("JoinsErrorsAndTriesEverySink", func(t *testing.T) {
		boom := errors.New("boom")
		a := &recordingSink{name: "a", err: boom}
		b := &recordingSink{name: "b"}
		g := alert.NewGate(alert.GateConfig{Permitted: true}, a, b)

		err := g.Dispatch(context.Background(), sample)
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "a: boom")
		assert.Len(t, b.got, 1)
	})

	t.Run("Throttled", func(t *testing.T) {
		sink := &recordingSink{name: "a"}
		g := alert.NewGate(alert.GateConfig{Permitted: true, PerMinute: 1, Burst: 2}, sink)

		require.NoError(t, g.Dispatch(context.Background(), sample))
		require.NoError(t, g.Dispatch(context.Background(), sample))

		err := g.Dispatch(context.Background(), sample)
		assert.ErrorIs(t, err, alert.ErrThrottled)
		assert.Len(t, sink.got, 2)
	})
}

func TestConsole_Send(t *testing.T) {
	var buf bytes.Buffer

	c := alert.NewConsole(&buf, true)
	require.NoError(t, c.Send(context.Background(), sample))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\a["))
	assert.Contains(t, out, "Appointment in 15 min: Ana Souza")
	assert.Contains(t, out, "Pintura Completa scheduled for 14:00.")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestFunc_Send(t *testing.T) {
	var got notify.Alert

	f := alert.Func(func(_ context.Context, a notify.Alert) error {
		got = a
		return nil
	})

	require.NoError(t, f.Send(context.Background(), sample))
	assert.Equal(t, sample, got)
	assert.Equal(t, "func", f.Name())
}

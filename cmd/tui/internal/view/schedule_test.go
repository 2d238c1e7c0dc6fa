package view

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salon/internal/salon"
	"github.com/MrJamesThe3rd/salon/internal/store"
)

func newSalon(t *testing.T) *salon.Service {
	t.Helper()

	svc := salon.NewService(store.NewDocumentStore(store.NewMemory(), ""))
	require.NoError(t, svc.Open(context.Background()))

	return svc
}

func book(t *testing.T, svc *salon.Service, date, clock string) *salon.Appointment {
	t.Helper()

	c, err := svc.AddClient(context.Background(), salon.ClientParams{Name: "Ana", Phone: "11999990000"})
	require.NoError(t, err)

	a, err := svc.AddAppointment(context.Background(), salon.AppointmentParams{
		ClientID:     c.ID,
		ProcedureIDs: []string{"1"},
		Date:         date,
		Time:         clock,
	})
	require.NoError(t, err)

	return a
}

func TestScheduleModel_CompleteSelected(t *testing.T) {
	svc := newSalon(t)
	today := Today(time.UTC)
	a := book(t, svc, today, "10:00")

	m := NewScheduleModel(svc, time.UTC)
	require.Len(t, m.appointments, 1)
	assert.Contains(t, m.View(), "R$ 150.00")

	msg := m.statusCmd(salon.StatusCompleted)()

	next, _ := m.Update(msg)
	m = next.(ScheduleModel)

	got, err := svc.Appointment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, salon.StatusCompleted, got.Status)
	assert.Contains(t, m.status, "marked completed")

	msg = m.statusCmd(salon.StatusCancelled)()

	next, _ = m.Update(msg)
	m = next.(ScheduleModel)
	assert.Contains(t, m.status, "Error")
}

func TestScheduleModel_DayNavigation(t *testing.T) {
	svc := newSalon(t)
	book(t, svc, ShiftDay(Today(time.UTC), 1), "10:00")

	m := NewScheduleModel(svc, time.UTC)
	assert.Empty(t, m.appointments)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScheduleModel)
	assert.Len(t, m.appointments, 1)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = next.(ScheduleModel)
	assert.Empty(t, m.appointments)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, BackMsg{}, cmd())
}

func TestScheduleModel_NewRequiresClient(t *testing.T) {
	m := NewScheduleModel(newSalon(t), time.UTC)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = next.(ScheduleModel)

	assert.Equal(t, scheduleStateBrowse, m.state)
	assert.Equal(t, "Add a client first.", m.status)
}

func TestFinanceModel(t *testing.T) {
	svc := newSalon(t)
	a := book(t, svc, "2024-06-01", "10:00")
	require.NoError(t, svc.UpdateStatus(context.Background(), a.ID, salon.StatusCompleted))

	m := NewFinanceModel(svc, time.UTC)
	assert.Equal(t, salon.Money(15000), m.summary.Total)
	assert.Contains(t, m.View(), "6/2024")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.Contains(t, next.View(), "Selagem Tradicional")
}

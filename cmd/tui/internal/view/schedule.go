package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salon/internal/finance"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

type scheduleState int

const (
	scheduleStateBrowse scheduleState = iota
	scheduleStateNew
)

// appointmentInput is held by pointer so the form bindings survive model copies.
type appointmentInput struct {
	ClientID     string
	ProcedureIDs []string
	Date         string
	Time         string
	Price        string
	Notes        string
}

type ScheduleModel struct {
	svc *salon.Service
	loc *time.Location

	state        scheduleState
	date         string
	table        table.Model
	appointments []salon.Appointment
	form         *huh.Form
	input        *appointmentInput

	status string
}

func NewScheduleModel(svc *salon.Service, loc *time.Location) ScheduleModel {
	columns := []table.Column{
		{Title: "Time", Width: 6},
		{Title: "Client", Width: 24},
		{Title: "Procedures", Width: 40},
		{Title: "Price", Width: 12},
		{Title: "Status", Width: 10},
	}

	m := ScheduleModel{
		svc:   svc,
		loc:   loc,
		date:  Today(loc),
		table: newTable(columns, 15),
	}
	m.refresh()

	return m
}

func (m ScheduleModel) Title() string { return "Schedule" }

func (m ScheduleModel) ShortHelp() string {
	if m.state == scheduleStateNew {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | ←/→: day | t: today | n: new | c: complete | x: cancel | d: delete"
}

func (m ScheduleModel) Init() tea.Cmd {
	return nil
}

func (m ScheduleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scheduleSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		if msg.date != "" {
			m.date = msg.date
		}

		m.state = scheduleStateBrowse
		m.form = nil
		m.table.Focus()
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case scheduleStateBrowse:
		return m.updateBrowse(msg)
	case scheduleStateNew:
		return m.updateNew(msg)
	}

	return m, nil
}

func (m ScheduleModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.date = ShiftDay(m.date, -1)
			m.refresh()

			return m, nil
		case "right", "l":
			m.date = ShiftDay(m.date, 1)
			m.refresh()

			return m, nil
		case "t":
			m.date = Today(m.loc)
			m.refresh()

			return m, nil
		case "r":
			m.refresh()
			return m, nil
		case "n":
			return m.enterNewMode()
		case "c":
			return m, m.statusCmd(salon.StatusCompleted)
		case "x":
			return m, m.statusCmd(salon.StatusCancelled)
		case "d":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ScheduleModel) enterNewMode() (tea.Model, tea.Cmd) {
	clients := m.svc.Clients("")
	if len(clients) == 0 {
		m.status = "Add a client first."
		return m, nil
	}

	clientOpts := make([]huh.Option[string], len(clients))
	for i, c := range clients {
		clientOpts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Phone), c.ID)
	}

	procs := m.svc.Procedures()

	procOpts := make([]huh.Option[string], len(procs))
	for i, p := range procs {
		procOpts[i] = huh.NewOption(fmt.Sprintf("%s  %s", p.Name, FormatMoney(p.Price)), p.ID)
	}

	m.input = &appointmentInput{Date: m.date, Time: "09:00"}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Client").
				Options(clientOpts...).
				Height(8).
				Value(&m.input.ClientID),

			huh.NewMultiSelect[string]().
				Title("Procedures").
				Options(procOpts...).
				Height(8).
				Value(&m.input.ProcedureIDs).
				Validate(func(ids []string) error {
					if len(ids) == 0 {
						return fmt.Errorf("pick at least one procedure")
					}

					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.input.Date).
				Validate(validateDate),

			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM").
				Value(&m.input.Time).
				Validate(validateTime),

			huh.NewInput().
				Title("Price").
				Description("Leave empty to use the procedure prices").
				Value(&m.input.Price).
				Validate(validatePrice),

			huh.NewText().
				Title("Notes").
				Lines(2).
				Value(&m.input.Notes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = scheduleStateNew
	m.table.Blur()

	return m, m.form.Init()
}

func (m ScheduleModel) updateNew(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = scheduleStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m ScheduleModel) View() string {
	total := finance.DailyTotal(m.appointments, m.date)

	header := fmt.Sprintf("%s | %d appointments | Total: %s",
		activeStyle(DayLabel(m.date)), len(m.appointments), activeStyle(FormatMoney(total)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == scheduleStateNew && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("New Appointment", m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ScheduleModel) refresh() {
	m.appointments = m.svc.AppointmentsOn(m.date)

	rows := make([]table.Row, 0, len(m.appointments))
	for _, a := range m.appointments {
		rows = append(rows, table.Row{
			a.Time,
			a.ClientName,
			a.ProcedureName,
			FormatMoney(a.Price),
			string(a.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m ScheduleModel) selected() (salon.Appointment, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.appointments) {
		return salon.Appointment{}, false
	}

	return m.appointments[idx], true
}

// Messages

type scheduleSavedMsg struct {
	status string
	date   string
	err    error
}

func (m ScheduleModel) createCmd() tea.Cmd {
	in := *m.input

	return func() tea.Msg {
		params := salon.AppointmentParams{
			ClientID:     in.ClientID,
			ProcedureIDs: in.ProcedureIDs,
			Date:         strings.TrimSpace(in.Date),
			Time:         strings.TrimSpace(in.Time),
			Notes:        strings.TrimSpace(in.Notes),
		}

		if strings.TrimSpace(in.Price) != "" {
			price, err := salon.ParseMoney(in.Price)
			if err != nil {
				return scheduleSavedMsg{err: err}
			}

			params.Price = &price
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		a, err := m.svc.AddAppointment(ctx, params)
		if err != nil {
			return scheduleSavedMsg{err: err}
		}

		return scheduleSavedMsg{
			status: fmt.Sprintf("Booked %s at %s.", a.ClientName, a.Time),
			date:   a.Date,
		}
	}
}

func (m ScheduleModel) statusCmd(status salon.Status) tea.Cmd {
	a, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.svc.UpdateStatus(ctx, a.ID, status); err != nil {
			return scheduleSavedMsg{err: err}
		}

		return scheduleSavedMsg{status: fmt.Sprintf("%s at %s marked %s.", a.ClientName, a.Time, status)}
	}
}

func (m ScheduleModel) deleteCmd() tea.Cmd {
	a, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.svc.DeleteAppointment(ctx, a.ID); err != nil {
			return scheduleSavedMsg{err: err}
		}

		return scheduleSavedMsg{status: fmt.Sprintf("Deleted %s at %s.", a.ClientName, a.Time)}
	}
}

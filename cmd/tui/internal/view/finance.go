package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salon/internal/finance"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

type FinanceModel struct {
	svc *salon.Service
	loc *time.Location

	summary    finance.Summary
	months     table.Model
	procedures table.Model
	byProc     bool
}

func NewFinanceModel(svc *salon.Service, loc *time.Location) FinanceModel {
	m := FinanceModel{
		svc: svc,
		loc: loc,
		months: newTable([]table.Column{
			{Title: "Month", Width: 10},
			{Title: "Completed", Width: 10},
			{Title: "Revenue", Width: 16},
		}, 12),
		procedures: newTable([]table.Column{
			{Title: "Procedure", Width: 40},
			{Title: "Count", Width: 8},
			{Title: "Revenue", Width: 16},
		}, 12),
	}
	m.refresh()

	return m
}

func (m FinanceModel) Title() string { return "Finance" }

func (m FinanceModel) ShortHelp() string {
	return "Esc: back | p: toggle months/procedures | r: refresh"
}

func (m FinanceModel) Init() tea.Cmd {
	return nil
}

func (m FinanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		case "p":
			m.byProc = !m.byProc
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.byProc {
		m.procedures, cmd = m.procedures.Update(msg)
	} else {
		m.months, cmd = m.months.Update(msg)
	}

	return m, cmd
}

func (m FinanceModel) View() string {
	header := fmt.Sprintf("This month: %s | Total: %s | %d completed",
		activeStyle(FormatMoney(m.summary.CurrentMonth)),
		activeStyle(FormatMoney(m.summary.Total)),
		m.summary.Count,
	)

	t := m.months
	if m.byProc {
		t = m.procedures
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			boxed(t.View()),
		),
	)
}

func (m *FinanceModel) refresh() {
	appointments := m.svc.Appointments()
	m.summary = finance.Summarize(appointments, time.Now().In(m.loc))

	rows := make([]table.Row, 0, len(m.summary.Months))

	// Newest month first.
	for i := len(m.summary.Months) - 1; i >= 0; i-- {
		mt := m.summary.Months[i]
		rows = append(rows, table.Row{mt.Label(), strconv.Itoa(mt.Count), FormatMoney(mt.Total)})
	}

	m.months.SetRows(rows)

	totals := finance.ByProcedure(appointments)

	rows = make([]table.Row, 0, len(totals))
	for _, pt := range totals {
		rows = append(rows, table.Row{pt.Name, strconv.Itoa(pt.Count), FormatMoney(pt.Total)})
	}

	m.procedures.SetRows(rows)
}

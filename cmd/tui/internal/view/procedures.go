package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salon/internal/salon"
)

type proceduresState int

const (
	proceduresStateBrowse proceduresState = iota
	proceduresStateEdit
)

type procedureInput struct {
	ID       string
	Name     string
	Category string
	Price    string
}

type ProceduresModel struct {
	svc *salon.Service

	state      proceduresState
	table      table.Model
	procedures []salon.Procedure
	form       *huh.Form
	input      *procedureInput

	status string
}

func NewProceduresModel(svc *salon.Service) ProceduresModel {
	columns := []table.Column{
		{Title: "Category", Width: 18},
		{Title: "Procedure", Width: 32},
		{Title: "Price", Width: 14},
	}

	m := ProceduresModel{
		svc:   svc,
		table: newTable(columns, 15),
	}
	m.refresh()

	return m
}

func (m ProceduresModel) Title() string { return "Procedures" }

func (m ProceduresModel) ShortHelp() string {
	if m.state == proceduresStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | n: new"
}

func (m ProceduresModel) Init() tea.Cmd {
	return nil
}

func (m ProceduresModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case proceduresSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = proceduresStateBrowse
		m.form = nil
		m.table.Focus()
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == proceduresStateEdit {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.procedures) {
				return m, nil
			}

			p := m.procedures[idx]

			return m.enterEditMode(&procedureInput{ID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price.String()})
		case "n":
			return m.enterEditMode(&procedureInput{})
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProceduresModel) enterEditMode(in *procedureInput) (tea.Model, tea.Cmd) {
	m.input = in

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.input.Name).Validate(required("name")),
			huh.NewInput().Title("Category").Value(&m.input.Category).Validate(required("category")),
			huh.NewInput().Title("Price").Placeholder("150,00").Value(&m.input.Price).
				Validate(func(s string) error {
					if err := required("price")(s); err != nil {
						return err
					}

					return validatePrice(s)
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = proceduresStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProceduresModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = proceduresStateBrowse
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

	return m, m.saveCmd()
}

func (m ProceduresModel) View() string {
	content := boxed(m.table.View())

	if m.state == proceduresStateEdit && m.form != nil {
		title := "New Procedure"
		if m.input.ID != "" {
			title = "Edit Procedure"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(title, m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ProceduresModel) refresh() {
	m.procedures = m.svc.Procedures()

	rows := make([]table.Row, 0, len(m.procedures))
	for _, p := range m.procedures {
		rows = append(rows, table.Row{p.Category, p.Name, FormatMoney(p.Price)})
	}

	m.table.SetRows(rows)
}

type proceduresSavedMsg struct {
	status string
	err    error
}

func (m ProceduresModel) saveCmd() tea.Cmd {
	in := *m.input

	return func() tea.Msg {
		price, err := salon.ParseMoney(in.Price)
		if err != nil {
			return proceduresSavedMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		name := strings.TrimSpace(in.Name)
		category := strings.TrimSpace(in.Category)

		if in.ID == "" {
			p, err := m.svc.AddProcedure(ctx, salon.ProcedureParams{Name: name, Category: category, Price: price})
			if err != nil {
				return proceduresSavedMsg{err: err}
			}

			return proceduresSavedMsg{status: fmt.Sprintf("Added %s.", p.Name)}
		}

		p, err := m.svc.UpdateProcedure(ctx, in.ID, salon.ProcedureUpdate{
			Name:     &name,
			Category: &category,
			Price:    &price,
		})
		if err != nil {
			return proceduresSavedMsg{err: err}
		}

		return proceduresSavedMsg{status: fmt.Sprintf("Updated %s: %s.", p.Name, FormatMoney(p.Price))}
	}
}

package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salon/internal/importer"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

const importTimeout = 2 * time.Minute

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateSearch
	clientsStateNew
	clientsStateImport
	clientsStateHistory
)

type clientInput struct {
	Name  string
	Phone string
	Email string
	Notes string
}

type ClientsModel struct {
	svc       *salon.Service
	importSvc *importer.Service

	state      clientsState
	table      table.Model
	clients    []salon.Client
	search     textinput.Model
	form       *huh.Form
	input      *clientInput
	filePicker filepicker.Model
	history    []salon.Appointment

	status string
}

func NewClientsModel(svc *salon.Service, importSvc *importer.Service) ClientsModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Phone", Width: 18},
		{Title: "Email", Width: 28},
		{Title: "Notes", Width: 30},
	}

	search := textinput.New()
	search.Placeholder = "name or phone"
	search.Prompt = "/ "

	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	m := ClientsModel{
		svc:        svc,
		importSvc:  importSvc,
		table:      newTable(columns, 15),
		search:     search,
		filePicker: fp,
	}
	m.refresh()

	return m
}

func (m ClientsModel) Title() string { return "Clients" }

func (m ClientsModel) ShortHelp() string {
	switch m.state {
	case clientsStateSearch:
		return "Enter: apply | Esc: clear"
	case clientsStateNew:
		return "Navigate form | Esc: cancel"
	case clientsStateImport, clientsStateHistory:
		return "Esc: back"
	}

	return "Esc: back | /: search | n: new | i: import contacts | Enter: history"
}

func (m ClientsModel) Init() tea.Cmd {
	return nil
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case clientsStateBrowse:
		return m.updateBrowse(msg)
	case clientsStateSearch:
		return m.updateSearch(msg)
	case clientsStateNew:
		return m.updateNew(msg)
	case clientsStateImport:
		return m.updateImport(msg)
	case clientsStateHistory:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
			m.table.Focus()
		}

		return m, nil
	}

	return m, nil
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "/":
			m.state = clientsStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "n":
			return m.enterNewMode()
		case "i":
			m.state = clientsStateImport
			m.table.Blur()

			return m, m.filePicker.Init()
		case "enter":
			return m.showHistory()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.search.Blur()
			m.state = clientsStateBrowse
			m.table.Focus()
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()

	return m, cmd
}

func (m ClientsModel) enterNewMode() (tea.Model, tea.Cmd) {
	m.input = &clientInput{}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.input.Name).Validate(required("name")),
			huh.NewInput().Title("Phone").Placeholder("(11) 99999-0000").Value(&m.input.Phone).Validate(required("phone")),
			huh.NewInput().Title("Email").Value(&m.input.Email),
			huh.NewText().Title("Notes").Lines(2).Value(&m.input.Notes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = clientsStateNew
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateNew(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = clientsStateBrowse
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

func (m ClientsModel) updateImport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = clientsStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.status = fmt.Sprintf("Importing from %s...", path)
		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ClientsModel) showHistory() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return m, nil
	}

	history, err := m.svc.ClientHistory(m.clients[idx].ID)
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.history = history
	m.state = clientsStateHistory
	m.table.Blur()

	return m, nil
}

func (m ClientsModel) View() string {
	var content string

	switch m.state {
	case clientsStateImport:
		content = fmt.Sprintf("Select contacts file (CSV):\n\n%s", m.filePicker.View())
	default:
		header := fmt.Sprintf("%d clients", len(m.clients))
		if q := m.search.Value(); q != "" || m.state == clientsStateSearch {
			header += " | " + m.search.View()
		}

		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			boxed(m.table.View()),
		)
	}

	switch {
	case m.state == clientsStateNew && m.form != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("New Client", m.form.View()))
	case m.state == clientsStateHistory:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("History", m.historyView()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ClientsModel) historyView() string {
	if len(m.history) == 0 {
		return "No appointments yet."
	}

	var b strings.Builder
	for _, a := range m.history {
		fmt.Fprintf(&b, "%s %s  %s\n  %s  [%s]\n", a.Date, a.Time, a.ProcedureName, FormatMoney(a.Price), a.Status)
	}

	return b.String()
}

func (m *ClientsModel) refresh() {
	m.clients = m.svc.Clients(m.search.Value())

	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		rows = append(rows, table.Row{c.Name, c.Phone, c.Email, c.Notes})
	}

	m.table.SetRows(rows)
}

// Messages

type clientsSavedMsg struct {
	status string
	err    error
}

func (m ClientsModel) createCmd() tea.Cmd {
	in := *m.input

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		c, err := m.svc.AddClient(ctx, salon.ClientParams{
			Name:  in.Name,
			Phone: in.Phone,
			Email: in.Email,
			Notes: in.Notes,
		})
		if err != nil {
			return clientsSavedMsg{err: err}
		}

		return clientsSavedMsg{status: fmt.Sprintf("Added %s.", c.Name)}
	}
}

func (m ClientsModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return clientsSavedMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := m.importSvc.ImportContacts(ctx, importer.FormatCSV, f)
		if err != nil {
			return clientsSavedMsg{err: err}
		}

		return clientsSavedMsg{
			status: fmt.Sprintf("Imported %d contacts, skipped %d duplicates.", len(res.Added), res.Skipped),
		}
	}
}

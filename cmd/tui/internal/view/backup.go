package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salon/internal/backup"
)

const backupTimeout = 2 * time.Minute

type backupState int

const (
	backupStateMenu backupState = iota
	backupStatePath
	backupStatePick
	backupStateConfirm
	backupStateRunning
	backupStateResult
)

type BackupModel struct {
	svc *backup.Service

	state      backupState
	form       *huh.Form
	path       *string
	confirm    *bool
	restoreSrc string
	filePicker filepicker.Model
	spinner    spinner.Model

	summary string
	err     error
}

func NewBackupModel(svc *backup.Service, dir string) BackupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	fp := filepicker.New()
	fp.CurrentDirectory = dir
	if _, err := os.Stat(dir); err != nil {
		fp.CurrentDirectory, _ = os.Getwd()
	}
	fp.AllowedTypes = []string{".json"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return BackupModel{
		svc:        svc,
		path:       &dir,
		confirm:    new(false),
		filePicker: fp,
		spinner:    s,
	}
}

func (m BackupModel) Title() string { return "Backup" }

func (m BackupModel) ShortHelp() string {
	switch m.state {
	case backupStateRunning:
		return "Working..."
	case backupStateMenu:
		return "Esc: back | e: export | r: restore"
	}

	return "Esc: back"
}

func (m BackupModel) Init() tea.Cmd {
	return nil
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != backupStateRunning {
		if m.state == backupStateMenu {
			return m, Back
		}

		m.state = backupStateMenu
		m.form = nil

		return m, nil
	}

	switch m.state {
	case backupStateMenu:
		return m.updateMenu(msg)
	case backupStatePath:
		return m.updatePath(msg)
	case backupStatePick:
		return m.updatePick(msg)
	case backupStateConfirm:
		return m.updateConfirm(msg)
	case backupStateRunning:
		return m.updateRunning(msg)
	}

	return m, nil
}

func (m BackupModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "e":
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Output Directory").
					Description("Directory will be created if it doesn't exist").
					Value(m.path).
					Validate(required("directory")),
			),
		).WithWidth(50).WithShowHelp(false)
		m.state = backupStatePath

		return m, m.form.Init()
	case "r":
		m.state = backupStatePick
		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m BackupModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = backupStateRunning
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.exportCmd(*m.path))
}

func (m BackupModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.restoreSrc = path
		*m.confirm = false
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Replace all data with %s?", path)).
					Description("Clients, procedures and appointments are overwritten.").
					Affirmative("Restore").
					Negative("Cancel").
					Value(m.confirm),
			),
		).WithWidth(60).WithShowHelp(false)
		m.state = backupStateConfirm

		return m, m.form.Init()
	}

	return m, cmd
}

func (m BackupModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirm {
		m.state = backupStateMenu
		return m, nil
	}

	m.state = backupStateRunning
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.restoreCmd(m.restoreSrc))
}

func (m BackupModel) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(backupResultMsg); ok {
		m.state = backupStateResult
		m.err = result.err
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m BackupModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case backupStateMenu:
		return style.Render("Backup\n\ne. Export data to a JSON file\nr. Restore data from a JSON file")
	case backupStatePath, backupStateConfirm:
		return style.Render(m.form.View())
	case backupStatePick:
		return style.Render(fmt.Sprintf("Select backup file:\n\n%s", m.filePicker.View()))
	case backupStateRunning:
		return style.Render(fmt.Sprintf("%s Working...", m.spinner.View()))
	case backupStateResult:
		if m.err != nil {
			return style.Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
		}

		return style.Render(successStyle(m.summary) + "\n\n(Esc to go back)")
	}

	return ""
}

type backupResultMsg struct {
	body string
	err  error
}

func (m BackupModel) exportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := m.svc.WriteFile(dir, time.Now())
		if err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{body: fmt.Sprintf("Backup written to %s", path)}
	}
}

func (m BackupModel) restoreCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return backupResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
		defer cancel()

		doc, err := m.svc.Restore(ctx, f)
		if err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{body: fmt.Sprintf("Restored %d clients, %d procedures and %d appointments.",
			len(doc.Clients), len(doc.Procedures), len(doc.Appointments))}
	}
}

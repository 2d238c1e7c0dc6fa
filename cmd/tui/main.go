package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salon/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/salon/internal/alert"
	"github.com/MrJamesThe3rd/salon/internal/app"
	"github.com/MrJamesThe3rd/salon/internal/config"
	"github.com/MrJamesThe3rd/salon/internal/logging"
	"github.com/MrJamesThe3rd/salon/internal/notify"
)

type View int

const (
	ViewMenu       View = 0
	ViewSchedule   View = 1
	ViewClients    View = 2
	ViewProcedures View = 3
	ViewFinance    View = 4
	ViewBackup     View = 5
)

type alertMsg struct {
	alert notify.Alert
	at    time.Time
}

type model struct {
	app *app.App

	currentView View
	screen      view.View
	size        tea.WindowSizeMsg

	lastAlert *alertMsg
}

func initialModel(a *app.App) model {
	return model{app: a, currentView: ViewMenu}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case alertMsg:
		m.lastAlert = &msg
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	newModel, cmd := m.screen.Update(msg)
	m.screen = newModel.(view.View)

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	svc := m.app.Salon

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.open(ViewSchedule, view.NewScheduleModel(svc, m.app.Location))
	case "2":
		m.open(ViewClients, view.NewClientsModel(svc, m.app.Importer))
	case "3":
		m.open(ViewProcedures, view.NewProceduresModel(svc))
	case "4":
		m.open(ViewFinance, view.NewFinanceModel(svc, m.app.Location))
	case "5":
		m.open(ViewBackup, view.NewBackupModel(m.app.Backup, m.app.Config.Backup.Dir))
	case "a":
		if m.app.Gate.Permitted() {
			m.app.Gate.Revoke()
		} else {
			m.app.Gate.Grant()
		}

		return m, nil
	case "c":
		m.lastAlert = nil
		return m, nil
	default:
		return m, nil
	}

	var cmd tea.Cmd
	if m.size.Width > 0 {
		var newModel tea.Model
		newModel, cmd = m.screen.Update(m.size)
		m.screen = newModel.(view.View)
	}

	return m, tea.Batch(cmd, m.screen.Init())
}

func (m *model) open(v View, screen view.View) {
	m.currentView = v
	m.screen = screen
}

func (m model) View() string {
	var body string

	if m.currentView == ViewMenu || m.screen == nil {
		alerts := "off"
		if m.app.Gate.Permitted() {
			alerts = "on"
		}

		body = lipgloss.NewStyle().Padding(2).Render(
			m.app.Config.App.Name + "\n\n" +
				"1. Schedule\n" +
				"2. Clients\n" +
				"3. Procedures\n" +
				"4. Finance\n" +
				"5. Backup\n\n" +
				fmt.Sprintf("a. Alerts: %s\n", alerts) +
				"c. Clear last alert\n" +
				"q. Quit",
		)
	} else {
		title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(m.screen.Title())
		help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.screen.ShortHelp())
		body = lipgloss.JoinVertical(lipgloss.Left, title, m.screen.View(), help)
	}

	if m.lastAlert == nil {
		return body
	}

	banner := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("161")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s  %s  %s", m.lastAlert.at.Format("15:04"), m.lastAlert.alert.Title, m.lastAlert.alert.Body))

	return lipgloss.JoinVertical(lipgloss.Left, banner, body)
}

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := tea.LogToFile("salon-tui.log", "")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logging.Setup(logFile, cfg.Log.Level, cfg.Log.Format, cfg.App.Name)

	var p *tea.Program

	toScreen := alert.Func(func(_ context.Context, a notify.Alert) error {
		p.Send(alertMsg{alert: a, at: time.Now()})
		return nil
	})

	a, err := app.New(context.Background(), cfg, nil, toScreen)
	if err != nil {
		return err
	}

	p = tea.NewProgram(initialModel(a), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- a.Run(ctx)
	}()

	_, runErr := p.Run()

	cancel()

	if err := <-done; err != nil {
		slog.Error("background jobs failed", "error", err)
	}

	return errors.Join(runErr, a.Close())
}

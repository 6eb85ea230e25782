package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"rifa-ledger/cmd/tui/internal/view"
	"rifa-ledger/internal/config"
	"rifa-ledger/internal/database"
	"rifa-ledger/internal/raffle"
	raffleStore "rifa-ledger/internal/raffle/store"
	"rifa-ledger/internal/snapshot"
	snapshotStore "rifa-ledger/internal/snapshot/store"
)

type model struct {
	raffleService   *raffle.Service
	snapshotService *snapshot.Service
	backupDir       string

	currentView View

	dashboardView view.DashboardModel
	createView    view.CreateModel
	sellView      view.SellModel
	backupView    view.BackupModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewCreate    View = 2
	ViewSell      View = 3
	ViewBackup    View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	raffleSvc := raffle.NewService(raffleStore.New(db))
	snapshotSvc := snapshot.NewService(snapshotStore.New(db))

	return model{
		raffleService:   raffleSvc,
		snapshotService: snapshotSvc,
		backupDir:       cfg.Backup.Dir,
		currentView:     ViewMenu,
		dashboardView:   view.NewDashboardModel(raffleSvc),
		createView:      view.NewCreateModel(raffleSvc),
		sellView:        view.NewSellModel(raffleSvc),
		backupView:      view.NewBackupModel(raffleSvc, snapshotSvc, cfg.Backup.Dir),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.raffleService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewCreate
				m.createView = view.NewCreateModel(m.raffleService)

				return m, m.createView.Init()
			case "3":
				m.currentView = ViewSell
				m.sellView = view.NewSellModel(m.raffleService)

				return m, m.sellView.Init()
			case "4":
				m.currentView = ViewBackup
				m.backupView = view.NewBackupModel(m.raffleService, m.snapshotService, m.backupDir)

				return m, m.backupView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewCreate:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.CreateModel)
	case ViewSell:
		var newModel tea.Model
		newModel, cmd = m.sellView.Update(msg)
		m.sellView = newModel.(view.SellModel)
	case ViewBackup:
		var newModel tea.Model
		newModel, cmd = m.backupView.Update(msg)
		m.backupView = newModel.(view.BackupModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Rifa Ledger\n\n" +
				"1. Dashboard\n" +
				"2. Create Raffle\n" +
				"3. Sell Numbers\n" +
				"4. Backup\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewCreate:
		return m.createView.View()
	case ViewSell:
		return m.sellView.View()
	case ViewBackup:
		return m.backupView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"custodia/cmd/cli/internal/view"
	"custodia/internal/attachment"
	"custodia/internal/config"
	"custodia/internal/database"
	"custodia/internal/expense"
	expenseStore "custodia/internal/expense/store"
	"custodia/internal/family"
	familyStore "custodia/internal/family/store"
	"custodia/internal/objstore"
	"custodia/internal/report"
)

type model struct {
	generator *report.Generator

	currentView View

	reportView view.ReportModel
}

type View int

const (
	ViewMenu   View = 0
	ViewReport View = 1
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	store := objstore.NewFSStore(cfg.Storage.LocalDir)

	expenseSvc := expense.NewService(expenseStore.New(db))
	familySvc := family.NewService(familyStore.New(db))
	generator := report.NewGenerator(expenseSvc, familySvc, attachment.NewLoader(store), store, slog.Default())

	return model{
		generator:   generator,
		currentView: ViewMenu,
		reportView:  view.NewReportModel(generator),
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
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.generator)

				return m, m.reportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Custodia CLI\n\n" +
				"1. Generate Report\n\n" +
				"q. Quit",
		)
	case ViewReport:
		return m.reportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run CLI", "error", err)
		os.Exit(1)
	}
}

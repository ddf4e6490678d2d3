package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"custodia/internal/expense"
	"custodia/internal/report"
)

type reportState int

const (
	reportStateTimeframe reportState = iota
	reportStateForm
	reportStateGenerating
	reportStateResult
)

const generateTimeout = 5 * time.Minute

type ReportModel struct {
	CommonModel
	generator *report.Generator

	state           reportState
	err             error
	timeframePicker TimeframePicker

	start expense.Date
	end   expense.Date

	form   *huh.Form
	userID string
	path   string

	spinner  spinner.Model
	percent  int
	message  string
	progress chan tea.Msg

	output *report.Output
}

func NewReportModel(generator *report.Generator) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ReportModel{
		generator:       generator,
		state:           reportStateTimeframe,
		timeframePicker: NewTimeframePicker(),
		path:            "./relatorio.pdf",
		spinner:         s,
	}
}

func (m ReportModel) Title() string { return "Generate Report" }

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.start = tfMsg.Start
		m.end = tfMsg.End
		m.form = m.buildForm()
		m.state = reportStateForm
		return m, m.form.Init()
	}

	switch m.state {
	case reportStateTimeframe:
		return m.updateTimeframe(msg)
	case reportStateForm:
		return m.updateForm(msg)
	case reportStateGenerating:
		return m.updateGenerating(msg)
	case reportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ReportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)
	return m, cmd
}

func (m ReportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = reportStateTimeframe
			m.timeframePicker.Reset()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = reportStateGenerating
	m.err = nil
	m.percent = 0
	m.message = "Starting"
	m.progress = make(chan tea.Msg, 8)

	return m, tea.Batch(m.spinner.Tick, m.runGenerateCmd(), m.listen())
}

func (m ReportModel) updateGenerating(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generateProgressMsg:
		m.percent = msg.percent
		m.message = msg.message
		return m, m.listen()

	case generateResultMsg:
		m.state = reportStateResult
		m.err = msg.err
		m.output = msg.output

		if m.err == nil && m.output != nil && m.path != "" {
			if err := os.WriteFile(m.path, m.output.Bytes, 0o644); err != nil {
				m.err = fmt.Errorf("writing %s: %w", m.path, err)
			}
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m ReportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}
	return m, nil
}

func (m *ReportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("user").
				Title("User ID").
				Description("Reports are scoped to a single account").
				Placeholder("00000000-0000-0000-0000-000000000000").
				Validate(func(s string) error {
					_, err := uuid.Parse(s)
					return err
				}).
				Value(&m.userID),
			huh.NewInput().
				Key("path").
				Title("Output File").
				Description("Where to write the generated PDF").
				Placeholder("./relatorio.pdf").
				Value(&m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

type generateProgressMsg struct {
	percent int
	message string
}

type generateResultMsg struct {
	output *report.Output
	err    error
}

func (m ReportModel) listen() tea.Cmd {
	ch := m.progress
	return func() tea.Msg {
		return <-ch
	}
}

func (m ReportModel) runGenerateCmd() tea.Cmd {
	var (
		ch     = m.progress
		userID = m.userID
		filter = report.Filter{Start: m.start, End: m.end}
	)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()

		id, err := uuid.Parse(userID)
		if err != nil {
			ch <- generateResultMsg{err: err}
			return nil
		}

		onProgress := func(percent int, message string) {
			// Drop updates rather than stall generation when the UI
			// is not draining fast enough.
			select {
			case ch <- generateProgressMsg{percent: percent, message: message}:
			default:
			}
		}

		out, genErr := m.generator.Generate(ctx, id, filter, onProgress)
		ch <- generateResultMsg{output: out, err: genErr}

		return nil
	}
}

func (m ReportModel) View() string {
	switch m.state {
	case reportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case reportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case reportStateGenerating:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s %d%% %s", m.spinner.View(), m.percent, m.message),
		)

	case reportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ReportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Report Generated!")

	s := m.output.Summary

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("File:     %s", m.path),
			fmt.Sprintf("Period:   %s to %s", s.Period.Start, s.Period.End),
			fmt.Sprintf("Expenses: %d (%d receipts, %d skipped)", s.ExpenseCount, s.ReceiptCount, s.SkippedRecords),
			fmt.Sprintf("Total:    %s", report.FormatAmount(s.TotalAmount)),
			"",
			"Esc: back to menu",
		),
	)
}

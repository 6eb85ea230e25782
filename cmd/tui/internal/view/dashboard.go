package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rifa-ledger/internal/raffle"
)

const gridColumns = 10

var (
	soldStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	availableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle     = lipgloss.NewStyle().Faint(true)
)

type dashboardState int

const (
	dashboardStateLoading dashboardState = iota
	dashboardStateReady
	dashboardStateNoRaffle
	dashboardStateError
)

type DashboardModel struct {
	CommonModel
	raffleService *raffle.Service

	state    dashboardState
	err      error
	raffle   *raffle.Raffle
	metrics  *raffle.Metrics
	numbers  []*raffle.Number
	progress progress.Model
}

func NewDashboardModel(svc *raffle.Service) DashboardModel {
	return DashboardModel{
		raffleService: svc,
		state:         dashboardStateLoading,
		progress:      progress.New(progress.WithDefaultGradient()),
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string { return "r: refresh | Esc: back" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

type dashboardLoadedMsg struct {
	raffle  *raffle.Raffle
	metrics *raffle.Metrics
	numbers []*raffle.Number
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		current, err := m.raffleService.Current(ctx)
		if err != nil || current == nil {
			return dashboardLoadedMsg{err: err}
		}

		metrics, err := m.raffleService.Metrics(ctx, current.ID, current.NumberPrice)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		numbers, err := m.raffleService.Numbers(ctx, current.ID, nil)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{raffle: current, metrics: metrics, numbers: numbers}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.err != nil {
			m.state = dashboardStateError
			m.err = msg.err

			return m, nil
		}

		if msg.raffle == nil {
			m.state = dashboardStateNoRaffle
			return m, nil
		}

		m.state = dashboardStateReady
		m.raffle = msg.raffle
		m.metrics = msg.metrics
		m.numbers = msg.numbers

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.state = dashboardStateLoading
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case dashboardStateLoading:
		return pad.Render("Loading...")

	case dashboardStateNoRaffle:
		return pad.Render("No active raffle. Create one from the menu.")

	case dashboardStateError:
		return pad.Render(soldStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	summary := []string{
		headerStyle.Render(m.raffle.Name),
		"",
		fmt.Sprintf("Total:     %d", m.metrics.Total),
		fmt.Sprintf("Sold:      %d", m.metrics.Sold),
		fmt.Sprintf("Available: %d", m.metrics.Available),
		fmt.Sprintf("Collected: %s", FormatMoney(m.metrics.Collected)),
		"",
		m.progress.ViewAs(m.metrics.Progress / 100),
		"",
		m.grid(),
	}

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left, summary...))
}

// grid renders the number pool, ten per row, sold numbers in red.
func (m DashboardModel) grid() string {
	var sb strings.Builder

	width := len(fmt.Sprint(m.raffle.TotalNumbers))

	for i, n := range m.numbers {
		cell := fmt.Sprintf("%*d", width, n.NumberValue)

		if n.State == raffle.StateSold {
			sb.WriteString(soldStyle.Render(cell))
		} else {
			sb.WriteString(availableStyle.Render(cell))
		}

		if (i+1)%gridColumns == 0 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}

	return sb.String()
}

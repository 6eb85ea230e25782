package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"rifa-ledger/internal/raffle"
	"rifa-ledger/internal/selection"
)

type sellState int

const (
	sellStateLoading sellState = iota
	sellStateForm
	sellStateSelling
	sellStateResult
)

type SellModel struct {
	CommonModel
	raffleService *raffle.Service

	state  sellState
	err    error
	raffle *raffle.Raffle

	form       *huh.Form
	buyerName  string
	buyerPhone string
	single     string
	list       string
	rng        string

	spinner spinner.Model
	sale    *raffle.Sale
	numbers []int
}

func NewSellModel(svc *raffle.Service) SellModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return SellModel{
		raffleService: svc,
		state:         sellStateLoading,
		spinner:       s,
	}
}

func (m SellModel) Title() string { return "Sell Numbers" }

func (m SellModel) ShortHelp() string {
	if m.state == sellStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

type sellRaffleLoadedMsg struct {
	raffle *raffle.Raffle
	err    error
}

func (m SellModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		current, err := m.raffleService.Current(ctx)

		return sellRaffleLoadedMsg{raffle: current, err: err}
	}
}

func (m SellModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("buyerName").
				Title("Buyer Name").
				Value(&m.buyerName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("buyer name must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Key("buyerPhone").
				Title("Buyer Phone").
				Value(&m.buyerPhone).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("buyer phone must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Key("single").
				Title("Single Number").
				Placeholder("7").
				Value(&m.single),
			huh.NewInput().
				Key("list").
				Title("Number List").
				Placeholder("3, 14, 25").
				Value(&m.list),
			huh.NewInput().
				Key("range").
				Title("Range").
				Placeholder("100-150").
				Value(&m.rng),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m SellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if loaded, ok := msg.(sellRaffleLoadedMsg); ok {
		if loaded.err != nil {
			m.state = sellStateResult
			m.err = loaded.err

			return m, nil
		}

		if loaded.raffle == nil {
			m.state = sellStateResult
			m.err = fmt.Errorf("no active raffle; create one first")

			return m, nil
		}

		m.raffle = loaded.raffle
		m.state = sellStateForm
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	switch m.state {
	case sellStateForm:
		return m.updateForm(msg)
	case sellStateSelling:
		return m.updateSelling(msg)
	case sellStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m SellModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	numbers, err := selection.Combine(
		m.form.GetString("single"),
		m.form.GetString("list"),
		m.form.GetString("range"),
		m.raffle.TotalNumbers,
	)
	if err == nil && len(numbers) == 0 {
		err = fmt.Errorf("select at least one number between 1 and %d", m.raffle.TotalNumbers)
	}

	if err != nil {
		m.state = sellStateResult
		m.err = err

		return m, nil
	}

	m.numbers = raffle.NormalizeNumbers(numbers)
	m.state = sellStateSelling
	m.err = nil

	return m, tea.Batch(m.spinner.Tick,
		m.runSellCmd(m.numbers, m.form.GetString("buyerName"), m.form.GetString("buyerPhone")))
}

type sellResultMsg struct {
	sale *raffle.Sale
	err  error
}

func (m SellModel) runSellCmd(numbers []int, buyerName, buyerPhone string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sale, err := m.raffleService.Sell(ctx, m.raffle, numbers, buyerName, buyerPhone)

		return sellResultMsg{sale: sale, err: err}
	}
}

func (m SellModel) updateSelling(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(sellResultMsg); ok {
		m.state = sellStateResult
		m.err = result.err
		m.sale = result.sale

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m SellModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m SellModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case sellStateLoading:
		return pad.Render("Loading raffle...")

	case sellStateForm:
		return pad.Render(m.form.View())

	case sellStateSelling:
		return pad.Render(fmt.Sprintf("%s Selling %d numbers...", m.spinner.View(), len(m.numbers)))

	case sellStateResult:
		return m.viewResult()
	}

	return ""
}

func (m SellModel) viewResult() string {
	pad := lipgloss.NewStyle().Padding(1)

	if m.err != nil {
		var conflict *raffle.ConflictError
		if errors.As(m.err, &conflict) {
			return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
				soldStyle.Render("Some numbers are already sold:"),
				"",
				raffle.FormatNumbers(conflict.Numbers),
				"",
				faintStyle.Render("Nothing was sold. Adjust the selection and try again."),
			))
		}

		return pad.Render(soldStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Sale complete"),
		"",
		fmt.Sprintf("Buyer:   %s (%s)", m.sale.BuyerName, m.sale.BuyerPhone),
		fmt.Sprintf("Numbers: %s", raffle.FormatNumbers(m.numbers)),
		fmt.Sprintf("Total:   %s", FormatMoney(m.sale.TotalPaid)),
	))
}

package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"rifa-ledger/internal/raffle"
)

type createState int

const (
	createStateForm createState = iota
	createStateCreating
	createStateResult
)

type CreateModel struct {
	CommonModel
	raffleService *raffle.Service

	state createState
	err   error

	form    *huh.Form
	name    string
	total   string
	price   string
	confirm bool
	spinner spinner.Model
	created *raffle.Raffle
}

func NewCreateModel(svc *raffle.Service) CreateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := CreateModel{
		raffleService: svc,
		state:         createStateForm,
		spinner:       s,
	}
	m.form = m.buildForm()

	return m
}

func (m CreateModel) Title() string { return "Create Raffle" }

func (m CreateModel) ShortHelp() string {
	if m.state == createStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m CreateModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Raffle Name").
				Value(&m.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Key("total").
				Title("Total Numbers").
				Placeholder("100").
				Value(&m.total).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("must be a positive integer")
					}
					return nil
				}),
			huh.NewInput().
				Key("price").
				Title("Price per Number").
				Placeholder("2.50").
				Value(&m.price).
				Validate(func(s string) error {
					p, err := ParsePrice(s)
					if err != nil || p <= 0 {
						return fmt.Errorf("must be a positive price")
					}
					return nil
				}),
			huh.NewConfirm().
				Key("confirm").
				Title("Replace current raffle?").
				Description("Creating a raffle deletes the existing raffle and all its sales. Export a backup first if you need them.").
				Value(&m.confirm),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case createStateForm:
		return m.updateForm(msg)
	case createStateCreating:
		return m.updateCreating(msg)
	case createStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m CreateModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	if !m.form.GetBool("confirm") {
		return m, Back
	}

	name := m.form.GetString("name")
	total, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("total")))
	price, _ := ParsePrice(m.form.GetString("price"))

	m.state = createStateCreating
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runCreateCmd(name, total, price))
}

type createResultMsg struct {
	raffle *raffle.Raffle
	err    error
}

func (m CreateModel) runCreateCmd(name string, total int, price float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		created, err := m.raffleService.Create(ctx, raffle.CreateParams{
			Name:         name,
			TotalNumbers: total,
			NumberPrice:  price,
		})

		return createResultMsg{raffle: created, err: err}
	}
}

func (m CreateModel) updateCreating(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(createResultMsg); ok {
		m.state = createStateResult
		m.err = result.err
		m.created = result.raffle

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m CreateModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m CreateModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case createStateForm:
		return pad.Render(m.form.View())

	case createStateCreating:
		return pad.Render(fmt.Sprintf("%s Creating raffle and number pool...", m.spinner.View()))

	case createStateResult:
		if m.err != nil {
			return pad.Render(soldStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}

		return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render("Raffle created"),
			"",
			fmt.Sprintf("%s: %d numbers at %s each",
				m.created.Name, m.created.TotalNumbers, FormatMoney(m.created.NumberPrice)),
		))
	}

	return ""
}

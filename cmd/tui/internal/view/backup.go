package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"rifa-ledger/internal/raffle"
	"rifa-ledger/internal/snapshot"
)

type backupState int

const (
	backupStateAction backupState = iota
	backupStateExportPath
	backupStateImportPick
	backupStateWorking
	backupStateResult
)

type backupAction string

const (
	actionExport backupAction = "export"
	actionImport backupAction = "import"
)

type BackupModel struct {
	CommonModel
	raffleService   *raffle.Service
	snapshotService *snapshot.Service

	state  backupState
	err    error
	action backupAction

	actionForm *huh.Form
	pathForm   *huh.Form
	dir        string
	filePicker filepicker.Model

	summary string
}

func NewBackupModel(raffles *raffle.Service, snapshots *snapshot.Service, defaultDir string) BackupModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".json"}
	fp.CurrentDirectory = defaultDir
	fp.SetHeight(15)

	m := BackupModel{
		raffleService:   raffles,
		snapshotService: snapshots,
		state:           backupStateAction,
		dir:             defaultDir,
		filePicker:      fp,
	}
	m.actionForm = m.buildActionForm()

	return m
}

func (m BackupModel) Title() string { return "Backup" }

func (m BackupModel) ShortHelp() string {
	switch m.state {
	case backupStateImportPick:
		return "Enter: select file | Esc: back"
	case backupStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m BackupModel) Init() tea.Cmd {
	return m.actionForm.Init()
}

func (m *BackupModel) buildActionForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[backupAction]().
				Key("action").
				Title("Backup").
				Options(
					huh.NewOption("Export current raffle to a file", actionExport),
					huh.NewOption("Import a backup file (replaces everything)", actionImport),
				).
				Value(&m.action),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m *BackupModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("dir").
				Title("Backup Directory").
				Description("Directory will be created if it doesn't exist").
				Value(&m.dir),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case backupStateAction:
		return m.updateAction(msg)
	case backupStateExportPath:
		return m.updateExportPath(msg)
	case backupStateImportPick:
		return m.updateImportPick(msg)
	case backupStateWorking:
		return m.updateWorking(msg)
	case backupStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m BackupModel) updateAction(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.actionForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.actionForm = f
	}

	if m.actionForm.State != huh.StateCompleted {
		return m, cmd
	}

	if m.action == actionExport {
		m.state = backupStateExportPath
		m.pathForm = m.buildPathForm()

		return m, m.pathForm.Init()
	}

	m.state = backupStateImportPick

	return m, m.filePicker.Init()
}

func (m BackupModel) updateExportPath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.pathForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.pathForm = f
	}

	if m.pathForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = backupStateWorking

	return m, m.runExportCmd(m.pathForm.GetString("dir"))
}

func (m BackupModel) updateImportPick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if selected, path := m.filePicker.DidSelectFile(msg); selected {
		m.state = backupStateWorking
		return m, m.runImportCmd(path)
	}

	return m, cmd
}

type backupResultMsg struct {
	summary string
	err     error
}

func (m BackupModel) runExportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		current, err := m.raffleService.Current(ctx)
		if err != nil {
			return backupResultMsg{err: err}
		}

		if current == nil {
			return backupResultMsg{err: fmt.Errorf("no active raffle to export")}
		}

		payload, err := m.snapshotService.Export(ctx, current.ID)
		if err != nil {
			return backupResultMsg{err: err}
		}

		path, err := m.snapshotService.WriteFile(payload, dir)
		if err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{summary: fmt.Sprintf("Exported %q to %s", current.Name, path)}
	}
}

func (m BackupModel) runImportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		payload, err := snapshot.ReadFile(path)
		if err != nil {
			return backupResultMsg{err: err}
		}

		if err := m.snapshotService.Import(ctx, payload); err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{summary: fmt.Sprintf("Imported %q (%d numbers, %d sales)",
			payload.Raffle.Name, len(payload.Numbers), len(payload.Sales))}
	}
}

func (m BackupModel) updateWorking(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(backupResultMsg); ok {
		m.state = backupStateResult
		m.err = result.err
		m.summary = result.summary

		return m, nil
	}

	return m, nil
}

func (m BackupModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m BackupModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case backupStateAction:
		return pad.Render(m.actionForm.View())

	case backupStateExportPath:
		return pad.Render(m.pathForm.View())

	case backupStateImportPick:
		return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
			"Pick a backup file:",
			"",
			m.filePicker.View(),
		))

	case backupStateWorking:
		return pad.Render("Working...")

	case backupStateResult:
		if m.err != nil {
			return pad.Render(soldStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}

		return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render("Done"),
			"",
			m.summary,
		))
	}

	return ""
}

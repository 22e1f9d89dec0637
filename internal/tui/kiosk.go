package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
	"github.com/koresolucoes/ponto/internal/config"
	"github.com/koresolucoes/ponto/internal/notify"
	"github.com/koresolucoes/ponto/internal/store"
)

type kioskViewState int

const (
	kioskListView kioskViewState = iota
	kioskPinView
	kioskStatusView
)

type funcionariosMsg struct {
	funcionarios []api.Funcionario
	err          error
}

// KioskApp is the shared-terminal flow: pick an employee, enter the
// PIN, show the punch confirmation, return to the picker.
type KioskApp struct {
	state  kioskViewState
	picker pickerModel
	pinpad pinpadModel
	status statusModel

	client *api.Client
	cfg    *config.Config
	db     *store.DB
	logger *slog.Logger

	// shared timer token: bumped whenever a screen with a delayed
	// auto-navigation is replaced, so stale ticks are dropped
	seq int
}

func NewKioskApp(cfg *config.Config, client *api.Client, db *store.DB, logger *slog.Logger) *KioskApp {
	if logger == nil {
		logger = slog.Default()
	}
	return &KioskApp{
		state:  kioskListView,
		picker: newPickerModel(),
		client: client,
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

func (a *KioskApp) confirmDelay() time.Duration {
	return time.Duration(a.cfg.Terminal.ConfirmDelayMillis) * time.Millisecond
}

func (a *KioskApp) idleDelay() time.Duration {
	return time.Duration(a.cfg.Terminal.IdleLogoutSeconds) * time.Second
}

func (a *KioskApp) fetchFuncionarios() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		funcionarios, err := client.ListFuncionarios(ctx)
		return funcionariosMsg{funcionarios: funcionarios, err: err}
	}
}

func (a *KioskApp) Init() tea.Cmd {
	return tea.Batch(a.picker.Init(), a.fetchFuncionarios())
}

func (a *KioskApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			if a.state != kioskListView {
				return a, a.returnToList()
			}
			return a, nil
		case "r":
			// retry affordance on the picker's error state
			if a.state == kioskListView && a.picker.errMsg != "" {
				a.picker.loading = true
				a.picker.errMsg = ""
				return a, a.fetchFuncionarios()
			}
		}

	case funcionariosMsg:
		if msg.err != nil {
			a.picker.setError(api.UserMessage(msg.err))
		} else {
			a.picker.setFuncionarios(msg.funcionarios)
		}
		return a, nil

	case pinAdvanceMsg:
		if a.state == kioskPinView && msg.seq == a.pinpad.seq && a.pinpad.state == pinSuccess {
			return a, a.showStatus()
		}
		return a, nil

	case statusIdleMsg:
		if a.state == kioskStatusView && msg.seq == a.status.seq {
			return a, a.returnToList()
		}
		return a, nil
	}

	switch a.state {
	case kioskListView:
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		if a.picker.chosen != nil {
			chosen := a.picker.chosen
			a.picker.chosen = nil
			a.state = kioskPinView
			a.pinpad = newPinpadModel(a.client, chosen.ID, a.confirmDelay())
			return a, a.pinpad.Init()
		}
		return a, cmd

	case kioskPinView:
		var cmd tea.Cmd
		prevState := a.pinpad.state
		a.pinpad, cmd = a.pinpad.Update(msg)
		if a.pinpad.abort {
			return a, a.returnToList()
		}
		if prevState != pinSuccess && a.pinpad.state == pinSuccess {
			a.recordPunch()
		}
		return a, cmd

	case kioskStatusView:
		var cmd tea.Cmd
		a.status, cmd = a.status.Update(msg)
		return a, cmd
	}

	return a, nil
}

// recordPunch logs the punch locally and raises the desktop
// notification. Both are best-effort.
func (a *KioskApp) recordPunch() {
	response := a.pinpad.response
	employee := a.pinpad.employee
	if response == nil || employee == nil {
		return
	}

	if a.db != nil {
		_, err := a.db.InsertPunch(&store.Punch{
			EmployeeID:   employee.ID,
			EmployeeName: employee.Name,
			Status:       string(response.Status),
			PunchedAt:    time.Now(),
		})
		if err != nil {
			a.logger.Debug("recording punch locally", "error", err)
		}
	}
	if a.cfg.Notifications.Enabled {
		notify.Send(a.logger, "Ponto Móvel", response.Status.Message())
	}
}

func (a *KioskApp) showStatus() tea.Cmd {
	a.seq++
	a.state = kioskStatusView
	a.status = newStatusModel(a.client, a.pinpad.employee, a.pinpad.response, a.idleDelay(), a.seq)
	return a.status.Init()
}

func (a *KioskApp) returnToList() tea.Cmd {
	a.seq++
	a.state = kioskListView
	a.picker = newPickerModel()
	return tea.Batch(a.picker.Init(), a.fetchFuncionarios())
}

func (a *KioskApp) View() string {
	switch a.state {
	case kioskListView:
		return a.picker.View()
	case kioskPinView:
		return a.pinpad.View()
	case kioskStatusView:
		return a.status.View()
	}
	return ""
}

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
)

const pinLength = 4

type pinState int

const (
	pinFetching pinState = iota
	pinIdle
	pinLoading
	pinSuccess
	pinError
)

// Keypress vocabulary of the pad. Terminal keys are normalized into
// these before hitting the transition function.
const (
	keyBackspace = "backspace"
	keyClear     = "limpar"
)

// applyPinKey is the pure keypress transition of the PIN pad: digits
// append up to the fixed length, backspace pops, clear empties. No key
// is accepted while fetching, loading or after success; any key in the
// error state returns to idle.
func applyPinKey(state pinState, pin, key string) (pinState, string) {
	if state == pinFetching || state == pinLoading || state == pinSuccess {
		return state, pin
	}

	switch {
	case len(key) == 1 && key >= "0" && key <= "9":
		if len(pin) < pinLength {
			pin += key
		}
	case key == keyBackspace:
		if len(pin) > 0 {
			pin = pin[:len(pin)-1]
		}
	case key == keyClear:
		pin = ""
	}

	if state == pinError {
		state = pinIdle
	}
	return state, pin
}

// canSubmit gates submission on a complete PIN in the idle state.
func canSubmit(state pinState, pin string) bool {
	return state == pinIdle && len(pin) == pinLength
}

type pinEmployeeMsg struct {
	employee *api.Funcionario
	err      error
}

type pinPunchMsg struct {
	response *api.BaterPontoResponse
	err      error
}

// pinAdvanceMsg fires after the success delay. The sequence token keeps
// a stale timer from advancing a pad that was already reset.
type pinAdvanceMsg struct {
	seq int
}

type pinpadModel struct {
	client     *api.Client
	employeeID string
	employee   *api.Funcionario

	state    pinState
	pin      string
	message  string
	response *api.BaterPontoResponse
	spinner  spinner.Model

	confirmDelay time.Duration
	seq          int

	// set when the employee fetch failed and the kiosk should bail out
	// to the picker
	abort bool
}

func newPinpadModel(client *api.Client, employeeID string, confirmDelay time.Duration) pinpadModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return pinpadModel{
		client:       client,
		employeeID:   employeeID,
		state:        pinFetching,
		spinner:      s,
		confirmDelay: confirmDelay,
	}
}

func (m pinpadModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchEmployee())
}

func (m pinpadModel) fetchEmployee() tea.Cmd {
	client, id := m.client, m.employeeID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		employee, err := client.GetFuncionario(ctx, id)
		return pinEmployeeMsg{employee: employee, err: err}
	}
}

func (m pinpadModel) submit() tea.Cmd {
	client := m.client
	req := api.BaterPontoRequest{EmployeeID: m.employeeID, Pin: m.pin}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		response, err := client.BaterPonto(ctx, req)
		return pinPunchMsg{response: response, err: err}
	}
}

func (m pinpadModel) scheduleAdvance() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.confirmDelay, func(time.Time) tea.Msg {
		return pinAdvanceMsg{seq: seq}
	})
}

func (m pinpadModel) Update(msg tea.Msg) (pinpadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case pinEmployeeMsg:
		if m.state != pinFetching {
			return m, nil
		}
		if msg.err != nil {
			m.abort = true
			return m, nil
		}
		m.employee = msg.employee
		m.state = pinIdle
		return m, nil

	case pinPunchMsg:
		if m.state != pinLoading {
			return m, nil
		}
		if msg.err != nil {
			m.state = pinError
			m.message = "PIN incorreto ou falha na comunicação. Tente novamente."
			m.pin = ""
			return m, nil
		}
		m.state = pinSuccess
		m.response = msg.response
		m.message = msg.response.Status.Message()
		m.seq++
		return m, m.scheduleAdvance()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m pinpadModel) handleKey(msg tea.KeyMsg) (pinpadModel, tea.Cmd) {
	key := msg.String()

	if key == "enter" {
		if canSubmit(m.state, m.pin) {
			m.state = pinLoading
			m.message = "Processando..."
			return m, tea.Batch(m.spinner.Tick, m.submit())
		}
		return m, nil
	}

	normalized := key
	switch key {
	case "backspace":
		normalized = keyBackspace
	case "c", "C", "delete":
		normalized = keyClear
	}

	prevState := m.state
	m.state, m.pin = applyPinKey(m.state, m.pin, normalized)
	if prevState == pinError && m.state == pinIdle {
		m.message = ""
	}
	return m, nil
}

func (m pinpadModel) dots() string {
	var b strings.Builder
	for i := 0; i < pinLength; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i < len(m.pin) {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return pinDotStyle.Render(b.String())
}

func (m pinpadModel) View() string {
	if m.state == pinFetching {
		return m.spinner.View() + " Carregando funcionário..."
	}

	var b strings.Builder
	if m.employee != nil {
		b.WriteString(titleStyle.Render(AvatarStyle(m.employee.Name).Render(Initials(m.employee.Name)) + "  " + m.employee.Name))
		b.WriteString("\n")
		if m.employee.Roles.Name != "" {
			b.WriteString(subtitleStyle.Render(m.employee.Roles.Name))
			b.WriteString("\n")
		}
	}

	b.WriteString("Digite seu PIN de 4 dígitos\n\n")
	b.WriteString("  " + m.dots() + "\n")

	switch m.state {
	case pinLoading:
		b.WriteString("\n" + m.spinner.View() + " " + m.message + "\n")
	case pinSuccess:
		b.WriteString("\n" + successStyle.Render(m.message) + "\n")
	case pinError:
		b.WriteString("\n" + errorStyle.Render(m.message) + "\n")
	}

	b.WriteString(helpStyle.Render("0-9: digitar • Backspace: apagar • C: limpar • Enter: confirmar • Esc: voltar"))
	return boxStyle.Render(b.String())
}

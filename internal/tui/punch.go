package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
	"github.com/koresolucoes/ponto/internal/config"
	"github.com/koresolucoes/ponto/internal/geo"
)

type geoResultMsg struct {
	coords geo.Coordinates
	err    error
}

type punchDoneMsg struct {
	response *api.BaterPontoResponse
	err      error
}

// punchCloseMsg closes the modal after the success delay.
type punchCloseMsg struct {
	seq int
}

// punchModel is the portal's punch modal. Geolocation, when enabled, is
// a blocking prerequisite: its failure aborts the punch with a
// cause-specific message and the API is never called.
type punchModel struct {
	client   *api.Client
	employee api.Funcionario
	provider geo.Provider
	geoCfg   config.GeoConfig

	state    pinState
	pin      string
	message  string
	response *api.BaterPontoResponse
	coords   *geo.Coordinates
	spinner  spinner.Model
	seq      int
}

func newPunchModel(client *api.Client, employee api.Funcionario, provider geo.Provider, geoCfg config.GeoConfig) punchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return punchModel{
		client:   client,
		employee: employee,
		provider: provider,
		geoCfg:   geoCfg,
		state:    pinIdle,
		spinner:  s,
	}
}

func (m punchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m punchModel) busy() bool {
	return m.state == pinLoading
}

func (m punchModel) resolveGeo() tea.Cmd {
	provider := m.provider
	timeout := time.Duration(m.geoCfg.TimeoutSeconds) * time.Second
	return func() tea.Msg {
		coords, err := geo.Resolve(context.Background(), provider, timeout)
		return geoResultMsg{coords: coords, err: err}
	}
}

func (m punchModel) submitPunch(coords *geo.Coordinates) tea.Cmd {
	client := m.client
	req := api.BaterPontoRequest{EmployeeID: m.employee.ID, Pin: m.pin}
	if coords != nil {
		req.Latitude = &coords.Latitude
		req.Longitude = &coords.Longitude
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		response, err := client.BaterPonto(ctx, req)
		return punchDoneMsg{response: response, err: err}
	}
}

func (m punchModel) scheduleClose() tea.Cmd {
	seq := m.seq
	return tea.Tick(1500*time.Millisecond, func(time.Time) tea.Msg {
		return punchCloseMsg{seq: seq}
	})
}

func (m punchModel) Update(msg tea.Msg) (punchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case geoResultMsg:
		if m.state != pinLoading {
			return m, nil
		}
		if msg.err != nil {
			m.state = pinError
			m.message = msg.err.Error()
			m.pin = ""
			return m, nil
		}
		coords := msg.coords
		m.coords = &coords
		m.message = "Processando..."
		return m, m.submitPunch(&coords)

	case punchDoneMsg:
		if m.state != pinLoading {
			return m, nil
		}
		m.pin = ""
		if msg.err != nil {
			m.state = pinError
			m.message = "PIN incorreto. Tente novamente."
			return m, nil
		}
		m.state = pinSuccess
		m.response = msg.response
		m.message = msg.response.Status.Message()
		m.seq++
		return m, m.scheduleClose()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m punchModel) handleKey(msg tea.KeyMsg) (punchModel, tea.Cmd) {
	key := msg.String()

	if key == "enter" {
		if !canSubmit(m.state, m.pin) {
			return m, nil
		}
		m.state = pinLoading
		if m.provider != nil {
			m.message = "Obtendo localização..."
			return m, tea.Batch(m.spinner.Tick, m.resolveGeo())
		}
		m.message = "Processando..."
		return m, tea.Batch(m.spinner.Tick, m.submitPunch(nil))
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

func (m punchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bater Ponto"))
	b.WriteString("\n")
	b.WriteString(m.employee.Name + "\n\n")

	var dots strings.Builder
	for i := 0; i < pinLength; i++ {
		if i > 0 {
			dots.WriteString(" ")
		}
		if i < len(m.pin) {
			dots.WriteString("●")
		} else {
			dots.WriteString("○")
		}
	}
	b.WriteString("  " + pinDotStyle.Render(dots.String()) + "\n")

	switch m.state {
	case pinLoading:
		b.WriteString("\n" + m.spinner.View() + " " + m.message + "\n")
	case pinSuccess:
		b.WriteString("\n" + successStyle.Render(m.message) + "\n")
	case pinError:
		b.WriteString("\n" + errorStyle.Render(m.message) + "\n")
	}

	b.WriteString(helpStyle.Render("0-9: digitar • Backspace: apagar • C: limpar • Enter: confirmar • Esc: cancelar"))
	return boxStyle.Render(b.String())
}

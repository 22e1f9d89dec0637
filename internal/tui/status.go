package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
	"github.com/koresolucoes/ponto/internal/timesheet"
)

type statusHistoryMsg struct {
	entries []api.RegistroPonto
	err     error
}

// statusIdleMsg returns the kiosk to the picker after the idle delay.
type statusIdleMsg struct {
	seq int
}

// statusModel is the post-punch confirmation screen: the result of the
// punch plus the recent day-grouped history.
type statusModel struct {
	client   *api.Client
	employee *api.Funcionario
	response *api.BaterPontoResponse

	groups  []timesheet.DayGroup
	loading bool
	errMsg  string
	spinner spinner.Model

	idleDelay time.Duration
	seq       int
}

func newStatusModel(client *api.Client, employee *api.Funcionario, response *api.BaterPontoResponse, idleDelay time.Duration, seq int) statusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return statusModel{
		client:    client,
		employee:  employee,
		response:  response,
		loading:   true,
		spinner:   s,
		idleDelay: idleDelay,
		seq:       seq,
	}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchHistory(), m.scheduleIdle())
}

func (m statusModel) fetchHistory() tea.Cmd {
	client := m.client
	employeeID := m.employee.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		from, to := timesheet.WeekRange(time.Now())
		entries, err := client.ListRegistros(ctx, employeeID, from, to)
		return statusHistoryMsg{entries: entries, err: err}
	}
}

func (m statusModel) scheduleIdle() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.idleDelay, func(time.Time) tea.Msg {
		return statusIdleMsg{seq: seq}
	})
}

func (m statusModel) Update(msg tea.Msg) (statusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statusHistoryMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Falha ao carregar histórico de ponto."
			return m, nil
		}
		m.groups = timesheet.GroupByDay(msg.entries)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m statusModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Ponto Registrado"))
	b.WriteString("\n")
	b.WriteString(m.employee.Name + "\n")
	b.WriteString(successStyle.Render(m.response.Status.Message()))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Histórico recente"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Carregando...\n")
	case m.errMsg != "":
		b.WriteString(warningStyle.Render(m.errMsg) + "\n")
	case len(m.groups) == 0:
		b.WriteString(dimStyle.Render("Nenhum registro nesta semana.") + "\n")
	default:
		for _, group := range m.groups {
			b.WriteString(highlightStyle.Render(group.Date))
			b.WriteString("\n")
			for _, e := range group.Entries {
				b.WriteString("  " + renderEntry(e) + "\n")
			}
		}
	}

	b.WriteString(helpStyle.Render("Esc: voltar agora"))
	return boxStyle.Render(b.String())
}

func renderEntry(e api.RegistroPonto) string {
	in := clockTime(e.ClockInTime)
	out := "--:--"
	if e.ClockOutTime != nil && *e.ClockOutTime != "" {
		out = clockTime(*e.ClockOutTime)
	}
	duration := timesheet.FormatDuration(e.ClockInTime, e.ClockOutTime)
	if duration == timesheet.InProgress {
		return in + " - " + warningStyle.Render(duration)
	}
	return in + " - " + out + "  " + dimStyle.Render(duration)
}

func clockTime(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Local().Format("15:04")
	}
	return "--:--"
}

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

type espelhoPeriod int

const (
	periodWeek espelhoPeriod = iota
	periodMonth
)

type espelhoMsg struct {
	period  espelhoPeriod
	entries []api.RegistroPonto
	err     error
}

type espelhoModel struct {
	client   *api.Client
	employee api.Funcionario

	period  espelhoPeriod
	groups  []timesheet.DayGroup
	total   string
	loading bool
	errMsg  string
	spinner spinner.Model
}

func newEspelhoModel(client *api.Client, employee api.Funcionario) espelhoModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return espelhoModel{
		client:   client,
		employee: employee,
		period:   periodWeek,
		loading:  true,
		spinner:  s,
	}
}

func (m espelhoModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m espelhoModel) fetch() tea.Cmd {
	client, employeeID, period := m.client, m.employee.ID, m.period
	return func() tea.Msg {
		now := time.Now()
		var from, to time.Time
		if period == periodMonth {
			from, to = timesheet.MonthRange(now)
		} else {
			from, to = timesheet.WeekRange(now)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entries, err := client.ListRegistros(ctx, employeeID, from, to)
		return espelhoMsg{period: period, entries: entries, err: err}
	}
}

func (m espelhoModel) Update(msg tea.Msg) (espelhoModel, tea.Cmd) {
	switch msg := msg.(type) {
	case espelhoMsg:
		if msg.period != m.period {
			// Stale response from before a period switch.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.groups = timesheet.GroupByDay(msg.entries)
		m.total = timesheet.TotalHours(msg.entries)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "s", "m":
			target := m.period
			switch msg.String() {
			case "tab":
				if target == periodWeek {
					target = periodMonth
				} else {
					target = periodWeek
				}
			case "s":
				target = periodWeek
			case "m":
				target = periodMonth
			}
			if target == m.period {
				return m, nil
			}
			m.period = target
			m.groups = nil
			m.total = ""
			m.loading = true
			m.errMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.fetch())
		case "r":
			if m.errMsg != "" {
				m.loading = true
				m.errMsg = ""
				return m, tea.Batch(m.spinner.Tick, m.fetch())
			}
		}
	}

	return m, nil
}

func (m espelhoModel) periodLabel() string {
	if m.period == periodMonth {
		return "Este Mês"
	}
	return "Esta Semana"
}

func (m espelhoModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Espelho de Ponto"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.periodLabel()))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Carregando registros...\n")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
		b.WriteString(helpStyle.Render("r: tentar novamente"))
		b.WriteString("\n")
	case len(m.groups) == 0:
		b.WriteString(dimStyle.Render("Nenhum registro no período.") + "\n")
	default:
		for _, group := range m.groups {
			b.WriteString(highlightStyle.Render(dayLabel(group.Date)) + "\n")
			for _, entry := range group.Entries {
				b.WriteString("  " + renderEntry(entry) + "\n")
			}
		}
		b.WriteString("\n")
		b.WriteString("Total: " + successStyle.Render(m.total) + "\n")
	}

	b.WriteString(helpStyle.Render("s: semana • m: mês • Tab: alternar • Esc: voltar"))
	return b.String()
}

func dayLabel(date string) string {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("02/01/2006")
	}
	return date
}

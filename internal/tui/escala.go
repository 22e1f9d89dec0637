package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
	"github.com/koresolucoes/ponto/internal/schedule"
)

type escalaMsg struct {
	week []schedule.DailySchedule
	err  error
}

type escalaModel struct {
	client   *api.Client
	employee api.Funcionario

	week    []schedule.DailySchedule
	loading bool
	errMsg  string
	spinner spinner.Model
}

func newEscalaModel(client *api.Client, employee api.Funcionario) escalaModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return escalaModel{
		client:   client,
		employee: employee,
		loading:  true,
		spinner:  s,
	}
}

func (m escalaModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m escalaModel) fetch() tea.Cmd {
	client, employeeID := m.client, m.employee.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		weekStart := schedule.WeekStart(time.Now())
		escalas, err := client.ListEscalas(ctx, weekStart, weekStart.AddDate(0, 0, 6))
		if err != nil {
			return escalaMsg{err: err}
		}
		week := schedule.BuildWeek(escalas, employeeID, weekStart)
		return escalaMsg{week: week}
	}
}

func (m escalaModel) Update(msg tea.Msg) (escalaModel, tea.Cmd) {
	switch msg := msg.(type) {
	case escalaMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.week = msg.week
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "r" && m.errMsg != "" {
			m.loading = true
			m.errMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.fetch())
		}
	}

	return m, nil
}

func (m escalaModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Minha Escala"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Semana atual"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Carregando escala...\n")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
		b.WriteString(helpStyle.Render("r: tentar novamente"))
		b.WriteString("\n")
	case !schedule.HasAny(m.week):
		b.WriteString(dimStyle.Render("Nenhuma escala publicada para esta semana.") + "\n")
	default:
		for _, day := range m.week {
			label := day.DayName + " " + day.Date.Format("02/01")
			b.WriteString(highlightStyle.Render(label))
			b.WriteString("  ")
			switch {
			case !day.HasSchedule:
				b.WriteString(dimStyle.Render("Sem escala"))
			case day.IsDayOff:
				b.WriteString(warningStyle.Render("Folga"))
			default:
				b.WriteString(schedule.ShiftWindow(day.Shift))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render("Esc: voltar"))
	return b.String()
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
	"github.com/koresolucoes/ponto/internal/timesheet"
)

type holeriteMsg struct {
	month    int
	year     int
	empleado *api.FolhaPagamentoFuncionario
	err      error
}

type holeriteModel struct {
	client   *api.Client
	employee api.Funcionario

	cursor   timesheet.MonthCursor
	empleado *api.FolhaPagamentoFuncionario
	loading  bool
	errMsg   string
	spinner  spinner.Model
}

func newHoleriteModel(client *api.Client, employee api.Funcionario) holeriteModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return holeriteModel{
		client:   client,
		employee: employee,
		cursor:   timesheet.NewMonthCursor(time.Now()),
		loading:  true,
		spinner:  s,
	}
}

func (m holeriteModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m holeriteModel) fetch() tea.Cmd {
	client, employeeID := m.client, m.employee.ID
	month, year := m.cursor.Month, m.cursor.Year
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		response, err := client.GetFolhaPagamento(ctx, month, year, employeeID)
		if err != nil {
			return holeriteMsg{month: month, year: year, err: err}
		}
		return holeriteMsg{month: month, year: year, empleado: response.FindEmpleado(employeeID)}
	}
}

func (m holeriteModel) refetch(cursor timesheet.MonthCursor) (holeriteModel, tea.Cmd) {
	if cursor == m.cursor {
		return m, nil
	}
	m.cursor = cursor
	m.empleado = nil
	m.loading = true
	m.errMsg = ""
	return m, tea.Batch(m.spinner.Tick, m.fetch())
}

func (m holeriteModel) Update(msg tea.Msg) (holeriteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case holeriteMsg:
		if msg.month != m.cursor.Month || msg.year != m.cursor.Year {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.empleado = msg.empleado
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			return m.refetch(m.cursor.Prev())
		case "right", "l":
			return m.refetch(m.cursor.Next())
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

func money(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func (m holeriteModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Meus Holerites"))
	b.WriteString("\n")

	nav := "← " + m.cursor.Label()
	if !m.cursor.AtCurrent() {
		nav += " →"
	}
	b.WriteString(highlightStyle.Render(nav))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Carregando holerite...\n")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
		b.WriteString(helpStyle.Render("r: tentar novamente"))
		b.WriteString("\n")
	case m.empleado == nil:
		b.WriteString(dimStyle.Render("Nenhum holerite disponível para este período.") + "\n")
	default:
		e := m.empleado
		if e.Cargo != "" {
			b.WriteString(subtitleStyle.Render(e.Cargo) + "\n")
		}
		b.WriteString(fmt.Sprintf("Horas programadas   %.1fh\n", e.HorasProgramadas))
		b.WriteString(fmt.Sprintf("Horas trabalhadas   %.1fh\n", e.HorasTrabalhadas))
		b.WriteString(fmt.Sprintf("Horas extras        %.1fh\n", e.HorasExtras))
		b.WriteString("\n")
		b.WriteString("Pagamento base      " + money(e.PagoBase) + "\n")
		b.WriteString("Pagamento extra     " + money(e.PagoExtra) + "\n")
		b.WriteString("Total a receber     " + successStyle.Render(money(e.TotalAPagar)) + "\n")
	}

	b.WriteString(helpStyle.Render("←/→: mês anterior/seguinte • Esc: voltar"))
	return b.String()
}

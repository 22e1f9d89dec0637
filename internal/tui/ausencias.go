package tui

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
)

type ausenciasMsg struct {
	ausencias []api.Ausencia
	err       error
}

type ausenciaCreatedMsg struct {
	err error
}

type ausenciasMode int

const (
	ausenciasList ausenciasMode = iota
	ausenciasForm
)

// Form field order: type, start date, end date, reason, attachment.
const (
	fieldTipo = iota
	fieldInicio
	fieldFim
	fieldMotivo
	fieldAnexo
	fieldCount
)

type ausenciasModel struct {
	client   *api.Client
	employee api.Funcionario

	mode      ausenciasMode
	ausencias []api.Ausencia
	loading   bool
	errMsg    string
	spinner   spinner.Model

	tipoIndex int
	inputs    []textinput.Model // inicio, fim, motivo, anexo
	field     int
	formErr   string
	saving    bool
}

func newAusenciasModel(client *api.Client, employee api.Funcionario) ausenciasModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	inicio := textinput.New()
	inicio.Placeholder = "AAAA-MM-DD"
	inicio.CharLimit = 10

	fim := textinput.New()
	fim.Placeholder = "AAAA-MM-DD"
	fim.CharLimit = 10

	motivo := textinput.New()
	motivo.Placeholder = "Motivo (opcional)"
	motivo.CharLimit = 200

	anexo := textinput.New()
	anexo.Placeholder = "Caminho do anexo (opcional)"
	anexo.CharLimit = 255

	return ausenciasModel{
		client:   client,
		employee: employee,
		mode:     ausenciasList,
		loading:  true,
		spinner:  s,
		inputs:   []textinput.Model{inicio, fim, motivo, anexo},
	}
}

func (m ausenciasModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m ausenciasModel) fetch() tea.Cmd {
	client, employeeID := m.client, m.employee.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ausencias, err := client.ListAusencias(ctx, employeeID)
		return ausenciasMsg{ausencias: ausencias, err: err}
	}
}

func (m ausenciasModel) submit() tea.Cmd {
	client := m.client
	req := api.CriarAusenciaRequest{
		EmployeeID:  m.employee.ID,
		RequestType: api.AusenciaTipos[m.tipoIndex],
		StartDate:   strings.TrimSpace(m.inputs[0].Value()),
		EndDate:     strings.TrimSpace(m.inputs[1].Value()),
		Reason:      strings.TrimSpace(m.inputs[2].Value()),
	}
	attachment := strings.TrimSpace(m.inputs[3].Value())
	return func() tea.Msg {
		if attachment != "" {
			data, err := os.ReadFile(attachment)
			if err != nil {
				return ausenciaCreatedMsg{err: err}
			}
			req.Attachment = base64.StdEncoding.EncodeToString(data)
			req.AttachmentFilename = filepath.Base(attachment)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err := client.CriarAusencia(ctx, req)
		return ausenciaCreatedMsg{err: err}
	}
}

// validateForm returns the first problem with the request form, or ""
// when it is ready to submit.
func (m ausenciasModel) validateForm() string {
	start := strings.TrimSpace(m.inputs[0].Value())
	end := strings.TrimSpace(m.inputs[1].Value())

	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return "Data de início inválida. Use AAAA-MM-DD."
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return "Data de término inválida. Use AAAA-MM-DD."
	}
	if endDate.Before(startDate) {
		return "A data de término deve ser igual ou posterior à data de início."
	}
	return ""
}

func (m ausenciasModel) Update(msg tea.Msg) (ausenciasModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ausenciasMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		sorted := make([]api.Ausencia, len(msg.ausencias))
		copy(sorted, msg.ausencias)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].StartDate > sorted[j].StartDate
		})
		m.ausencias = sorted
		return m, nil

	case ausenciaCreatedMsg:
		m.saving = false
		if msg.err != nil {
			m.formErr = api.UserMessage(msg.err)
			return m, nil
		}
		m.mode = ausenciasList
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetch())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.mode == ausenciasForm {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "n":
			return m.openForm()
		case "r":
			if m.errMsg != "" {
				m.loading = true
				m.errMsg = ""
				return m, tea.Batch(m.spinner.Tick, m.fetch())
			}
		}
	}

	if m.mode == ausenciasForm && m.field > fieldTipo {
		var cmd tea.Cmd
		m.inputs[m.field-1], cmd = m.inputs[m.field-1].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ausenciasModel) openForm() (ausenciasModel, tea.Cmd) {
	m.mode = ausenciasForm
	m.field = fieldTipo
	m.tipoIndex = 0
	m.formErr = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	return m, nil
}

func (m ausenciasModel) focusField(field int) (ausenciasModel, tea.Cmd) {
	m.field = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field-1 {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m ausenciasModel) updateForm(msg tea.KeyMsg) (ausenciasModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.mode = ausenciasList
		return m, nil

	case "tab", "down":
		next := m.field + 1
		if next >= fieldCount {
			next = fieldTipo
		}
		return m.focusField(next)

	case "shift+tab", "up":
		prev := m.field - 1
		if prev < fieldTipo {
			prev = fieldCount - 1
		}
		return m.focusField(prev)

	case "enter":
		if m.field < fieldCount-1 {
			return m.focusField(m.field + 1)
		}
		if errMsg := m.validateForm(); errMsg != "" {
			m.formErr = errMsg
			return m, nil
		}
		m.formErr = ""
		m.saving = true
		return m, tea.Batch(m.spinner.Tick, m.submit())
	}

	if m.field == fieldTipo {
		switch msg.String() {
		case "left", "h":
			m.tipoIndex = (m.tipoIndex + len(api.AusenciaTipos) - 1) % len(api.AusenciaTipos)
		case "right", "l", " ":
			m.tipoIndex = (m.tipoIndex + 1) % len(api.AusenciaTipos)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.field-1], cmd = m.inputs[m.field-1].Update(msg)
	return m, cmd
}

func renderAusenciaStatus(status api.AusenciaStatus) string {
	switch status {
	case api.AusenciaAprovado:
		return successStyle.Render(string(status))
	case api.AusenciaRejeitado:
		return errorStyle.Render(string(status))
	default:
		return warningStyle.Render(string(status))
	}
}

func (m ausenciasModel) View() string {
	if m.mode == ausenciasForm {
		return m.viewForm()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Ausências"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Carregando solicitações...\n")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
		b.WriteString(helpStyle.Render("r: tentar novamente"))
		b.WriteString("\n")
	case len(m.ausencias) == 0:
		b.WriteString(dimStyle.Render("Nenhuma solicitação de ausência.") + "\n")
	default:
		for _, a := range m.ausencias {
			b.WriteString(highlightStyle.Render(string(a.RequestType)))
			b.WriteString("  " + dayLabel(a.StartDate) + " - " + dayLabel(a.EndDate))
			b.WriteString("  " + renderAusenciaStatus(a.Status))
			b.WriteString("\n")
			if a.Reason != nil && *a.Reason != "" {
				b.WriteString(dimStyle.Render("  "+*a.Reason) + "\n")
			}
		}
	}

	b.WriteString(helpStyle.Render("n: nova solicitação • Esc: voltar"))
	return b.String()
}

func (m ausenciasModel) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Nova Solicitação de Ausência"))
	b.WriteString("\n")

	tipo := string(api.AusenciaTipos[m.tipoIndex])
	tipoLine := "Tipo:      ← " + tipo + " →"
	if m.field == fieldTipo {
		tipoLine = selectedStyle.Render(tipoLine)
	}
	b.WriteString(tipoLine + "\n")

	labels := []string{"Início:   ", "Término:  ", "Motivo:   ", "Anexo:    "}
	for i, input := range m.inputs {
		line := labels[i] + input.View()
		if m.field == i+1 {
			line = selectedStyle.Render(labels[i]) + input.View()
		}
		b.WriteString(line + "\n")
	}

	if m.saving {
		b.WriteString("\n" + m.spinner.View() + " Enviando solicitação...\n")
	} else if m.formErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.formErr) + "\n")
	}

	b.WriteString(helpStyle.Render("Tab: próximo campo • Enter no último campo: enviar • Esc: cancelar"))
	return b.String()
}

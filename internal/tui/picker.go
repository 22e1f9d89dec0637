package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
)

const pickerVisible = 10

// pickerModel lists the employee directory with an incremental filter.
type pickerModel struct {
	funcionarios []api.Funcionario
	filtered     []int // indices into funcionarios
	cursor       int
	filter       textinput.Model

	loading bool
	errMsg  string

	chosen *api.Funcionario
}

func newPickerModel() pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Filtrar funcionários..."
	ti.Focus()

	return pickerModel{
		filter:  ti,
		loading: true,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *pickerModel) setFuncionarios(funcionarios []api.Funcionario) {
	m.loading = false
	m.errMsg = ""
	m.funcionarios = funcionarios
	m.filtered = make([]int, len(funcionarios))
	for i := range funcionarios {
		m.filtered[i] = i
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m *pickerModel) setError(message string) {
	m.loading = false
	m.errMsg = message
	m.funcionarios = nil
	m.filtered = nil
	m.cursor = 0
}

func (m pickerModel) Update(msg tea.Msg) (pickerModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if len(m.filtered) > 0 {
				f := m.funcionarios[m.filtered[m.cursor]]
				m.chosen = &f
			}
			return m, nil
		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	prevFilter := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)

	if m.filter.Value() != prevFilter {
		m.applyFilter()
	}

	return m, cmd
}

func (m *pickerModel) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	m.filtered = m.filtered[:0]
	for i, f := range m.funcionarios {
		if query == "" ||
			strings.Contains(strings.ToLower(f.Name), query) ||
			strings.Contains(strings.ToLower(f.Roles.Name), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Ponto Móvel: Selecionar Funcionário"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(dimStyle.Render("Carregando funcionários..."))
		b.WriteString("\n")
		return b.String()
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Erro: ") + m.errMsg + "\n")
		b.WriteString(helpStyle.Render("r: tentar novamente • Ctrl+C: sair"))
		return b.String()
	}

	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  Nenhum funcionário encontrado"))
		b.WriteString("\n")
	} else {
		start := 0
		if m.cursor >= pickerVisible {
			start = m.cursor - pickerVisible + 1
		}
		end := min(start+pickerVisible, len(m.filtered))

		for vi := start; vi < end; vi++ {
			f := m.funcionarios[m.filtered[vi]]

			cursor := "  "
			if vi == m.cursor {
				cursor = "> "
			}

			avatar := AvatarStyle(f.Name).Render(Initials(f.Name))
			role := ""
			if f.Roles.Name != "" {
				role = dimStyle.Render("  " + f.Roles.Name)
			}

			line := fmt.Sprintf("%s%s  %s%s", cursor, avatar, f.Name, role)
			if vi == m.cursor {
				line = highlightStyle.Render(cursor) + avatar + "  " + highlightStyle.Render(f.Name) + role
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render("↑/↓: navegar • Enter: selecionar • Ctrl+C: sair"))
	return b.String()
}

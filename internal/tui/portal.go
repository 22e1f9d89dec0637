package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
	"github.com/koresolucoes/ponto/internal/config"
	"github.com/koresolucoes/ponto/internal/geo"
	"github.com/koresolucoes/ponto/internal/store"
)

type portalViewState int

const (
	portalMenuView portalViewState = iota
	portalPunchView
	portalEspelhoView
	portalEscalaView
	portalHoleriteView
	portalAusenciasView
)

var portalMenuItems = []string{
	"Bater Ponto",
	"Espelho de Ponto",
	"Minha Escala",
	"Meus Holerites",
	"Ausências",
	"Sair",
}

type lastActionMsg struct {
	entry *api.RegistroPonto
	local *store.Punch
}

// PortalApp is the logged-in employee's home: a menu over the punch
// modal and the read-only report views.
type PortalApp struct {
	state  portalViewState
	cursor int

	employee api.Funcionario
	client   *api.Client
	cfg      *config.Config
	db       *store.DB
	provider geo.Provider
	logger   *slog.Logger

	lastAction     string
	lastActionTime *time.Time
	loggedOut      bool

	punch     punchModel
	espelho   espelhoModel
	escala    escalaModel
	holerite  holeriteModel
	ausencias ausenciasModel
}

func NewPortalApp(cfg *config.Config, client *api.Client, db *store.DB, employee api.Funcionario, logger *slog.Logger) *PortalApp {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortalApp{
		state:      portalMenuView,
		employee:   employee,
		client:     client,
		cfg:        cfg,
		db:         db,
		provider:   geo.FromConfig(cfg.Geo),
		logger:     logger,
		lastAction: "Carregando último registro...",
	}
}

// LoggedOut reports whether the session should be cleared after the
// program exits.
func (a *PortalApp) LoggedOut() bool { return a.loggedOut }

func (a *PortalApp) Init() tea.Cmd {
	return a.fetchLastAction()
}

// fetchLastAction asks the API for the most recent entry and falls back
// to the local punch log. Both lookups are best-effort: on failure the
// portal shows a neutral empty state, never an error banner.
func (a *PortalApp) fetchLastAction() tea.Cmd {
	client, db, employeeID := a.client, a.db, a.employee.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entry, err := client.UltimoRegistro(ctx, employeeID)
		if err == nil && entry != nil {
			return lastActionMsg{entry: entry}
		}

		if db != nil {
			if punch, err := db.LastPunch(employeeID); err == nil && punch != nil {
				return lastActionMsg{local: punch}
			}
		}
		return lastActionMsg{}
	}
}

func (a *PortalApp) applyLastAction(msg lastActionMsg) {
	switch {
	case msg.entry != nil:
		if t, err := time.Parse(time.RFC3339, msg.entry.ClockInTime); err == nil {
			local := t.Local()
			a.lastActionTime = &local
		}
		if msg.entry.ClockOutTime != nil && *msg.entry.ClockOutTime != "" {
			a.lastAction = "Última ação: Fim de turno"
		} else {
			// The history endpoint cannot tell an open shift from an
			// open break.
			a.lastAction = "Turno em andamento"
		}
	case msg.local != nil:
		t := msg.local.PunchedAt.Local()
		a.lastActionTime = &t
		a.lastAction = api.PunchStatus(msg.local.Status).Message()
	default:
		a.lastAction = "Nenhum registro de ponto. Pronto para iniciar o turno!"
		a.lastActionTime = nil
	}
}

func (a *PortalApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "esc" && a.state != portalMenuView {
			if a.state == portalPunchView && a.punch.busy() {
				// Never abandon a punch mid-flight.
				return a, nil
			}
			if a.state == portalAusenciasView && a.ausencias.mode == ausenciasForm {
				// The form handles its own cancel back to the list.
				var cmd tea.Cmd
				a.ausencias, cmd = a.ausencias.Update(msg)
				return a, cmd
			}
			a.state = portalMenuView
			return a, a.fetchLastAction()
		}

	case lastActionMsg:
		a.applyLastAction(msg)
		return a, nil

	case punchDoneMsg:
		var cmd tea.Cmd
		a.punch, cmd = a.punch.Update(msg)
		if a.punch.state == pinSuccess {
			a.recordPunch()
		}
		return a, cmd

	case punchCloseMsg:
		if a.state == portalPunchView && msg.seq == a.punch.seq {
			a.state = portalMenuView
			return a, a.fetchLastAction()
		}
		return a, nil
	}

	switch a.state {
	case portalMenuView:
		return a.updateMenu(msg)
	case portalPunchView:
		var cmd tea.Cmd
		a.punch, cmd = a.punch.Update(msg)
		return a, cmd
	case portalEspelhoView:
		var cmd tea.Cmd
		a.espelho, cmd = a.espelho.Update(msg)
		return a, cmd
	case portalEscalaView:
		var cmd tea.Cmd
		a.escala, cmd = a.escala.Update(msg)
		return a, cmd
	case portalHoleriteView:
		var cmd tea.Cmd
		a.holerite, cmd = a.holerite.Update(msg)
		return a, cmd
	case portalAusenciasView:
		var cmd tea.Cmd
		a.ausencias, cmd = a.ausencias.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *PortalApp) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(portalMenuItems)-1 {
			a.cursor++
		}
	case "enter":
		return a.openItem(a.cursor)
	}
	return a, nil
}

func (a *PortalApp) openItem(index int) (tea.Model, tea.Cmd) {
	switch portalMenuItems[index] {
	case "Bater Ponto":
		a.state = portalPunchView
		a.punch = newPunchModel(a.client, a.employee, a.provider, a.cfg.Geo)
		return a, a.punch.Init()
	case "Espelho de Ponto":
		a.state = portalEspelhoView
		a.espelho = newEspelhoModel(a.client, a.employee)
		return a, a.espelho.Init()
	case "Minha Escala":
		a.state = portalEscalaView
		a.escala = newEscalaModel(a.client, a.employee)
		return a, a.escala.Init()
	case "Meus Holerites":
		a.state = portalHoleriteView
		a.holerite = newHoleriteModel(a.client, a.employee)
		return a, a.holerite.Init()
	case "Ausências":
		a.state = portalAusenciasView
		a.ausencias = newAusenciasModel(a.client, a.employee)
		return a, a.ausencias.Init()
	case "Sair":
		a.loggedOut = true
		return a, tea.Quit
	}
	return a, nil
}

func (a *PortalApp) recordPunch() {
	response := a.punch.response
	if response == nil {
		return
	}
	if a.db != nil {
		punch := store.Punch{
			EmployeeID:   a.employee.ID,
			EmployeeName: a.employee.Name,
			Status:       string(response.Status),
			PunchedAt:    time.Now(),
		}
		if a.punch.coords != nil {
			punch.Latitude = &a.punch.coords.Latitude
			punch.Longitude = &a.punch.coords.Longitude
		}
		if _, err := a.db.InsertPunch(&punch); err != nil {
			a.logger.Debug("recording punch locally", "error", err)
		}
	}
}

func (a *PortalApp) View() string {
	switch a.state {
	case portalPunchView:
		return a.punch.View()
	case portalEspelhoView:
		return a.espelho.View()
	case portalEscalaView:
		return a.escala.View()
	case portalHoleriteView:
		return a.holerite.View()
	case portalAusenciasView:
		return a.ausencias.View()
	}

	var b strings.Builder
	avatar := AvatarStyle(a.employee.Name).Render(Initials(a.employee.Name))
	b.WriteString(titleStyle.Render(avatar + "  " + a.employee.Name))
	b.WriteString("\n")
	if a.employee.Roles.Name != "" {
		b.WriteString(subtitleStyle.Render(a.employee.Roles.Name))
		b.WriteString("\n")
	}

	b.WriteString(a.lastAction)
	if a.lastActionTime != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s)", a.lastActionTime.Format("02/01 15:04"))))
	}
	b.WriteString("\n\n")

	for i, item := range portalMenuItems {
		cursor := "  "
		if i == a.cursor {
			cursor = "> "
		}
		line := cursor + item
		if i == a.cursor {
			line = highlightStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(helpStyle.Render("↑/↓: navegar • Enter: abrir • Ctrl+C: sair"))
	return b.String()
}

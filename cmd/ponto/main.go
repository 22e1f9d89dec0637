package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/koresolucoes/ponto/internal/api"
	"github.com/koresolucoes/ponto/internal/config"
	"github.com/koresolucoes/ponto/internal/qr"
	"github.com/koresolucoes/ponto/internal/reminder"
	"github.com/koresolucoes/ponto/internal/schedule"
	"github.com/koresolucoes/ponto/internal/store"
	"github.com/koresolucoes/ponto/internal/timesheet"
	"github.com/koresolucoes/ponto/internal/tui"
	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ponto",
	Short: "Terminal de ponto para equipes de restaurante",
	Long:  "ponto registra entradas, pausas e saídas de turno contra o servidor RH, com terminal compartilhado (quiosque) e portal individual do funcionário.",
}

var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Abrir o terminal compartilhado de bater ponto",
	RunE:  runTerminal,
}

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Abrir o portal do funcionário logado",
	RunE:  runPortal,
}

var loginCmd = &cobra.Command{
	Use:   "login [funcionário]",
	Short: "Iniciar sessão do portal com PIN",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Encerrar a sessão do portal",
	RunE:  runLogout,
}

var espelhoCmd = &cobra.Command{
	Use:   "espelho",
	Short: "Mostrar o espelho de ponto do período",
	RunE:  runEspelho,
}

var escalaCmd = &cobra.Command{
	Use:   "escala",
	Short: "Mostrar a escala da semana atual",
	RunE:  runEscala,
}

var holeriteCmd = &cobra.Command{
	Use:   "holerite",
	Short: "Mostrar o holerite de um mês",
	RunE:  runHolerite,
}

var ausenciasCmd = &cobra.Command{
	Use:   "ausencias",
	Short: "Listar solicitações de ausência",
	RunE:  runAusencias,
}

var ausenciasNovaCmd = &cobra.Command{
	Use:   "nova",
	Short: "Criar uma solicitação de ausência",
	RunE:  runAusenciasNova,
}

var scanCmd = &cobra.Command{
	Use:   "scan [imagem]",
	Short: "Configurar o terminal ou entrar via código QR",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

var lembreteCmd = &cobra.Command{
	Use:   "lembrete",
	Short: "Lembretes de início e fim de turno",
}

var lembreteStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Iniciar o daemon de lembretes",
	RunE:  runLembreteStart,
}

var lembreteStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Parar o daemon de lembretes",
	RunE:  runLembreteStop,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Abrir o arquivo de configuração no editor",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Registrar detalhes das requisições no stderr")

	espelhoCmd.Flags().String("periodo", "semana", "Período: semana ou mes")
	espelhoCmd.Flags().String("de", "", "Início do período (ex.: \"last monday\", \"2026-08-01\")")
	espelhoCmd.Flags().String("ate", "", "Fim do período")

	escalaCmd.Flags().String("ics", "", "Exportar a escala como iCalendar para o arquivo dado (\"-\" para stdout)")

	holeriteCmd.Flags().Int("mes", 0, "Mês (1-12, padrão: atual)")
	holeriteCmd.Flags().Int("ano", 0, "Ano (padrão: atual)")

	ausenciasNovaCmd.Flags().String("tipo", string(api.AusenciaFolga), "Tipo: Férias, Folga, Falta Justificada ou Atestado")
	ausenciasNovaCmd.Flags().String("inicio", "", "Data de início (AAAA-MM-DD)")
	ausenciasNovaCmd.Flags().String("fim", "", "Data de término (AAAA-MM-DD)")
	ausenciasNovaCmd.Flags().String("motivo", "", "Motivo da solicitação")
	ausenciasNovaCmd.Flags().String("anexo", "", "Arquivo de anexo (ex.: atestado em PDF)")

	lembreteStartCmd.Flags().Int("antecedencia", 5, "Minutos de antecedência do lembrete")

	ausenciasCmd.AddCommand(ausenciasNovaCmd)
	lembreteCmd.AddCommand(lembreteStartCmd)
	lembreteCmd.AddCommand(lembreteStopCmd)

	rootCmd.AddCommand(terminalCmd)
	rootCmd.AddCommand(portalCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(espelhoCmd)
	rootCmd.AddCommand(escalaCmd)
	rootCmd.AddCommand(holeriteCmd)
	rootCmd.AddCommand(ausenciasCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(lembreteCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("carregando configuração: %w", err)
	}
	return cfg, nil
}

func newAPIClient(cfg *config.Config, logger *slog.Logger) *api.Client {
	return api.NewClient(cfg.API.RestaurantID, cfg.API.APIKey, cfg.API.BaseURL, 1*time.Hour, logger)
}

// requireSession loads the portal session saved by login or scan.
func requireSession(db *store.DB) (*store.Session, error) {
	session, err := db.GetSession()
	if err != nil {
		return nil, fmt.Errorf("lendo sessão: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("nenhuma sessão ativa. Execute 'ponto login' primeiro")
	}
	return session, nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	logger := newLogger()
	client := newAPIClient(cfg, logger)
	if !client.Configured() {
		return api.ErrNotConfigured
	}

	app := tui.NewKioskApp(cfg, client, db, logger)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("executando terminal: %w", err)
	}
	return nil
}

func runPortal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	session, err := requireSession(db)
	if err != nil {
		return err
	}

	logger := newLogger()
	client := newAPIClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	employee, err := client.GetFuncionario(ctx, session.EmployeeID)
	cancel()
	if err != nil {
		return fmt.Errorf("carregando funcionário: %s", api.UserMessage(err))
	}

	app := tui.NewPortalApp(cfg, client, db, *employee, logger)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("executando portal: %w", err)
	}

	if app.LoggedOut() {
		if err := db.ClearSession(); err != nil {
			return fmt.Errorf("encerrando sessão: %w", err)
		}
		fmt.Println("Sessão encerrada.")
	}
	return nil
}

// matchFuncionario resolves a CLI argument against the employee list,
// by exact id first and then by case-insensitive name prefix.
func matchFuncionario(funcionarios []api.Funcionario, query string) (*api.Funcionario, error) {
	for i := range funcionarios {
		if funcionarios[i].ID == query {
			return &funcionarios[i], nil
		}
	}

	lower := strings.ToLower(query)
	var match *api.Funcionario
	for i := range funcionarios {
		if strings.HasPrefix(strings.ToLower(funcionarios[i].Name), lower) {
			if match != nil {
				return nil, fmt.Errorf("mais de um funcionário corresponde a %q", query)
			}
			match = &funcionarios[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("nenhum funcionário corresponde a %q", query)
	}
	return match, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	logger := newLogger()
	client := newAPIClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	funcionarios, err := client.ListFuncionarios(ctx)
	if err != nil {
		return fmt.Errorf("listando funcionários: %s", api.UserMessage(err))
	}

	var employee *api.Funcionario
	if len(args) == 1 {
		employee, err = matchFuncionario(funcionarios, args[0])
		if err != nil {
			return err
		}
	} else {
		fmt.Println("Funcionários:")
		for _, f := range funcionarios {
			fmt.Printf("  %s  %s\n", f.ID, f.Name)
		}
		fmt.Print("\nFuncionário (id ou nome): ")
		var query string
		if _, err := fmt.Scanln(&query); err != nil {
			return fmt.Errorf("lendo funcionário: %w", err)
		}
		employee, err = matchFuncionario(funcionarios, query)
		if err != nil {
			return err
		}
	}

	fmt.Printf("PIN de %s: ", employee.Name)
	var pin string
	if _, err := fmt.Scanln(&pin); err != nil {
		return fmt.Errorf("lendo PIN: %w", err)
	}

	result, err := client.VerificarPin(ctx, api.VerificarPinRequest{EmployeeID: employee.ID, Pin: pin})
	if err != nil {
		return fmt.Errorf("verificando PIN: %s", api.UserMessage(err))
	}
	if !result.Success {
		return fmt.Errorf("PIN incorreto")
	}

	if err := db.SaveSession(store.Session{EmployeeID: employee.ID, EmployeeName: employee.Name}); err != nil {
		return fmt.Errorf("salvando sessão: %w", err)
	}

	fmt.Printf("Sessão iniciada para %s.\n", employee.Name)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	session, err := db.GetSession()
	if err != nil {
		return fmt.Errorf("lendo sessão: %w", err)
	}
	if session == nil {
		fmt.Println("Nenhuma sessão ativa.")
		return nil
	}

	if err := db.ClearSession(); err != nil {
		return fmt.Errorf("encerrando sessão: %w", err)
	}
	fmt.Printf("Sessão de %s encerrada.\n", session.EmployeeName)
	return nil
}

// espelhoRange resolves the report window from the flags: explicit
// --de/--ate bounds win over the --periodo preset.
func espelhoRange(cmd *cobra.Command) (time.Time, time.Time, error) {
	now := time.Now()
	de, _ := cmd.Flags().GetString("de")
	ate, _ := cmd.Flags().GetString("ate")

	if de != "" || ate != "" {
		from, to := now.AddDate(0, 0, -7), now
		var err error
		if de != "" {
			from, err = parseNaturalDate(de, now)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("interpretando --de: %w", err)
			}
		}
		if ate != "" {
			to, err = parseNaturalDate(ate, now)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("interpretando --ate: %w", err)
			}
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, fmt.Errorf("--ate é anterior a --de")
		}
		return from, to, nil
	}

	periodo, _ := cmd.Flags().GetString("periodo")
	switch periodo {
	case "mes":
		from, to := timesheet.MonthRange(now)
		return from, to, nil
	case "semana":
		from, to := timesheet.WeekRange(now)
		return from, to, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("período desconhecido %q (use semana ou mes)", periodo)
	}
}

func parseNaturalDate(text string, now time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", text, time.Local); err == nil {
		return t, nil
	}
	return naturaldate.Parse(text, now, naturaldate.WithDirection(naturaldate.Past))
}

func runEspelho(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	session, err := requireSession(db)
	if err != nil {
		return err
	}

	from, to, err := espelhoRange(cmd)
	if err != nil {
		return err
	}

	client := newAPIClient(cfg, newLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := client.ListRegistros(ctx, session.EmployeeID, from, to)
	if err != nil {
		return fmt.Errorf("buscando registros: %s", api.UserMessage(err))
	}

	fmt.Printf("Espelho de ponto de %s (%s a %s)\n\n",
		session.EmployeeName, from.Format("02/01/2006"), to.Format("02/01/2006"))

	groups := timesheet.GroupByDay(entries)
	if len(groups) == 0 {
		fmt.Println("Nenhum registro no período.")
		return nil
	}

	for _, group := range groups {
		fmt.Println(group.Date)
		for _, e := range group.Entries {
			in := formatClock(e.ClockInTime)
			out := "--:--"
			if e.ClockOutTime != nil && *e.ClockOutTime != "" {
				out = formatClock(*e.ClockOutTime)
			}
			fmt.Printf("  %s - %s  %s\n", in, out, timesheet.FormatDuration(e.ClockInTime, e.ClockOutTime))
		}
	}

	fmt.Printf("\nTotal: %s\n", timesheet.TotalHours(entries))
	return nil
}

func formatClock(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Local().Format("15:04")
	}
	return "--:--"
}

func runEscala(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	session, err := requireSession(db)
	if err != nil {
		return err
	}

	client := newAPIClient(cfg, newLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	weekStart := schedule.WeekStart(time.Now())
	escalas, err := client.ListEscalas(ctx, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		return fmt.Errorf("buscando escalas: %s", api.UserMessage(err))
	}

	week := schedule.BuildWeek(escalas, session.EmployeeID, weekStart)

	icsPath, _ := cmd.Flags().GetString("ics")
	if icsPath != "" {
		out := os.Stdout
		if icsPath != "-" {
			f, err := os.Create(icsPath)
			if err != nil {
				return fmt.Errorf("criando arquivo ICS: %w", err)
			}
			defer f.Close()
			out = f
		}
		if err := schedule.WriteICS(out, week, session.EmployeeName); err != nil {
			return fmt.Errorf("exportando ICS: %w", err)
		}
		if icsPath != "-" {
			fmt.Printf("Escala exportada para %s\n", icsPath)
		}
		return nil
	}

	fmt.Printf("Escala de %s (semana de %s)\n\n", session.EmployeeName, weekStart.Format("02/01/2006"))
	if !schedule.HasAny(week) {
		fmt.Println("Nenhuma escala publicada para esta semana.")
		return nil
	}

	for _, day := range week {
		window := "Sem escala"
		switch {
		case day.HasSchedule && day.IsDayOff:
			window = "Folga"
		case day.HasSchedule:
			window = schedule.ShiftWindow(day.Shift)
		}
		fmt.Printf("  %-8s %s  %s\n", day.DayName, day.Date.Format("02/01"), window)
	}
	return nil
}

func runHolerite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	session, err := requireSession(db)
	if err != nil {
		return err
	}

	now := time.Now()
	month, _ := cmd.Flags().GetInt("mes")
	year, _ := cmd.Flags().GetInt("ano")
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("mês inválido: %d", month)
	}
	if year > now.Year() || (year == now.Year() && month > int(now.Month())) {
		return fmt.Errorf("o período %02d/%d ainda não fechou", month, year)
	}

	client := newAPIClient(cfg, newLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := client.GetFolhaPagamento(ctx, month, year, session.EmployeeID)
	if err != nil {
		return fmt.Errorf("buscando holerite: %s", api.UserMessage(err))
	}

	empleado := response.FindEmpleado(session.EmployeeID)
	if empleado == nil {
		fmt.Printf("Nenhum holerite disponível para %02d/%d.\n", month, year)
		return nil
	}

	fmt.Printf("Holerite de %s (%02d/%d)\n\n", session.EmployeeName, month, year)
	if empleado.Cargo != "" {
		fmt.Printf("  Cargo               %s\n", empleado.Cargo)
	}
	fmt.Printf("  Horas programadas   %.1fh\n", empleado.HorasProgramadas)
	fmt.Printf("  Horas trabalhadas   %.1fh\n", empleado.HorasTrabalhadas)
	fmt.Printf("  Horas extras        %.1fh\n", empleado.HorasExtras)
	fmt.Printf("  Pagamento base      R$ %.2f\n", empleado.PagoBase)
	fmt.Printf("  Pagamento extra     R$ %.2f\n", empleado.PagoExtra)
	fmt.Printf("  Total a receber     R$ %.2f\n", empleado.TotalAPagar)
	return nil
}

func runAusencias(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	session, err := requireSession(db)
	if err != nil {
		return err
	}

	client := newAPIClient(cfg, newLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ausencias, err := client.ListAusencias(ctx, session.EmployeeID)
	if err != nil {
		return fmt.Errorf("buscando ausências: %s", api.UserMessage(err))
	}

	if len(ausencias) == 0 {
		fmt.Println("Nenhuma solicitação de ausência.")
		return nil
	}

	fmt.Printf("Ausências de %s:\n\n", session.EmployeeName)
	for _, a := range ausencias {
		fmt.Printf("  %-18s %s a %s  [%s]\n", a.RequestType, a.StartDate, a.EndDate, a.Status)
		if a.Reason != nil && *a.Reason != "" {
			fmt.Printf("    %s\n", *a.Reason)
		}
	}
	return nil
}

func runAusenciasNova(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	session, err := requireSession(db)
	if err != nil {
		return err
	}

	tipo, _ := cmd.Flags().GetString("tipo")
	inicio, _ := cmd.Flags().GetString("inicio")
	fim, _ := cmd.Flags().GetString("fim")
	motivo, _ := cmd.Flags().GetString("motivo")
	anexo, _ := cmd.Flags().GetString("anexo")

	requestType, err := parseAusenciaTipo(tipo)
	if err != nil {
		return err
	}

	startDate, err := time.Parse("2006-01-02", inicio)
	if err != nil {
		return fmt.Errorf("--inicio inválido (use AAAA-MM-DD): %q", inicio)
	}
	endDate, err := time.Parse("2006-01-02", fim)
	if err != nil {
		return fmt.Errorf("--fim inválido (use AAAA-MM-DD): %q", fim)
	}
	if endDate.Before(startDate) {
		return fmt.Errorf("--fim deve ser igual ou posterior a --inicio")
	}

	req := api.CriarAusenciaRequest{
		EmployeeID:  session.EmployeeID,
		RequestType: requestType,
		StartDate:   inicio,
		EndDate:     fim,
		Reason:      motivo,
	}
	if anexo != "" {
		data, err := os.ReadFile(anexo)
		if err != nil {
			return fmt.Errorf("lendo anexo: %w", err)
		}
		req.Attachment = base64.StdEncoding.EncodeToString(data)
		req.AttachmentFilename = filepath.Base(anexo)
	}

	client := newAPIClient(cfg, newLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := client.CriarAusencia(ctx, req)
	if err != nil {
		return fmt.Errorf("criando solicitação: %s", api.UserMessage(err))
	}

	fmt.Printf("Solicitação de %s criada (%s a %s) [%s].\n",
		created.RequestType, created.StartDate, created.EndDate, created.Status)
	return nil
}

func parseAusenciaTipo(tipo string) (api.AusenciaTipo, error) {
	for _, t := range api.AusenciaTipos {
		if strings.EqualFold(string(t), tipo) {
			return t, nil
		}
	}
	return "", fmt.Errorf("tipo desconhecido %q (use Férias, Folga, Falta Justificada ou Atestado)", tipo)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()

	var text string
	if len(args) == 1 {
		text, err = qr.DecodeFile(args[0])
		if err != nil {
			return fmt.Errorf("lendo código QR de %s: %w", args[0], err)
		}
	} else {
		if cfg.Scanner.CaptureCommand == "" {
			return fmt.Errorf("nenhum comando de captura configurado. Informe uma imagem ou ajuste [scanner] em 'ponto config'")
		}
		source, err := qr.NewCommandSource(cfg.Scanner.CaptureCommand)
		if err != nil {
			return fmt.Errorf("preparando câmera: %w", err)
		}

		scanner := qr.NewScanner(source, time.Duration(cfg.Scanner.IntervalMillis)*time.Millisecond, logger)
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Scanner.TimeoutSeconds)*time.Second)
		defer cancel()

		fmt.Println("Aponte o código QR para a câmera...")
		text, err = scanner.Run(ctx)
		if err != nil {
			return fmt.Errorf("lendo código QR: %w", err)
		}
	}

	payload, err := qr.ParsePayload(text)
	if err != nil {
		return fmt.Errorf("interpretando código QR: %w", err)
	}

	if payload.IsCredentials() {
		if err := config.SaveCredentials(payload.RestaurantID, payload.APIKey); err != nil {
			return fmt.Errorf("salvando credenciais: %w", err)
		}
		fmt.Println("Terminal configurado. Execute 'ponto terminal' para começar.")
		return nil
	}

	// Employee badge: resolve the id and open a portal session.
	client := newAPIClient(cfg, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	employee, err := client.GetFuncionario(ctx, payload.EmployeeID)
	if err != nil {
		return fmt.Errorf("carregando funcionário: %s", api.UserMessage(err))
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	if err := db.SaveSession(store.Session{EmployeeID: employee.ID, EmployeeName: employee.Name}); err != nil {
		return fmt.Errorf("salvando sessão: %w", err)
	}
	fmt.Printf("Sessão iniciada para %s. Execute 'ponto portal'.\n", employee.Name)
	return nil
}

func runLembreteStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("abrindo banco de dados: %w", err)
	}
	defer db.Close()

	session, err := requireSession(db)
	if err != nil {
		return err
	}

	lead, _ := cmd.Flags().GetInt("antecedencia")

	logger := newLogger()
	client := newAPIClient(cfg, logger)
	rem := reminder.New(cfg, client, session.EmployeeID, time.Duration(lead)*time.Minute, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return rem.Run(ctx)
}

func runLembreteStop(cmd *cobra.Command, args []string) error {
	pid, err := reminder.ReadPID()
	if err != nil {
		return err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("localizando processo %d: %w", pid, err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("enviando sinal de parada: %w", err)
	}

	fmt.Printf("Sinal de parada enviado ao daemon de lembretes (PID %d)\n", pid)
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("criando diretório de configuração: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data := fmt.Sprintf(`[api]
restaurant_id = "%s"
api_key = "%s"
base_url = "%s"

[geo]
mode = "%s"
latitude = %g
longitude = %g
command = "%s"
timeout_seconds = %d

[scanner]
capture_command = "%s"
interval_millis = %d
timeout_seconds = %d

[notifications]
enabled = %t

[terminal]
confirm_delay_millis = %d
idle_logout_seconds = %d
`,
			cfg.API.RestaurantID,
			cfg.API.APIKey,
			cfg.API.BaseURL,
			cfg.Geo.Mode,
			cfg.Geo.Latitude,
			cfg.Geo.Longitude,
			cfg.Geo.Command,
			cfg.Geo.TimeoutSeconds,
			cfg.Scanner.CaptureCommand,
			cfg.Scanner.IntervalMillis,
			cfg.Scanner.TimeoutSeconds,
			cfg.Notifications.Enabled,
			cfg.Terminal.ConfirmDelayMillis,
			cfg.Terminal.IdleLogoutSeconds,
		)
		if err := os.WriteFile(configPath, []byte(data), 0600); err != nil {
			return fmt.Errorf("gravando configuração padrão: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Abrindo %s com %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		fmt.Printf("Não foi possível abrir o editor. O arquivo está em: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}

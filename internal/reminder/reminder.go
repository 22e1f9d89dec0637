package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/koresolucoes/ponto/internal/api"
	"github.com/koresolucoes/ponto/internal/config"
	"github.com/koresolucoes/ponto/internal/notify"
	"github.com/koresolucoes/ponto/internal/schedule"
)

// Reminder watches the employee's published escala and raises a
// notification shortly before each shift boundary so punches are not
// forgotten.
type Reminder struct {
	cfg        *config.Config
	client     *api.Client
	employeeID string
	lead       time.Duration
	logger     *slog.Logger
}

func New(cfg *config.Config, client *api.Client, employeeID string, lead time.Duration, logger *slog.Logger) *Reminder {
	if lead <= 0 {
		lead = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reminder{
		cfg:        cfg,
		client:     client,
		employeeID: employeeID,
		lead:       lead,
		logger:     logger,
	}
}

func (r *Reminder) Run(ctx context.Context) error {
	if err := r.writePID(); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer r.removePID()

	fmt.Printf("Lembrete de ponto ativo (antecedência: %s)\n", r.lead)

	for {
		boundary, label, err := r.nextBoundary(ctx, time.Now())
		if err != nil {
			r.logger.Error("fetching escala for reminders", "error", err)
			// Back off and retry; the escala may simply not be
			// published yet.
			boundary = time.Now().Add(30 * time.Minute)
			label = ""
		}

		wait := time.Until(boundary.Add(-r.lead))
		if wait < 0 {
			wait = time.Minute
		}

		select {
		case <-ctx.Done():
			fmt.Println("\nLembrete encerrado.")
			return nil
		case <-time.After(wait):
		}

		if label != "" && r.cfg.Notifications.Enabled {
			notify.Send(r.logger, "Ponto Móvel", label)
		}

		// Do not fire twice for the same boundary.
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.lead + time.Minute):
		}
	}
}

// nextBoundary returns the next shift start or end after now, with the
// notification text for it.
func (r *Reminder) nextBoundary(ctx context.Context, now time.Time) (time.Time, string, error) {
	weekStart := schedule.WeekStart(now)
	escalas, err := r.client.ListEscalas(ctx, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return time.Time{}, "", err
	}

	week := schedule.BuildWeek(escalas, r.employeeID, weekStart)

	var best time.Time
	var label string
	consider := func(t time.Time, msg string) {
		if t.After(now) && (best.IsZero() || t.Before(best)) {
			best = t
			label = msg
		}
	}

	for _, day := range week {
		if !day.HasSchedule || day.IsDayOff || day.Shift == nil {
			continue
		}
		if start, err := time.Parse(time.RFC3339, day.Shift.StartTime); err == nil {
			consider(start, "Seu turno começa em breve. Não esqueça de bater o ponto!")
		}
		if end, err := time.Parse(time.RFC3339, day.Shift.EndTime); err == nil {
			consider(end, "Seu turno termina em breve. Não esqueça de bater o ponto!")
		}
	}

	if best.IsZero() {
		// Nothing scheduled this week; look again tomorrow morning.
		tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		return tomorrow, "", nil
	}
	return best, label, nil
}

func pidPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ponto.pid"), nil
}

func (r *Reminder) writePID() error {
	path, err := pidPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func (r *Reminder) removePID() {
	if path, err := pidPath(); err == nil {
		os.Remove(path)
	}
}

// ReadPID returns the PID of a running reminder daemon.
func ReadPID() (int, error) {
	path, err := pidPath()
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("nenhum lembrete em execução")
	}

	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, fmt.Errorf("arquivo PID inválido")
	}

	return pid, nil
}

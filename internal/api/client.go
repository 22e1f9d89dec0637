package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://gastro.koresolucoes.com.br/api/rh"

// Client talks to the tenant-scoped RH API. Every request carries the
// bearer API key and the restaurantId query parameter.
type Client struct {
	restaurantID string
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	cache        *FuncionarioCache
	logger       *slog.Logger
}

func NewClient(restaurantID, apiKey, baseURL string, cacheTTL time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		restaurantID: restaurantID,
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:  NewFuncionarioCache(cacheTTL),
		logger: logger,
	}
}

// Configured reports whether tenant credentials are present.
func (c *Client) Configured() bool {
	return c.restaurantID != "" && c.apiKey != ""
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		payload = data
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("restaurantId", c.restaurantID)
	fullURL := c.baseURL + path + "?" + query.Encode()

	requestID := uuid.NewString()
	c.logger.Debug("RH API request", "method", method, "path", path, "request_id", requestID)

	var resp *http.Response
	maxRetries := 3
	requestStart := time.Now()
	for attempt := 0; attempt <= maxRetries; attempt++ {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("X-Request-Id", requestID)

		resp, err = c.httpClient.Do(req)
		if err != nil {
			if attempt == maxRetries {
				c.logger.Error("API request transport error", "method", method, "path", path, "error", err, "elapsed", time.Since(requestStart))
				return nil, &CommError{Err: err}
			}
			c.logger.Debug("API request transport error, retrying", "method", method, "path", path, "attempt", attempt+1, "error", err)
			time.Sleep(backoff(attempt))
			continue
		}

		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				c.logger.Error("API request failed after retries", "method", method, "path", path, "status", resp.StatusCode, "attempts", maxRetries+1, "elapsed", time.Since(requestStart))
				return nil, &APIError{Status: resp.StatusCode, Body: fmt.Sprintf("sem resposta após %d tentativas", maxRetries+1)}
			}
			c.logger.Debug("API request retryable error", "method", method, "path", path, "status", resp.StatusCode, "attempt", attempt+1)
			time.Sleep(backoff(attempt))
			continue
		}
		break
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("RH API response", "method", method, "path", path, "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(requestStart))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.logger.Error("API rejected credentials", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &AuthError{Status: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("API request failed", "method", method, "path", path, "status", resp.StatusCode, "response", truncate(string(respBody), 200))
		return nil, &APIError{Status: resp.StatusCode, Body: truncate(string(respBody), 200)}
	}

	return respBody, nil
}

func backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// ListFuncionarios returns the employee directory, served from the TTL
// cache when fresh.
func (c *Client) ListFuncionarios(ctx context.Context) ([]Funcionario, error) {
	if cached := c.cache.Get(); cached != nil {
		return cached, nil
	}

	data, err := c.doRequest(ctx, http.MethodGet, "/funcionarios", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing funcionarios: %w", err)
	}

	var funcionarios []Funcionario
	if err := json.Unmarshal(data, &funcionarios); err != nil {
		return nil, fmt.Errorf("parsing funcionarios response: %w", err)
	}

	c.cache.Set(funcionarios)
	return funcionarios, nil
}

// GetFuncionario fetches one employee record by id.
func (c *Client) GetFuncionario(ctx context.Context, employeeID string) (*Funcionario, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/funcionarios/"+url.PathEscape(employeeID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting funcionario %s: %w", employeeID, err)
	}

	var f Funcionario
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing funcionario response: %w", err)
	}

	return &f, nil
}

// VerificarPin checks a PIN server-side without advancing the shift
// state. Used by the portal login.
func (c *Client) VerificarPin(ctx context.Context, req VerificarPinRequest) (*VerificarPinResponse, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "/ponto/verificar-pin", nil, req)
	if err != nil {
		return nil, fmt.Errorf("verifying pin: %w", err)
	}

	var resp VerificarPinResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing pin response: %w", err)
	}

	return &resp, nil
}

// BaterPonto submits a punch. The server decides the resulting shift
// state and returns it.
func (c *Client) BaterPonto(ctx context.Context, req BaterPontoRequest) (*BaterPontoResponse, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "/ponto/bater-ponto", nil, req)
	if err != nil {
		return nil, fmt.Errorf("submitting punch: %w", err)
	}

	var resp BaterPontoResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing punch response: %w", err)
	}

	return &resp, nil
}

// ListRegistros fetches the time-clock entries for an employee inside
// the [from, to] date window (inclusive, YYYY-MM-DD).
func (c *Client) ListRegistros(ctx context.Context, employeeID string, from, to time.Time) ([]RegistroPonto, error) {
	query := url.Values{}
	query.Set("employeeId", employeeID)
	query.Set("data_inicio", from.Format("2006-01-02"))
	query.Set("data_fim", to.Format("2006-01-02"))

	data, err := c.doRequest(ctx, http.MethodGet, "/ponto", query, nil)
	if err != nil {
		return nil, fmt.Errorf("listing registros: %w", err)
	}

	var registros []RegistroPonto
	if err := json.Unmarshal(data, &registros); err != nil {
		return nil, fmt.Errorf("parsing registros response: %w", err)
	}

	return registros, nil
}

// UltimoRegistro returns the most recent entry, or nil when there is
// none yet.
func (c *Client) UltimoRegistro(ctx context.Context, employeeID string) (*RegistroPonto, error) {
	query := url.Values{}
	query.Set("employeeId", employeeID)

	data, err := c.doRequest(ctx, http.MethodGet, "/ponto/ultimo-registro", query, nil)
	if err != nil {
		return nil, fmt.Errorf("getting ultimo registro: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return nil, nil
	}

	var registro RegistroPonto
	if err := json.Unmarshal(data, &registro); err != nil {
		return nil, fmt.Errorf("parsing ultimo registro response: %w", err)
	}

	return &registro, nil
}

// ListEscalas fetches the published schedules overlapping [from, to].
func (c *Client) ListEscalas(ctx context.Context, from, to time.Time) ([]Escala, error) {
	query := url.Values{}
	query.Set("data_inicio", from.Format("2006-01-02"))
	query.Set("data_fim", to.Format("2006-01-02"))

	data, err := c.doRequest(ctx, http.MethodGet, "/escalas", query, nil)
	if err != nil {
		return nil, fmt.Errorf("listing escalas: %w", err)
	}

	var escalas []Escala
	if err := json.Unmarshal(data, &escalas); err != nil {
		return nil, fmt.Errorf("parsing escalas response: %w", err)
	}

	return escalas, nil
}

// GetFolhaPagamento fetches the payroll summary for a month/year,
// optionally filtered to one employee.
func (c *Client) GetFolhaPagamento(ctx context.Context, month, year int, employeeID string) (*FolhaPagamentoResponse, error) {
	query := url.Values{}
	query.Set("mes", fmt.Sprintf("%02d", month))
	query.Set("ano", fmt.Sprintf("%d", year))
	if employeeID != "" {
		query.Set("employeeId", employeeID)
	}

	data, err := c.doRequest(ctx, http.MethodGet, "/folha-pagamento", query, nil)
	if err != nil {
		return nil, fmt.Errorf("getting folha de pagamento: %w", err)
	}

	var resp FolhaPagamentoResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing folha response: %w", err)
	}

	return &resp, nil
}

// ListAusencias returns the employee's absence requests.
func (c *Client) ListAusencias(ctx context.Context, employeeID string) ([]Ausencia, error) {
	query := url.Values{}
	query.Set("employeeId", employeeID)

	data, err := c.doRequest(ctx, http.MethodGet, "/ausencias", query, nil)
	if err != nil {
		return nil, fmt.Errorf("listing ausencias: %w", err)
	}

	var ausencias []Ausencia
	if err := json.Unmarshal(data, &ausencias); err != nil {
		return nil, fmt.Errorf("parsing ausencias response: %w", err)
	}

	return ausencias, nil
}

// CriarAusencia submits a new absence request and returns the created
// record.
func (c *Client) CriarAusencia(ctx context.Context, req CriarAusenciaRequest) (*Ausencia, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "/ausencias", nil, req)
	if err != nil {
		return nil, fmt.Errorf("creating ausencia: %w", err)
	}

	var created Ausencia
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("parsing ausencia response: %w", err)
	}

	return &created, nil
}

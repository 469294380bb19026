package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/DevelopIT-LTD/escobar-bot/configs"
	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
	"github.com/DevelopIT-LTD/escobar-bot/pkg/prometheus"
)

// Client відправляє заявки у Google Sheets через Apps Script вебхук.
// Один виклик на заявку, без ретраїв і черг.
type Client struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

func NewClient(cfg *configs.Config, log *slog.Logger) *Client {
	return &Client{
		url: cfg.Sheets.URL,
		client: &http.Client{
			Timeout: cfg.Sheets.Timeout,
		},
		log: log,
	}
}

func (c *Client) Submit(ctx context.Context, app domain.Application) error {
	const op = "sheets.Submit"

	body, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("%s: failed to encode application: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		prometheus.APIFailures.WithLabelValues("sheets").Inc()
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		prometheus.APIFailures.WithLabelValues("sheets").Inc()
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: bad status %d, response: %s", op, resp.StatusCode, respBody)
	}

	return nil
}

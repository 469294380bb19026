package sheets

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevelopIT-LTD/escobar-bot/configs"
	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
)

func newTestClient(url string) *Client {
	cfg := &configs.Config{
		Sheets: configs.SheetsConfig{URL: url, Timeout: 2 * time.Second},
	}
	return NewClient(cfg, slog.Default())
}

func TestSubmit(t *testing.T) {
	var gotBody domain.Application
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	app := domain.Application{
		Name:     "Олена Коваль",
		Age:      30,
		City:     "Київ",
		Telegram: "@olena_k",
		Phone:    "",
		Vacancy:  "Менеджер з продажу",
	}

	err := newTestClient(server.URL).Submit(context.Background(), app)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, app, gotBody)
}

func TestSubmitBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Submit(context.Background(), domain.Application{})
	assert.Error(t, err)
}

func TestSubmitNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	err := newTestClient(server.URL).Submit(context.Background(), domain.Application{})
	assert.Error(t, err)
}

package webform_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevelopIT-LTD/escobar-bot/configs"
	"github.com/DevelopIT-LTD/escobar-bot/internal/catalog"
	"github.com/DevelopIT-LTD/escobar-bot/internal/delivery/webform"
	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
	"github.com/DevelopIT-LTD/escobar-bot/internal/flow"
	"github.com/DevelopIT-LTD/escobar-bot/internal/render"
	"github.com/DevelopIT-LTD/escobar-bot/internal/repository/sessions"
)

type fakeSink struct {
	apps []domain.Application
}

func (f *fakeSink) Submit(ctx context.Context, app domain.Application) error {
	f.apps = append(f.apps, app)
	return nil
}

func newHandler(sink flow.Sink) *webform.Handler {
	cfg := &configs.Config{
		Bot: configs.BotConfig{
			WebAppURL:     "https://example.com/form",
			AdminIDs:      []int64{1},
			FollowUpDelay: time.Millisecond,
		},
	}
	engine := flow.NewEngine(cfg, catalog.New(), sink, sessions.NewStore(),
		render.New(cfg.Bot.WebAppURL), slog.Default())
	return webform.NewHandler(engine, slog.Default())
}

func TestWebFormSubmission(t *testing.T) {
	sink := &fakeSink{}
	handler := newHandler(sink)

	body := `{"name":"Олена Коваль","age":30,"city":"Київ","telegram":"@olena_k","phone":"","vacancy":"Менеджер з продажу"}`
	req := httptest.NewRequest(http.MethodPost, "/webapp", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "accepted")
	require.Len(t, sink.apps, 1)
	assert.Equal(t, "Олена Коваль", sink.apps[0].Name)
}

func TestWebFormBadPayload(t *testing.T) {
	sink := &fakeSink{}
	handler := newHandler(sink)

	req := httptest.NewRequest(http.MethodPost, "/webapp", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sink.apps)
}

func TestWebFormMethodNotAllowed(t *testing.T) {
	handler := newHandler(&fakeSink{})

	req := httptest.NewRequest(http.MethodGet, "/webapp", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

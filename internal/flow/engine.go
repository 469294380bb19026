package flow

import (
	"context"
	"log/slog"
	"time"

	"github.com/DevelopIT-LTD/escobar-bot/configs"
	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
	"github.com/DevelopIT-LTD/escobar-bot/internal/render"
	"github.com/DevelopIT-LTD/escobar-bot/pkg/prometheus"
)

const (
	chatIDKey        = "chat_id"
	userIDKey        = "user_id"
	actionKey        = "action"
	stepKey          = "step"
	errorKey         = "error"
	correlationIDKey = "correlation_id"
)

type Catalog interface {
	List() []domain.Vacancy
	Get(id int) (domain.Vacancy, error)
	SuitableFor(age int) []domain.Vacancy
}

type Sink interface {
	Submit(ctx context.Context, app domain.Application) error
}

type SessionStore interface {
	Get(chatID int64) (*domain.Session, bool)
	GetOrCreate(chatID int64) *domain.Session
	Clear(chatID int64)
}

// Result — інструкція для транспорту: що перемалювати, що відповісти
// на callback і які побічні дії виконати. Порожній Result — no-op.
type Result struct {
	View      *render.View // перемалювати якірне повідомлення
	NewAnchor bool         // відправити нове повідомлення і перев'язати якір
	Reply     *render.View // окреме повідомлення поза якорем

	Notice string // відповідь на callback
	Alert  bool   // показати Notice як alert

	CloseAnchor   bool // видалити якірне повідомлення
	CloseAnchorID int  // його id: облік у сесії на цей момент вже скинутий

	Preview       *render.Post // відправити превью, запам'ятати його ID
	DeletePreview bool
	Publish       *render.Post
	PublishTo     int64 // 0 — у приватні адміну

	Submit *domain.Application // транспорт показує View і викликає Finalize

	FollowUp      *render.View // перемалювати якір після паузи
	FollowUpDelay time.Duration
}

// Engine — машина переходів обох флоу. Вся обробка подій одного чату
// строго послідовна, тому сесії мутуються без додаткових блокувань.
type Engine struct {
	catalog       Catalog
	sink          Sink
	sessions      SessionStore
	render        *render.Renderer
	admins        map[int64]bool
	channelID     int64
	followUpDelay time.Duration
	log           *slog.Logger
}

func NewEngine(cfg *configs.Config, catalog Catalog, sink Sink, sessions SessionStore,
	renderer *render.Renderer, log *slog.Logger) *Engine {

	admins := make(map[int64]bool, len(cfg.Bot.AdminIDs))
	for _, id := range cfg.Bot.AdminIDs {
		admins[id] = true
	}

	return &Engine{
		catalog:       catalog,
		sink:          sink,
		sessions:      sessions,
		render:        renderer,
		admins:        admins,
		channelID:     cfg.Bot.PostChannelID,
		followUpDelay: cfg.Bot.FollowUpDelay,
		log:           log,
	}
}

func (e *Engine) IsAdmin(userID int64) bool {
	return e.admins[userID]
}

// reset скидає сесію, зберігаючи прив'язку до якірного повідомлення.
func (e *Engine) reset(chatID int64, anchorID int) *domain.Session {
	e.sessions.Clear(chatID)
	sess := e.sessions.GetOrCreate(chatID)
	sess.AnchorMessageID = anchorID
	return sess
}

// SubmitDirect відправляє заявку у приймач. Помилка не фатальна:
// кандидат у будь-якому разі бачить успіх, відмінність лише у тексті.
func (e *Engine) SubmitDirect(ctx context.Context, app domain.Application) bool {
	const op = "flow.SubmitDirect"
	if err := e.sink.Submit(ctx, app); err != nil {
		e.log.Error("заявку не доставлено у приймач",
			"op", op, errorKey, err)
		prometheus.SubmissionCounter.WithLabelValues("degraded").Inc()
		return false
	}
	prometheus.SubmissionCounter.WithLabelValues("delivered").Inc()
	return true
}

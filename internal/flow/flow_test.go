package flow_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevelopIT-LTD/escobar-bot/configs"
	"github.com/DevelopIT-LTD/escobar-bot/internal/catalog"
	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
	"github.com/DevelopIT-LTD/escobar-bot/internal/flow"
	"github.com/DevelopIT-LTD/escobar-bot/internal/render"
	"github.com/DevelopIT-LTD/escobar-bot/internal/repository/sessions"
)

const (
	adminID = int64(1)
	userID  = int64(7)
	chatID  = int64(7)
)

type fakeSink struct {
	apps []domain.Application
	err  error
}

func (f *fakeSink) Submit(ctx context.Context, app domain.Application) error {
	f.apps = append(f.apps, app)
	return f.err
}

func testConfig() *configs.Config {
	return &configs.Config{
		Bot: configs.BotConfig{
			WebAppURL:     "https://example.com/form",
			AdminIDs:      []int64{adminID},
			FollowUpDelay: time.Millisecond,
		},
	}
}

func newTestEngine(sink flow.Sink) (*flow.Engine, *sessions.Store) {
	cfg := testConfig()
	store := sessions.NewStore()
	engine := flow.NewEngine(cfg, catalog.New(), sink, store,
		render.New(cfg.Bot.WebAppURL), slog.Default())
	return engine, store
}

// walkToStep проходить анкету валідними введеннями до вказаного кроку.
func walkToStep(t *testing.T, engine *flow.Engine, step string) {
	t.Helper()
	ctx := context.Background()

	engine.Action(ctx, chatID, userID, "", "select_vacancy", 100)
	engine.Action(ctx, chatID, userID, "", "vacancy_2", 100)
	// кожен запис — крок, на якому вводиться текст
	inputs := []struct {
		step string
		text string
	}{
		{domain.StepName, "Олена Коваль"},
		{domain.StepAge, "30"},
		{domain.StepCity, "Київ"},
		{domain.StepTelegram, "olena_k"},
	}
	for _, input := range inputs {
		if step == input.step {
			return
		}
		engine.Text(ctx, chatID, userID, input.text)
	}
}

func TestApplicationFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	engine, store := newTestEngine(sink)

	res := engine.Action(ctx, chatID, userID, "", "select_vacancy", 100)
	require.NotNil(t, res.View)

	res = engine.Action(ctx, chatID, userID, "", "vacancy_2", 100)
	require.NotNil(t, res.View)

	sess, ok := store.Get(chatID)
	require.True(t, ok)
	assert.Equal(t, domain.StepName, sess.Step)
	assert.Equal(t, 100, sess.AnchorMessageID)

	engine.Text(ctx, chatID, userID, "Олена Коваль")
	engine.Text(ctx, chatID, userID, "30")
	engine.Text(ctx, chatID, userID, "Київ")
	engine.Text(ctx, chatID, userID, "olena_k")
	assert.Equal(t, domain.StepPhone, sess.Step)

	res = engine.Action(ctx, chatID, userID, "", "skip_phone", 100)
	require.NotNil(t, res.Submit)
	require.NotNil(t, res.View)

	want := domain.Application{
		Name:     "Олена Коваль",
		Age:      30,
		City:     "Київ",
		Telegram: "@olena_k",
		Phone:    "",
		Vacancy:  "Менеджер з продажу",
	}
	assert.Equal(t, want, *res.Submit)

	fin := engine.Finalize(ctx, chatID, *res.Submit)
	require.NotNil(t, fin.View)
	require.NotNil(t, fin.FollowUp)

	require.Len(t, sink.apps, 1, "рівно один виклик приймача")
	assert.Equal(t, want, sink.apps[0])

	_, ok = store.Get(chatID)
	assert.False(t, ok, "сесія очищена після відправки")
}

func TestInvalidInputDoesNotAdvance(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(&fakeSink{})

	walkToStep(t, engine, domain.StepAge)
	sess, _ := store.Get(chatID)

	res := engine.Text(ctx, chatID, userID, "двадцять")
	require.NotNil(t, res.View)
	assert.Contains(t, res.View.Text, "Введіть коректний вік")
	assert.Equal(t, domain.StepAge, sess.Step)

	res = engine.Text(ctx, chatID, userID, "16")
	assert.Contains(t, res.View.Text, "Мінімальний вік")
	assert.Equal(t, domain.StepAge, sess.Step)
}

func TestAgeAboveAllVacancies(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(&fakeSink{})

	walkToStep(t, engine, domain.StepAge)

	res := engine.Text(ctx, chatID, userID, "40")
	require.NotNil(t, res.View)
	assert.Contains(t, res.View.Text, "перевищує максимальний для всіх наших вакансій")

	sess, _ := store.Get(chatID)
	assert.Equal(t, domain.StepAge, sess.Step)
	assert.Zero(t, sess.Age)
}

type stubCatalog struct {
	items []domain.Vacancy
}

func (s stubCatalog) List() []domain.Vacancy { return s.items }

func (s stubCatalog) Get(id int) (domain.Vacancy, error) {
	for _, v := range s.items {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Vacancy{}, domain.ErrVacancyNotFound
}

func (s stubCatalog) SuitableFor(age int) []domain.Vacancy {
	suitable := make([]domain.Vacancy, 0)
	for _, v := range s.items {
		if age <= v.MaxAge {
			suitable = append(suitable, v)
		}
	}
	return suitable
}

func TestAgeBranchOffersAlternatives(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	store := sessions.NewStore()
	stub := stubCatalog{items: []domain.Vacancy{
		{ID: 1, Name: "Адміністратор", MaxAge: 35, Emoji: "🏢"},
		{ID: 2, Name: "Нічний сторож", MaxAge: 60, Emoji: "🌙"},
	}}
	engine := flow.NewEngine(cfg, stub, &fakeSink{}, store,
		render.New(cfg.Bot.WebAppURL), slog.Default())

	engine.Action(ctx, chatID, userID, "", "vacancy_1", 100)
	engine.Text(ctx, chatID, userID, "Олена Коваль")

	res := engine.Text(ctx, chatID, userID, "40")
	require.NotNil(t, res.View)
	assert.Contains(t, res.View.Text, "Вакансії, які вам підходять")
	assert.Contains(t, res.View.Text, "Нічний сторож")
	assert.NotContains(t, res.View.Text, "• 🏢 Адміністратор")

	sess, _ := store.Get(chatID)
	assert.Equal(t, domain.StepAge, sess.Step)
}

func TestBackFromTelegramKeepsCity(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(&fakeSink{})

	walkToStep(t, engine, domain.StepTelegram)
	sess, _ := store.Get(chatID)
	require.Equal(t, domain.StepTelegram, sess.Step)

	res := engine.Action(ctx, chatID, userID, "", "back_to_city", 100)
	require.NotNil(t, res.View)
	assert.Equal(t, domain.StepCity, sess.Step)
	assert.Equal(t, "Київ", sess.City, "введене місто збережене")
}

func TestBackWithoutVacancyIsRecoverable(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(&fakeSink{})

	res := engine.Action(ctx, chatID, userID, "", "back_to_city", 100)
	assert.Nil(t, res.View)
	assert.Equal(t, "❌ Помилка", res.Notice)
}

func TestAutoUsername(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(&fakeSink{})

	walkToStep(t, engine, domain.StepTelegram)

	res := engine.Action(ctx, chatID, userID, "", "auto_username", 100)
	assert.True(t, res.Alert)
	assert.Contains(t, res.Notice, "немає @username")
	sess, _ := store.Get(chatID)
	assert.Equal(t, domain.StepTelegram, sess.Step, "без username крок не змінюється")

	res = engine.Action(ctx, chatID, userID, "olena_k", "auto_username", 100)
	require.NotNil(t, res.View)
	assert.Equal(t, domain.StepPhone, sess.Step)
	assert.Equal(t, "@olena_k", sess.Telegram)
}

func TestPhoneValidation(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(&fakeSink{})

	walkToStep(t, engine, domain.StepPhone)
	sess, _ := store.Get(chatID)

	res := engine.Text(ctx, chatID, userID, "не телефон")
	require.NotNil(t, res.View)
	assert.Contains(t, res.View.Text, "Тільки цифри")
	assert.Nil(t, res.Submit)
	assert.Equal(t, domain.StepPhone, sess.Step)

	res = engine.Text(ctx, chatID, userID, "+380501234567")
	require.NotNil(t, res.Submit)
	assert.Equal(t, "+380501234567", res.Submit.Phone)
}

func TestCancelToStartClearsSession(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(&fakeSink{})

	walkToStep(t, engine, domain.StepCity)

	res := engine.Action(ctx, chatID, userID, "", "back_to_start", 100)
	assert.True(t, res.CloseAnchor)
	assert.Equal(t, 100, res.CloseAnchorID, "id для видалення їде разом з інструкцією")
	assert.True(t, res.NewAnchor)
	require.NotNil(t, res.View)

	_, ok := store.Get(chatID)
	assert.False(t, ok)
}

func TestStartScreenListsVacancies(t *testing.T) {
	engine, _ := newTestEngine(&fakeSink{})

	res := engine.Start(context.Background(), chatID)
	require.NotNil(t, res.View)
	assert.Contains(t, res.View.Text, "Актуальні вакансії")
	assert.Contains(t, res.View.Text, "• Адміністратор")
	assert.Contains(t, res.View.Text, "• Project Manager")
}

func TestUnknownVacancy(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(&fakeSink{})

	res := engine.Action(ctx, chatID, userID, "", "vacancy_100", 100)
	assert.Nil(t, res.View)
	assert.Equal(t, "❌ Вакансію не знайдено", res.Notice)

	sess, _ := store.Get(chatID)
	assert.Equal(t, domain.StepIdle, sess.Step)
}

func TestDegradedConfirmation(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{err: errors.New("sheets unavailable")}
	engine, store := newTestEngine(sink)

	app := domain.Application{Name: "Олена Коваль", Vacancy: "Менеджер з продажу"}
	fin := engine.Finalize(ctx, chatID, app)

	require.NotNil(t, fin.View)
	assert.Contains(t, fin.View.Text, "Заявка отримана")
	assert.NotContains(t, fin.View.Text, "успішно відправлена")
	require.Len(t, sink.apps, 1, "збій приймача не веде до ретраїв")

	_, ok := store.Get(chatID)
	assert.False(t, ok)
}

func TestTextOutsideAnyStepIsIgnored(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(&fakeSink{})

	res := engine.Text(ctx, chatID, userID, "привіт")
	assert.Nil(t, res.View)
	assert.Nil(t, res.Reply)
}

func TestSubmitExternal(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	engine, _ := newTestEngine(sink)

	payload := []byte(`{"name":"Олена Коваль","age":30,"city":"Київ","telegram":"@olena_k","phone":"","vacancy":"Менеджер з продажу"}`)
	res, err := engine.SubmitExternal(ctx, payload)

	require.NoError(t, err)
	require.NotNil(t, res.Reply)
	assert.True(t, strings.Contains(res.Reply.Text, "Дякуємо за заявку"))
	require.Len(t, sink.apps, 1)
	assert.Equal(t, "Менеджер з продажу", sink.apps[0].Vacancy)
}

func TestSubmitExternalBadPayload(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	engine, _ := newTestEngine(sink)

	res, err := engine.SubmitExternal(ctx, []byte("not json"))

	require.Error(t, err)
	require.NotNil(t, res.Reply)
	assert.Contains(t, res.Reply.Text, "Помилка обробки заявки")
	assert.Empty(t, sink.apps, "невалідний payload не йде у приймач")
}

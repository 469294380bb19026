package telegram

import (
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/DevelopIT-LTD/escobar-bot/configs"
	"github.com/DevelopIT-LTD/escobar-bot/internal/flow"
	"github.com/DevelopIT-LTD/escobar-bot/internal/render"
	"github.com/DevelopIT-LTD/escobar-bot/internal/repository/sessions"
	"github.com/DevelopIT-LTD/escobar-bot/pkg/prometheus"
)

type Bot struct {
	*tgbotapi.BotAPI
	engine   *flow.Engine
	sessions *sessions.Store
	log      *slog.Logger
}

func NewBot(cfg *configs.Config, engine *flow.Engine, store *sessions.Store, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TG.Token)
	if err != nil {
		return nil, err
	}
	api.Client = &http.Client{
		Timeout: cfg.TG.ConnectionTimeout,
	}

	return &Bot{api, engine, store, log}, nil
}

func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.GetUpdatesChan(u)

	for update := range updates {
		b.handleUpdate(update)
	}
}

func (b *Bot) Stop() {
	b.StopReceivingUpdates()
}

func keyboard(buttons [][]render.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		line := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			if btn.URL != "" {
				line = append(line, tgbotapi.NewInlineKeyboardButtonURL(btn.Label, btn.URL))
			} else {
				line = append(line, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Action))
			}
		}
		rows = append(rows, line)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) sendView(chatID int64, view render.View) (int, error) {
	msg := tgbotapi.NewMessage(chatID, view.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	if len(view.Buttons) > 0 {
		msg.ReplyMarkup = keyboard(view.Buttons)
	}
	sent, err := b.Send(msg)
	if err != nil {
		prometheus.APIFailures.WithLabelValues("sendMessage").Inc()
		return 0, err
	}
	prometheus.MessagesSent.WithLabelValues("text").Inc()
	return sent.MessageID, nil
}

func (b *Bot) editView(chatID int64, messageID int, view render.View) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, view.Text)
	edit.ParseMode = tgbotapi.ModeHTML
	if len(view.Buttons) > 0 {
		markup := keyboard(view.Buttons)
		edit.ReplyMarkup = &markup
	}
	_, err := b.Send(edit)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		// повторне невалідне введення дає той самий екран, це не збій
		return nil
	}
	return err
}

// editOrSend редагує повідомлення msgID, а якщо воно зникло або
// редагування не вдалось — відправляє нове. Повертає id фактичної цілі
// (0 — якщо не вдалося й відправити).
func (b *Bot) editOrSend(chatID int64, msgID int, view render.View) int {
	if msgID != 0 {
		if err := b.editView(chatID, msgID, view); err == nil {
			prometheus.MessagesSent.WithLabelValues("edit").Inc()
			return msgID
		} else {
			b.log.Warn("не вдалося відредагувати якірне повідомлення",
				chatIDKey, chatID, "message_id", msgID, errorKey, err)
		}
	}
	newID, err := b.sendView(chatID, view)
	if err != nil {
		b.log.Error("не вдалося відправити повідомлення", chatIDKey, chatID, errorKey, err)
		return 0
	}
	return newID
}

// renderAnchor малює екран у якірне повідомлення сесії та перев'язує
// якір, якщо ціль змінилась.
func (b *Bot) renderAnchor(chatID int64, view render.View, fresh bool) int {
	sess := b.sessions.GetOrCreate(chatID)
	target := sess.AnchorMessageID
	if fresh {
		target = 0
	}
	id := b.editOrSend(chatID, target, view)
	if id != 0 {
		sess.AnchorMessageID = id
	}
	return id
}

func (b *Bot) sendPost(chatID int64, post render.Post) (int, error) {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(post.PhotoFileID))
	msg.Caption = post.Caption
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(post.Button.Label, post.Button.URL),
		),
	)
	sent, err := b.Send(msg)
	if err != nil {
		prometheus.APIFailures.WithLabelValues("sendPhoto").Inc()
		return 0, err
	}
	prometheus.MessagesSent.WithLabelValues("photo").Inc()
	return sent.MessageID, nil
}

// deleteMessage видаляє повідомлення, помилки ігноруються: введення
// користувача прибирається з чату за можливості.
func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := b.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.Debug("не вдалося видалити повідомлення",
			chatIDKey, chatID, "message_id", messageID, errorKey, err)
	}
}

func (b *Bot) answerCallback(callbackID, text string, alert bool) {
	cfg := tgbotapi.NewCallback(callbackID, text)
	if alert {
		cfg = tgbotapi.NewCallbackWithAlert(callbackID, text)
	}
	if _, err := b.Request(cfg); err != nil {
		b.log.Debug("не вдалося відповісти на callback", errorKey, err)
	}
}

package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
	"github.com/DevelopIT-LTD/escobar-bot/internal/flow"
	"github.com/DevelopIT-LTD/escobar-bot/pkg/prometheus"
)

const (
	chatIDKey  = "chat_id"
	commandKey = "command"
	errorKey   = "error"
)

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := context.Background()

	switch {
	case update.CallbackQuery != nil:
		if update.CallbackQuery.Message == nil {
			return
		}
		b.observe("callback", func() { b.handleCallback(ctx, update.CallbackQuery) })

	case update.Message == nil || update.Message.From == nil:
		return

	case update.Message.IsCommand():
		b.observe("command", func() { b.handleCommand(ctx, update.Message) })

	case update.Message.Photo != nil:
		b.observe("photo", func() { b.handlePhoto(ctx, update.Message) })

	default:
		b.observe("text", func() { b.handleText(ctx, update.Message) })
	}
}

func (b *Bot) observe(kind string, handle func()) {
	startTime := time.Now()
	defer func() {
		prometheus.EventDuration.WithLabelValues(kind).Observe(time.Since(startTime).Seconds())
	}()
	prometheus.EventCounter.WithLabelValues(kind).Inc()

	handle()
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	command := msg.Command()

	b.log.Info("Команда отримана", chatIDKey, chatID, commandKey, command)

	switch command {
	case "start":
		b.apply(ctx, chatID, b.engine.Start(ctx, chatID))
	case "admin":
		b.apply(ctx, chatID, b.engine.Admin(ctx, chatID, msg.From.ID))
	default:
		b.log.Debug("Невідома команда", chatIDKey, chatID, commandKey, command)
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if sess, ok := b.sessions.Get(chatID); ok && sess.Step == domain.StepPostText {
		// текст поста зберігає рідне форматування Telegram
		text = messageHTML(msg)
	}

	res := b.engine.Text(ctx, chatID, msg.From.ID, text)
	if res.View != nil {
		// крок з'їв введення — прибираємо його з чату, лишається якір
		b.deleteMessage(chatID, msg.MessageID)
	}
	b.apply(ctx, chatID, res)
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	// остання в списку — найбільша версія фото
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	res := b.engine.Photo(ctx, chatID, msg.From.ID, fileID)
	if res.View != nil {
		b.deleteMessage(chatID, msg.MessageID)
	}
	b.apply(ctx, chatID, res)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	res := b.engine.Action(ctx, chatID, cb.From.ID, cb.From.UserName, cb.Data, cb.Message.MessageID)
	b.answerCallback(cb.ID, res.Notice, res.Alert)
	b.apply(ctx, chatID, res)
}

// apply виконує інструкцію рушія. Порядок побічних дій відповідає
// поведінці бота: превью і публікація — до перемальовування якоря.
func (b *Bot) apply(ctx context.Context, chatID int64, res flow.Result) {
	if res.CloseAnchor {
		b.deleteMessage(chatID, res.CloseAnchorID)
	}

	if res.Publish != nil {
		dest := res.PublishTo
		if dest == 0 {
			dest = chatID
		}
		if _, err := b.sendPost(dest, *res.Publish); err != nil {
			b.log.Error("не вдалося опублікувати пост", chatIDKey, dest, errorKey, err)
		} else {
			prometheus.PostsPublished.Inc()
		}
	}

	if res.DeletePreview {
		if sess, ok := b.sessions.Get(chatID); ok && sess.PreviewMessageID != 0 {
			b.deleteMessage(chatID, sess.PreviewMessageID)
			sess.PreviewMessageID = 0
		}
	}

	if res.Preview != nil {
		previewID, err := b.sendPost(chatID, *res.Preview)
		if err != nil {
			b.log.Error("не вдалося відправити превью", chatIDKey, chatID, errorKey, err)
		} else if sess, ok := b.sessions.Get(chatID); ok {
			sess.PreviewMessageID = previewID
		}
	}

	if res.Reply != nil {
		if _, err := b.sendView(chatID, *res.Reply); err != nil {
			b.log.Error("не вдалося відправити відповідь", chatIDKey, chatID, errorKey, err)
		}
	}

	if res.View != nil {
		b.renderAnchor(chatID, *res.View, res.NewAnchor)
	}

	if res.Submit != nil {
		b.finalize(ctx, chatID, res)
	}
}

// finalize: екран "обробка" вже показано через res.View, далі один
// виклик приймача, підтвердження і відкладена пропозиція подати ще
// одну заявку — все в те саме повідомлення.
func (b *Bot) finalize(ctx context.Context, chatID int64, res flow.Result) {
	anchorID := 0
	if sess, ok := b.sessions.Get(chatID); ok {
		anchorID = sess.AnchorMessageID
	}

	fin := b.engine.Finalize(ctx, chatID, *res.Submit)
	if fin.View != nil {
		anchorID = b.editOrSend(chatID, anchorID, *fin.View)
	}

	if fin.FollowUp != nil && anchorID != 0 {
		followUp := *fin.FollowUp
		targetID := anchorID
		time.AfterFunc(fin.FollowUpDelay, func() {
			if err := b.editView(chatID, targetID, followUp); err != nil {
				b.log.Debug("не вдалося показати пропозицію повторної заявки",
					chatIDKey, chatID, errorKey, err)
			}
		})
	}
}

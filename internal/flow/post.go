package flow

import (
	"context"

	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
	"github.com/DevelopIT-LTD/escobar-bot/internal/validate"
)

const deniedNotice = "❌ Немає доступу"

// Admin обробляє /admin: панель завжди відправляється новим
// повідомленням і стає якорем адмінської сесії.
func (e *Engine) Admin(ctx context.Context, chatID, userID int64) Result {
	if !e.admins[userID] {
		view := e.render.AdminDenied()
		return Result{Reply: &view}
	}

	e.reset(chatID, 0)
	view := e.render.AdminPanel("")
	return Result{View: &view, NewAnchor: true}
}

// adminAction — callback-дії адмінки. Кожна дія перевіряється проти
// allow-list, чужим — тільки відмова без змін стану.
func (e *Engine) adminAction(sess *domain.Session, chatID, userID int64, action string) Result {
	if !e.admins[userID] {
		e.log.Warn("адмінська дія від стороннього користувача",
			chatIDKey, chatID, userIDKey, userID, actionKey, action)
		return Result{Notice: deniedNotice}
	}

	switch action {
	case "create_post":
		sess.Step = domain.StepPostPhoto
		view := e.render.PostPhotoStep()
		return Result{View: &view}

	case "admin_stats":
		return Result{Notice: "📊 Статистика поки недоступна", Alert: true}

	case "close_admin":
		anchorID := sess.AnchorMessageID
		sess.AnchorMessageID = 0
		return Result{CloseAnchor: true, CloseAnchorID: anchorID}

	case "cancel_post":
		sess.Step = domain.StepIdle
		sess.PostPhotoID = ""
		sess.PostText = ""
		sess.PreviewMessageID = 0
		view := e.render.AdminPanel("")
		return Result{View: &view, Notice: "❌ Створення поста скасовано"}

	case "delete_preview":
		// фото лишається в сесії: адмін перенабирає тільки текст
		sess.Step = domain.StepPostText
		view := e.render.PostTextStep()
		return Result{View: &view, DeletePreview: true, Notice: "🗑 Пост видалено, спробуйте ще раз"}

	case "publish_post":
		// застарілий callback без готової чернетки
		if sess.Step != domain.StepPostConfirm {
			return Result{Notice: "❌ Немає поста для публікації"}
		}
		return e.publishPost(sess)

	default:
		e.log.Debug("невідома дія", chatIDKey, chatID, actionKey, action)
		return Result{}
	}
}

// Photo приймає фото на кроці створення поста. Будь-де інде фото
// ігнорується.
func (e *Engine) Photo(ctx context.Context, chatID, userID int64, fileID string) Result {
	sess, ok := e.sessions.Get(chatID)
	if !ok || sess.Step != domain.StepPostPhoto {
		return Result{}
	}
	if !e.admins[userID] {
		return Result{}
	}

	sess.PostPhotoID = fileID
	sess.Step = domain.StepPostText
	view := e.render.PostTextStep()
	return Result{View: &view}
}

// postPhotoInvalid: на кроці фото прийшло щось інше. Відповідаємо
// окремим повідомленням, якір не чіпаємо.
func (e *Engine) postPhotoInvalid(userID int64) Result {
	if !e.admins[userID] {
		return Result{}
	}
	view := e.render.PhotoInvalid()
	return Result{Reply: &view}
}

// handlePostText будує чернетку і показує превью окремим повідомленням,
// а якір перемикає на екран підтвердження.
func (e *Engine) handlePostText(sess *domain.Session, userID int64, text string) Result {
	if !e.admins[userID] {
		return Result{}
	}

	postText, err := validate.PostText(text)
	if err != nil {
		view := e.render.PostTextStep()
		return Result{View: &view}
	}

	sess.PostText = postText
	sess.Step = domain.StepPostConfirm

	draft := domain.PostDraft{PhotoFileID: sess.PostPhotoID, Text: sess.PostText}
	preview := e.render.PreviewPost(draft)
	view := e.render.PreviewConfirm()
	return Result{Preview: &preview, View: &view}
}

// publishPost — коміт чернетки: пост іде у канал, а якщо канал не
// налаштований — адміну в приватні.
func (e *Engine) publishPost(sess *domain.Session) Result {
	draft := domain.PostDraft{PhotoFileID: sess.PostPhotoID, Text: sess.PostText}
	post := e.render.PublishedPost(draft, e.channelID == 0)

	sess.Step = domain.StepIdle
	sess.PostPhotoID = ""
	sess.PostText = ""

	view := e.render.AdminPanel("✅ <b>Пост успішно опубліковано!</b>")
	return Result{
		Publish:       &post,
		PublishTo:     e.channelID,
		DeletePreview: true,
		View:          &view,
		Notice:        "✅ Готово!",
	}
}

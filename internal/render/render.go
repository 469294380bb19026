package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
	"github.com/DevelopIT-LTD/escobar-bot/internal/validate"
)

const divider = "━━━━━━━━━━━━━━━━"

// Button — одна кнопка inline-клавіатури: або Action (callback data),
// або URL, але не обидва.
type Button struct {
	Label  string
	Action string
	URL    string
}

// View — те, що треба показати: текст (HTML) плюс клавіатура.
type View struct {
	Text    string
	Buttons [][]Button
}

// Post — повідомлення з фото для превью або публікації.
type Post struct {
	PhotoFileID string
	Caption     string
	Button      Button
}

// Renderer — чисте відображення (крок, дані, помилка) -> View.
type Renderer struct {
	webAppURL string
}

func New(webAppURL string) *Renderer {
	return &Renderer{webAppURL: webAppURL}
}

func (r *Renderer) mainKeyboard() [][]Button {
	return [][]Button{
		{{Label: "🌐 Заповнити онлайн", URL: r.webAppURL}},
		{{Label: "📋 Вибрати вакансію в боті", Action: "select_vacancy"}},
	}
}

func backKeyboard() [][]Button {
	return [][]Button{
		{{Label: "◀️ Назад до вакансій", Action: "back_to_vacancies"}},
	}
}

func (r *Renderer) Start(items []domain.Vacancy) View {
	lines := make([]string, 0, len(items))
	for _, v := range items {
		lines = append(lines, "• "+v.Name)
	}
	text := fmt.Sprintf(`<b>🎯 ESCOBAR JOBS</b>
<i>Ваша кар'єра починається тут</i>

%[1]s

💼 <b>Ми пропонуємо:</b>

💰 Високі зарплати від 38 000 грн
📈 Швидке кар'єрне зростання
🏢 Сучасний офіс в центрі міста
✅ Офіційне працевлаштування
🎓 Навчання з першого дня
🎁 Бонуси та преміальні до 150%%

%[1]s

<b>🔥 Актуальні вакансії:</b>

%[2]s

%[1]s

👇 <b>Оберіть зручний спосіб подачі заявки:</b>`, divider, strings.Join(lines, "\n"))
	return View{Text: text, Buttons: r.mainKeyboard()}
}

func (r *Renderer) VacancyList(items []domain.Vacancy) View {
	buttons := make([][]Button, 0, len(items)+1)
	for _, v := range items {
		buttons = append(buttons, []Button{{
			Label:  fmt.Sprintf("%s %s • %s", v.Emoji, v.Name, v.Salary),
			Action: fmt.Sprintf("vacancy_%d", v.ID),
		}})
	}
	buttons = append(buttons, []Button{{Label: "◀️ Назад", Action: "back_to_start"}})
	return View{
		Text:    "<b>📋 ВАКАНСІЇ</b>\n\nОберіть вакансію, яка вас цікавить:",
		Buttons: buttons,
	}
}

// formStep збирає екран кроку анкети: шапка вакансії, номер кроку,
// питання та підказка або анотація помилки.
func formStep(v domain.Vacancy, stepNo int, withSalary bool, title, hint string, kb [][]Button) View {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s %s</b>\n", v.Emoji, v.Name)
	if withSalary {
		fmt.Fprintf(&b, "💰 %s\n", v.Salary)
	}
	fmt.Fprintf(&b, "\n%s\n\n<b>Крок %d з 5</b>\n\n%s\n\n%s", divider, stepNo, title, hint)
	return View{Text: b.String(), Buttons: kb}
}

func (r *Renderer) NameStep(v domain.Vacancy, err error) View {
	hint := "<i>Введіть ваше ім'я та прізвище</i>"
	switch {
	case errors.Is(err, validate.ErrTooShort):
		hint = "❌ <b>Ім'я занадто коротке</b>\n<i>Введіть ваше повне ім'я та прізвище</i>"
	case errors.Is(err, validate.ErrInvalidChars):
		hint = "❌ <b>Тільки букви</b>\n<i>Ім'я може містити тільки літери (без цифр та символів)</i>"
	}
	return formStep(v, 1, true, "👤 Як вас звати?", hint, backKeyboard())
}

func (r *Renderer) AgeStep(v domain.Vacancy, err error) View {
	hint := fmt.Sprintf("<i>Введіть ваш вік (від %d до %d років)</i>", validate.MinAge, v.MaxAge)
	switch {
	case errors.Is(err, validate.ErrNotANumber):
		hint = "❌ <b>Введіть коректний вік (число)</b>\n<i>Наприклад: 23</i>"
	case errors.Is(err, validate.ErrBelowMinimum):
		hint = fmt.Sprintf("❌ <b>Мінімальний вік - %d років</b>\n%s", validate.MinAge, hint)
	}
	return formStep(v, 2, false, "🎂 Скільки вам років?", hint, backKeyboard())
}

// AgeTooOld показується, коли кандидат старший за максимум вакансії.
// Список альтернатив може бути порожнім — тоді текст інший.
func (r *Renderer) AgeTooOld(v domain.Vacancy, age int, alternatives []domain.Vacancy) View {
	var hint string
	if len(alternatives) > 0 {
		lines := make([]string, 0, len(alternatives))
		for _, alt := range alternatives {
			lines = append(lines, fmt.Sprintf("• %s %s (до %d років)", alt.Emoji, alt.Name, alt.MaxAge))
		}
		hint = fmt.Sprintf(
			"⚠️ <b>На вакансію \"%s\" максимальний вік - %d років</b>\n\n<b>Вакансії, які вам підходять:</b>\n%s\n\n<i>Поверніться назад та оберіть іншу вакансію</i>",
			v.Name, v.MaxAge, strings.Join(lines, "\n"))
	} else {
		hint = fmt.Sprintf(
			"❌ <b>На жаль, ваш вік (%d років) перевищує максимальний для всіх наших вакансій</b>\n\n<i>Поверніться назад</i>",
			age)
	}
	return formStep(v, 2, false, "🎂 Скільки вам років?", hint, backKeyboard())
}

func (r *Renderer) CityStep(v domain.Vacancy, err error) View {
	hint := "<i>Введіть назву вашого міста</i>"
	switch {
	case errors.Is(err, validate.ErrTooShort):
		hint = "❌ <b>Введіть коректну назву міста</b>\n<i>Наприклад: Київ, Львів, Одеса</i>"
	case errors.Is(err, validate.ErrInvalidChars):
		hint = "❌ <b>Тільки букви</b>\n<i>Назва міста може містити тільки літери (без цифр та символів)</i>"
	}
	return formStep(v, 3, false, "🏙 З якого ви міста?", hint, backKeyboard())
}

func (r *Renderer) TelegramStep(v domain.Vacancy, err error) View {
	hint := "<i>Введіть username (@ додасться автоматично) або натисніть кнопку</i>"
	switch {
	case errors.Is(err, validate.ErrTooShort):
		hint = "❌ <b>Введіть ваш Telegram username</b>\n<i>Наприклад: @username або username</i>"
	case errors.Is(err, validate.ErrInvalidFormat):
		hint = "❌ <b>Невірний формат</b>\n<i>Username може містити тільки англійські літери, цифри та _\nНаприклад: @username або username</i>"
	}
	kb := [][]Button{
		{{Label: "📱 Підставити мій @username", Action: "auto_username"}},
		{{Label: "◀️ Назад", Action: "back_to_city"}},
	}
	return formStep(v, 4, false, "📱 Ваш Telegram?", hint, kb)
}

func (r *Renderer) PhoneStep(v domain.Vacancy, err error) View {
	hint := "<i>Введіть номер або пропустіть цей крок</i>"
	if errors.Is(err, validate.ErrInvalidChars) {
		hint = "❌ <b>Тільки цифри</b>\n<i>Номер може містити тільки цифри\nНаприклад: 0501234567 або +380501234567</i>"
	}
	kb := [][]Button{
		{{Label: "⏭ Пропустити", Action: "skip_phone"}},
		{{Label: "◀️ Назад", Action: "back_to_telegram"}},
	}
	return formStep(v, 5, false, "📞 Ваш номер телефону?", hint, kb)
}

func (r *Renderer) Processing() View {
	return View{Text: "⏳ <b>Обробка заявки...</b>"}
}

// Confirmation: delivered=false означає, що приймач недоступний —
// формулювання м'якше, але для кандидата це все одно успіх.
func (r *Renderer) Confirmation(delivered bool) View {
	if delivered {
		return View{Text: fmt.Sprintf(`✅ <b>Заявка успішно відправлена!</b>

Дякуємо за інтерес до нашої компанії!

Наш HR-відділ зв'яжеться з вами найближчим часом для обговорення деталей.

%s

Гарного дня! 🌟`, divider)}
	}
	return View{Text: `✅ <b>Заявка отримана!</b>

Дякуємо! Ми зв'яжемося з вами найближчим часом.

Гарного дня! 🌟`}
}

func (r *Renderer) FollowUp() View {
	text := fmt.Sprintf(`✅ <b>Заявка успішно відправлена!</b>

Дякуємо за інтерес до нашої компанії!

Наш HR-відділ зв'яжеться з вами найближчим часом для обговорення деталей.

%[1]s

Гарного дня! 🌟

%[1]s

💼 <b>Цікавлять інші вакансії?</b>
Заповнюй ще раз 👇`, divider)
	return View{Text: text, Buttons: r.mainKeyboard()}
}

func (r *Renderer) WebFormThanks() View {
	return View{Text: "✅ <b>Дякуємо за заявку!</b>\n\n" +
		"Ваші дані успішно відправлені. Ми зв'яжемося з вами найближчим часом!\n\n" +
		"Гарного дня! 🌟"}
}

func (r *Renderer) WebFormError() View {
	return View{Text: "❌ Помилка обробки заявки. Спробуйте ще раз або зверніться до підтримки."}
}

func (r *Renderer) AdminDenied() View {
	return View{Text: "❌ У вас немає доступу до адмін-панелі"}
}

// AdminPanel — якірне повідомлення адмінки; notice додається після
// успішної публікації.
func (r *Renderer) AdminPanel(notice string) View {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>🔧 АДМІН-ПАНЕЛЬ</b>\n<b>Escobar Jobs Bot</b>\n\n%s\n\n", divider)
	if notice != "" {
		fmt.Fprintf(&b, "%s\n\n", notice)
	}
	b.WriteString("Оберіть дію:")
	kb := [][]Button{
		{{Label: "📝 Створити пост", Action: "create_post"}},
		{{Label: "📊 Статистика", Action: "admin_stats"}},
		{{Label: "❌ Закрити", Action: "close_admin"}},
	}
	return View{Text: b.String(), Buttons: kb}
}

func cancelKeyboard() [][]Button {
	return [][]Button{{{Label: "❌ Скасувати", Action: "cancel_post"}}}
}

func (r *Renderer) PostPhotoStep() View {
	text := fmt.Sprintf(`<b>📝 СТВОРЕННЯ ПОСТА</b>

%s

<b>Крок 1:</b> Відправте фото для поста

Це може бути:
• Фото вакансії
• Баннер компанії
• Будь-яке зображення

<i>Відправте фото...</i>`, divider)
	return View{Text: text, Buttons: cancelKeyboard()}
}

func (r *Renderer) PhotoInvalid() View {
	return View{Text: "❌ Будь ласка, відправте фото (не документ, не файл)"}
}

func (r *Renderer) PostTextStep() View {
	text := fmt.Sprintf(`<b>📝 СТВОРЕННЯ ПОСТА</b>

%s

<b>Крок 2:</b> Відправте текст для поста

Можна використовувати HTML форматування:
• <b>жирний</b>
• <i>курсив</i>
• <code>код</code>

<i>Відправте текст...</i>`, divider)
	return View{Text: text, Buttons: cancelKeyboard()}
}

func (r *Renderer) PreviewConfirm() View {
	kb := [][]Button{
		{
			{Label: "✅ Опублікувати", Action: "publish_post"},
			{Label: "🗑 Видалити пост", Action: "delete_preview"},
		},
		{{Label: "❌ Скасувати", Action: "cancel_post"}},
	}
	return View{Text: "☝️ <b>ПРЕВЬЮ ПОСТА</b>\n\nПодобається? Публікуємо?", Buttons: kb}
}

func (r *Renderer) postButton() Button {
	return Button{Label: "📝 Залишити заявку", URL: r.webAppURL}
}

func (r *Renderer) PreviewPost(d domain.PostDraft) Post {
	caption := fmt.Sprintf("%s\n\n<i>%s\n👇 Натисніть кнопку нижче</i>", d.Text, divider)
	return Post{PhotoFileID: d.PhotoFileID, Caption: caption, Button: r.postButton()}
}

// PublishedPost: toAdmin=true — канал не налаштований, пост іде адміну
// в приватні з позначкою.
func (r *Renderer) PublishedPost(d domain.PostDraft, toAdmin bool) Post {
	caption := fmt.Sprintf("%s\n\n<i>%s\n👇 Натисніть кнопку нижче щоб залишити заявку</i>", d.Text, divider)
	if toAdmin {
		caption = "✅ <b>Пост створено!</b>\n\n" + caption
	}
	return Post{PhotoFileID: d.PhotoFileID, Caption: caption, Button: r.postButton()}
}

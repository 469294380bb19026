package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
	"github.com/DevelopIT-LTD/escobar-bot/internal/validate"
)

// Start обробляє /start: скидає сесію та показує стартовий екран
// новим повідомленням.
func (e *Engine) Start(ctx context.Context, chatID int64) Result {
	e.sessions.Clear(chatID)
	view := e.render.Start(e.catalog.List())
	return Result{View: &view, NewAnchor: true}
}

// Action обробляє натискання inline-кнопки. messageID — повідомлення,
// під яким була кнопка: якщо якір ще не прив'язаний, прив'язуємо сюди.
func (e *Engine) Action(ctx context.Context, chatID, userID int64, username, action string, messageID int) Result {
	sess := e.sessions.GetOrCreate(chatID)
	if sess.AnchorMessageID == 0 {
		sess.AnchorMessageID = messageID
	}

	e.log.Info("натиснута кнопка",
		chatIDKey, chatID, actionKey, action, correlationIDKey, sess.CorrelationID)

	switch {
	case action == "select_vacancy":
		e.reset(chatID, messageID).Step = domain.StepVacancy
		view := e.render.VacancyList(e.catalog.List())
		return Result{View: &view}

	case strings.HasPrefix(action, "vacancy_"):
		return e.selectVacancy(sess, action, messageID)

	case action == "back_to_start":
		anchorID := sess.AnchorMessageID
		e.sessions.Clear(chatID)
		view := e.render.Start(e.catalog.List())
		return Result{CloseAnchor: true, CloseAnchorID: anchorID, View: &view, NewAnchor: true}

	case action == "back_to_vacancies":
		e.reset(chatID, sess.AnchorMessageID).Step = domain.StepVacancy
		view := e.render.VacancyList(e.catalog.List())
		return Result{View: &view}

	case action == "back_to_city":
		return e.stepBack(sess, domain.StepCity)

	case action == "back_to_telegram":
		return e.stepBack(sess, domain.StepTelegram)

	case action == "auto_username":
		return e.autoUsername(sess, username)

	case action == "skip_phone":
		sess.Phone = ""
		return e.prepareSubmit(sess)

	default:
		return e.adminAction(sess, chatID, userID, action)
	}
}

// Text обробляє вільний текст відповідно до поточного кроку. Текст
// поза будь-яким кроком ігнорується.
func (e *Engine) Text(ctx context.Context, chatID, userID int64, text string) Result {
	sess, ok := e.sessions.Get(chatID)
	if !ok {
		return Result{}
	}

	e.log.Debug("текст на кроці",
		chatIDKey, chatID, stepKey, sess.Step, correlationIDKey, sess.CorrelationID)

	switch sess.Step {
	case domain.StepName:
		return e.handleName(sess, text)
	case domain.StepAge:
		return e.handleAge(sess, text)
	case domain.StepCity:
		return e.handleCity(sess, text)
	case domain.StepTelegram:
		return e.handleTelegram(sess, text)
	case domain.StepPhone:
		return e.handlePhone(sess, text)
	case domain.StepPostPhoto:
		return e.postPhotoInvalid(userID)
	case domain.StepPostText:
		return e.handlePostText(sess, userID, text)
	default:
		return Result{}
	}
}

func (e *Engine) selectVacancy(sess *domain.Session, action string, messageID int) Result {
	id, err := strconv.Atoi(strings.TrimPrefix(action, "vacancy_"))
	if err != nil {
		return Result{Notice: "❌ Вакансію не знайдено"}
	}
	vacancy, err := e.catalog.Get(id)
	if err != nil {
		return Result{Notice: "❌ Вакансію не знайдено"}
	}

	sess.VacancyID = vacancy.ID
	sess.Step = domain.StepName
	sess.AnchorMessageID = messageID
	view := e.render.NameStep(vacancy, nil)
	return Result{View: &view}
}

// stepBack повертає на один крок назад. Якщо сесія втратила вакансію,
// повертатися нікуди — відповідаємо загальною помилкою.
func (e *Engine) stepBack(sess *domain.Session, step string) Result {
	vacancy, err := e.catalog.Get(sess.VacancyID)
	if err != nil {
		e.log.Warn("крок назад без вибраної вакансії",
			stepKey, step, errorKey, domain.ErrNoPriorStep, correlationIDKey, sess.CorrelationID)
		return Result{Notice: "❌ Помилка"}
	}

	sess.Step = step
	var view = e.render.CityStep(vacancy, nil)
	if step == domain.StepTelegram {
		view = e.render.TelegramStep(vacancy, nil)
	}
	return Result{View: &view}
}

// autoUsername підставляє @username самого користувача. Відсутність
// username — видима користувачу відмова, крок не змінюється.
func (e *Engine) autoUsername(sess *domain.Session, username string) Result {
	if username == "" {
		e.log.Debug("автопідстановка неможлива",
			errorKey, domain.ErrNoUsername, correlationIDKey, sess.CorrelationID)
		return Result{Notice: "❌ У вас немає @username в Telegram", Alert: true}
	}
	vacancy, err := e.catalog.Get(sess.VacancyID)
	if err != nil {
		return Result{Notice: "❌ Помилка"}
	}

	sess.Telegram = "@" + username
	sess.Step = domain.StepPhone
	view := e.render.PhoneStep(vacancy, nil)
	return Result{View: &view}
}

func (e *Engine) handleName(sess *domain.Session, text string) Result {
	vacancy, err := e.catalog.Get(sess.VacancyID)
	if err != nil {
		return Result{}
	}

	name, err := validate.Name(text)
	if err != nil {
		view := e.render.NameStep(vacancy, err)
		return Result{View: &view}
	}

	sess.Name = name
	sess.Step = domain.StepAge
	view := e.render.AgeStep(vacancy, nil)
	return Result{View: &view}
}

func (e *Engine) handleAge(sess *domain.Session, text string) Result {
	vacancy, err := e.catalog.Get(sess.VacancyID)
	if err != nil {
		return Result{}
	}

	age, err := validate.Age(text)
	if err != nil {
		view := e.render.AgeStep(vacancy, err)
		return Result{View: &view}
	}

	if err := validate.AgeForVacancy(age, vacancy); errors.Is(err, validate.ErrAboveRoleMaximum) {
		view := e.render.AgeTooOld(vacancy, age, e.catalog.SuitableFor(age))
		return Result{View: &view}
	}

	sess.Age = age
	sess.Step = domain.StepCity
	view := e.render.CityStep(vacancy, nil)
	return Result{View: &view}
}

func (e *Engine) handleCity(sess *domain.Session, text string) Result {
	vacancy, err := e.catalog.Get(sess.VacancyID)
	if err != nil {
		return Result{}
	}

	city, err := validate.City(text)
	if err != nil {
		view := e.render.CityStep(vacancy, err)
		return Result{View: &view}
	}

	sess.City = city
	sess.Step = domain.StepTelegram
	view := e.render.TelegramStep(vacancy, nil)
	return Result{View: &view}
}

func (e *Engine) handleTelegram(sess *domain.Session, text string) Result {
	vacancy, err := e.catalog.Get(sess.VacancyID)
	if err != nil {
		return Result{}
	}

	handle, err := validate.Telegram(text)
	if err != nil {
		view := e.render.TelegramStep(vacancy, err)
		return Result{View: &view}
	}

	sess.Telegram = handle
	sess.Step = domain.StepPhone
	view := e.render.PhoneStep(vacancy, nil)
	return Result{View: &view}
}

func (e *Engine) handlePhone(sess *domain.Session, text string) Result {
	vacancy, err := e.catalog.Get(sess.VacancyID)
	if err != nil {
		return Result{}
	}

	phone, err := validate.Phone(text)
	if err != nil {
		view := e.render.PhoneStep(vacancy, err)
		return Result{View: &view}
	}

	sess.Phone = phone
	return e.prepareSubmit(sess)
}

// prepareSubmit збирає фінальну заявку. Транспорт показує проміжний
// екран і викликає Finalize.
func (e *Engine) prepareSubmit(sess *domain.Session) Result {
	vacancy, err := e.catalog.Get(sess.VacancyID)
	if err != nil {
		return Result{Notice: "❌ Помилка"}
	}

	app := domain.Application{
		Name:     sess.Name,
		Age:      sess.Age,
		City:     sess.City,
		Telegram: sess.Telegram,
		Phone:    sess.Phone,
		Vacancy:  vacancy.Name,
	}
	view := e.render.Processing()
	return Result{View: &view, Submit: &app}
}

// Finalize робить єдиний виклик приймача, чистить сесію і повертає
// підтвердження плюс відкладений екран "подати ще одну заявку".
func (e *Engine) Finalize(ctx context.Context, chatID int64, app domain.Application) Result {
	delivered := e.SubmitDirect(ctx, app)
	e.sessions.Clear(chatID)

	view := e.render.Confirmation(delivered)
	followUp := e.render.FollowUp()
	return Result{View: &view, FollowUp: &followUp, FollowUpDelay: e.followUpDelay}
}

// SubmitExternal — шлях зовнішньої форми: готова заявка повз кроки
// анкети, одразу у приймач. Поля не перевіряються, валідація була
// на стороні форми. Помилка означає невалідний payload, Reply при
// цьому містить текст для відправника.
func (e *Engine) SubmitExternal(ctx context.Context, payload []byte) (Result, error) {
	const op = "flow.SubmitExternal"

	var app domain.Application
	if err := json.Unmarshal(payload, &app); err != nil {
		e.log.Error("помилка розбору заявки з форми", "op", op, errorKey, err)
		view := e.render.WebFormError()
		return Result{Reply: &view}, fmt.Errorf("%s: %w", op, err)
	}

	e.SubmitDirect(ctx, app)
	view := e.render.WebFormThanks()
	return Result{Reply: &view}, nil
}

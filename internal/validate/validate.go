package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
)

// Помилки валідації. Завжди відновні: крок перемальовується з підказкою.
var (
	ErrTooShort         = errors.New("too short")
	ErrInvalidChars     = errors.New("invalid characters")
	ErrNotANumber       = errors.New("not a number")
	ErrBelowMinimum     = errors.New("below minimum age")
	ErrAboveRoleMaximum = errors.New("above role maximum age")
	ErrInvalidFormat    = errors.New("invalid format")
)

const MinAge = 17

var (
	// українські, російські, латинські літери, пробіл та дефіс
	lettersRe  = regexp.MustCompile(`^[а-яА-ЯіІїЇєЄґҐёЁa-zA-Z\s\-']+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	phoneRe    = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

// Name обрізає пробіли та перевіряє ім'я: мінімум 2 символи, тільки літери.
func Name(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < 2 {
		return "", ErrTooShort
	}
	if !lettersRe.MatchString(name) {
		return "", ErrInvalidChars
	}
	return name, nil
}

// City перевіряється за тими ж правилами, що й ім'я.
func City(raw string) (string, error) {
	city, err := Name(raw)
	if err != nil {
		return "", err
	}
	return city, nil
}

func Age(raw string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrNotANumber
	}
	if age < MinAge {
		return 0, ErrBelowMinimum
	}
	return age, nil
}

// AgeForVacancy перевіряє вік проти максимуму конкретної вакансії.
func AgeForVacancy(age int, v domain.Vacancy) error {
	if age > v.MaxAge {
		return ErrAboveRoleMaximum
	}
	return nil
}

// Telegram нормалізує username: додає @, якщо його немає, і склеює
// випадкове подвійне @@. Нормалізація ідемпотентна.
func Telegram(raw string) (string, error) {
	handle := strings.TrimSpace(raw)
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	handle = strings.ReplaceAll(handle, "@@", "@")

	if utf8.RuneCountInString(handle) < 3 {
		return "", ErrTooShort
	}
	if !usernameRe.MatchString(handle[1:]) {
		return "", ErrInvalidFormat
	}
	return handle, nil
}

// Phone необов'язковий: порожній рядок — валідне значення. Довжина не
// перевіряється, це відома особливість, а не помилка.
func Phone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		return "", nil
	}
	if !phoneRe.MatchString(phone) {
		return "", ErrInvalidChars
	}
	return phone, nil
}

// PostText приймає будь-який непорожній текст, включно з HTML розміткою.
func PostText(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrTooShort
	}
	return raw, nil
}

package domain

type Vacancy struct {
	ID     int
	Name   string
	Salary string
	MaxAge int
	Emoji  string
}

// Application — фінальна заявка, яка йде у зовнішній приймач.
type Application struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	City     string `json:"city"`
	Telegram string `json:"telegram"`
	Phone    string `json:"phone"`
	Vacancy  string `json:"vacancy"`
}

// PostDraft — чернетка поста, публікується тільки після підтвердження.
type PostDraft struct {
	PhotoFileID string
	Text        string
}

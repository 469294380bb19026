package catalog

import "github.com/DevelopIT-LTD/escobar-bot/internal/domain"

// Catalog — статичний список вакансій. Завантажується один раз і
// ніколи не змінюється.
type Catalog struct {
	items []domain.Vacancy
}

func New() *Catalog {
	return &Catalog{items: []domain.Vacancy{
		{ID: 1, Name: "Адміністратор", Salary: "від 42 000 грн", MaxAge: 35, Emoji: "🏢"},
		{ID: 2, Name: "Менеджер з продажу", Salary: "від 60 000 грн + премії", MaxAge: 35, Emoji: "📊"},
		{ID: 3, Name: "Менеджер з клієнтами", Salary: "від 55 000 грн + премії", MaxAge: 35, Emoji: "🤝"},
		{ID: 4, Name: "HR-менеджер", Salary: "від 48 000 грн + премії", MaxAge: 35, Emoji: "👥"},
		{ID: 5, Name: "Sale Manager", Salary: "від 60 000 грн + премії", MaxAge: 35, Emoji: "🎯"},
		{ID: 6, Name: "Рекрутер", Salary: "від 40 000 грн + премії", MaxAge: 35, Emoji: "🔍"},
		{ID: 7, Name: "Менеджер по роботі з персоналом", Salary: "від 45 000 грн + премії", MaxAge: 35, Emoji: "👤"},
		{ID: 8, Name: "Спеціаліст з комунікацій", Salary: "від 38 000 грн", MaxAge: 35, Emoji: "📢"},
		{ID: 9, Name: "Project Manager", Salary: "від 55 000 грн + премії", MaxAge: 35, Emoji: "📋"},
	}}
}

// List повертає вакансії у фіксованому порядку меню.
func (c *Catalog) List() []domain.Vacancy {
	return append([]domain.Vacancy(nil), c.items...)
}

func (c *Catalog) Get(id int) (domain.Vacancy, error) {
	for _, v := range c.items {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Vacancy{}, domain.ErrVacancyNotFound
}

// SuitableFor повертає вакансії, для яких вік кандидата не перевищує
// максимальний. Може бути порожнім.
func (c *Catalog) SuitableFor(age int) []domain.Vacancy {
	suitable := make([]domain.Vacancy, 0, len(c.items))
	for _, v := range c.items {
		if age <= v.MaxAge {
			suitable = append(suitable, v)
		}
	}
	return suitable
}

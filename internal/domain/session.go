package domain

// Кроки анкети кандидата.
const (
	StepIdle     = ""
	StepVacancy  = "vacancy"
	StepName     = "name"
	StepAge      = "age"
	StepCity     = "city"
	StepTelegram = "telegram"
	StepPhone    = "phone"
)

// Кроки створення поста (тільки для адмінів).
const (
	StepPostPhoto   = "post_photo"
	StepPostText    = "post_text"
	StepPostConfirm = "post_confirm"
)

// Session — стан однієї розмови. Fields заповнюються лише для вже
// пройдених кроків; AnchorMessageID — єдине повідомлення, яке бот
// редагує на місці.
type Session struct {
	CorrelationID    string
	Step             string
	VacancyID        int
	Name             string
	Age              int
	City             string
	Telegram         string
	Phone            string
	PostPhotoID      string
	PostText         string
	AnchorMessageID  int
	PreviewMessageID int
}

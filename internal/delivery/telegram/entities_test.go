package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestMessageHTML(t *testing.T) {
	tests := []struct {
		name string
		msg  tgbotapi.Message
		want string
	}{
		{
			name: "без entities текст не змінюється",
			msg:  tgbotapi.Message{Text: "<b>Нова вакансія!</b>"},
			want: "<b>Нова вакансія!</b>",
		},
		{
			name: "emoji займає дві UTF-16 одиниці",
			msg: tgbotapi.Message{
				Text: "🔥 Нова вакансія",
				Entities: []tgbotapi.MessageEntity{
					{Type: "bold", Offset: 3, Length: 4},
				},
			},
			want: "🔥 <b>Нова</b> вакансія",
		},
		{
			name: "вкладені entities",
			msg: tgbotapi.Message{
				Text: "житло та їжа",
				Entities: []tgbotapi.MessageEntity{
					{Type: "bold", Offset: 0, Length: 12},
					{Type: "italic", Offset: 6, Length: 2},
				},
			},
			want: "<b>житло <i>та</i> їжа</b>",
		},
		{
			name: "спецсимволи екрануються",
			msg: tgbotapi.Message{
				Text: "5 < 10",
				Entities: []tgbotapi.MessageEntity{
					{Type: "bold", Offset: 0, Length: 1},
				},
			},
			want: "<b>5</b> &lt; 10",
		},
		{
			name: "посилання",
			msg: tgbotapi.Message{
				Text: "наш сайт",
				Entities: []tgbotapi.MessageEntity{
					{Type: "text_link", Offset: 4, Length: 4, URL: "https://example.com"},
				},
			},
			want: `наш <a href="https://example.com">сайт</a>`,
		},
		{
			name: "невідомий тип entity пропускається",
			msg: tgbotapi.Message{
				Text: "згадка @user",
				Entities: []tgbotapi.MessageEntity{
					{Type: "mention", Offset: 7, Length: 5},
				},
			},
			want: "згадка @user",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messageHTML(&tt.msg))
		})
	}
}

package telegram

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// messageHTML відновлює HTML-розмітку з тексту та entities повідомлення.
// Зміщення entities рахуються в UTF-16 одиницях. Без entities текст
// повертається як є: набрані вручну HTML-теги лишаються робочими.
func messageHTML(msg *tgbotapi.Message) string {
	if len(msg.Entities) == 0 {
		return msg.Text
	}

	type marker struct {
		pos     int
		closing bool
		length  int
		tag     string
	}

	units := utf16.Encode([]rune(msg.Text))
	markers := make([]marker, 0, len(msg.Entities)*2)
	for _, e := range msg.Entities {
		open, cls := entityTags(e)
		if open == "" || e.Offset < 0 || e.Offset+e.Length > len(units) {
			continue
		}
		markers = append(markers, marker{pos: e.Offset, length: e.Length, tag: open})
		markers = append(markers, marker{pos: e.Offset + e.Length, closing: true, length: e.Length, tag: cls})
	}

	// entities вкладені або не перетинаються: на одній позиції спершу
	// закриваємо внутрішні, потім відкриваємо зовнішні
	sort.SliceStable(markers, func(i, j int) bool {
		if markers[i].pos != markers[j].pos {
			return markers[i].pos < markers[j].pos
		}
		if markers[i].closing != markers[j].closing {
			return markers[i].closing
		}
		if markers[i].closing {
			return markers[i].length < markers[j].length
		}
		return markers[i].length > markers[j].length
	})

	var b strings.Builder
	last := 0
	for _, m := range markers {
		if m.pos > last {
			b.WriteString(html.EscapeString(string(utf16.Decode(units[last:m.pos]))))
			last = m.pos
		}
		b.WriteString(m.tag)
	}
	if last < len(units) {
		b.WriteString(html.EscapeString(string(utf16.Decode(units[last:]))))
	}
	return b.String()
}

func entityTags(e tgbotapi.MessageEntity) (open, cls string) {
	switch e.Type {
	case "bold":
		return "<b>", "</b>"
	case "italic":
		return "<i>", "</i>"
	case "underline":
		return "<u>", "</u>"
	case "strikethrough":
		return "<s>", "</s>"
	case "code":
		return "<code>", "</code>"
	case "pre":
		return "<pre>", "</pre>"
	case "text_link":
		return fmt.Sprintf(`<a href=%q>`, e.URL), "</a>"
	}
	return "", ""
}

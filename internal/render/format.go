package render

import (
	"html"
	"strings"
)

// FormatText превращает текст пользователя в безопасный HTML: перенос строки
// становится <br />, **жирный** - <strong>, голые URL и markdown-ссылки -
// якорями. Никакого разбора тегов карточек здесь нет.
func FormatText(text string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		if link, label, end, ok := parseMarkdownLink(text, i); ok {
			b.WriteString(anchor(link, label))
			i = end
			continue
		}
		if url, end, ok := parseBareURL(text, i); ok {
			b.WriteString(anchor(url, url))
			i = end
			continue
		}
		// Копим обычный текст до следующего потенциального начала ссылки.
		next := nextLinkStart(text, i)
		writeInline(&b, text[i:next])
		i = next
	}
	return b.String()
}

// nextLinkStart возвращает позицию следующего кандидата на ссылку после i.
func nextLinkStart(text string, i int) int {
	for j := i + 1; j < len(text); j++ {
		if text[j] == '[' || strings.HasPrefix(text[j:], "http://") || strings.HasPrefix(text[j:], "https://") {
			return j
		}
	}
	return len(text)
}

// parseMarkdownLink пытается разобрать [label](url) начиная с позиции i.
func parseMarkdownLink(text string, i int) (url, label string, end int, ok bool) {
	if i >= len(text) || text[i] != '[' {
		return "", "", 0, false
	}
	closeBracket := strings.IndexByte(text[i:], ']')
	if closeBracket < 0 {
		return "", "", 0, false
	}
	labelEnd := i + closeBracket
	if labelEnd+1 >= len(text) || text[labelEnd+1] != '(' {
		return "", "", 0, false
	}
	closeParen := strings.IndexByte(text[labelEnd+1:], ')')
	if closeParen < 0 {
		return "", "", 0, false
	}
	url = text[labelEnd+2 : labelEnd+1+closeParen]
	if !isHTTPURL(url) {
		return "", "", 0, false
	}
	label = text[i+1 : labelEnd]
	return url, label, labelEnd + 2 + closeParen, true
}

// parseBareURL пытается разобрать голый URL начиная с позиции i.
func parseBareURL(text string, i int) (url string, end int, ok bool) {
	if !isHTTPURL(text[i:]) {
		return "", 0, false
	}
	end = i
	for end < len(text) && !isURLTerminator(text[end]) {
		end++
	}
	// Завершающую пунктуацию предложения не включаем в ссылку.
	for end > i && strings.ContainsRune(".,;:!?)", rune(text[end-1])) {
		end--
	}
	return text[i:end], end, true
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func isURLTerminator(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '<' || c == '"'
}

func anchor(url, label string) string {
	return `<a href="` + html.EscapeString(url) + `" target="_blank" rel="noopener noreferrer">` + html.EscapeString(label) + `</a>`
}

// writeInline экранирует текст и применяет построчное форматирование.
func writeInline(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	escaped := html.EscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\n", "<br />")
	b.WriteString(applyBold(escaped))
}

// applyBold заменяет парные **...** на <strong>.
func applyBold(text string) string {
	var b strings.Builder
	for {
		open := strings.Index(text, "**")
		if open < 0 {
			break
		}
		stop := strings.Index(text[open+2:], "**")
		if stop < 0 {
			break
		}
		b.WriteString(text[:open])
		b.WriteString("<strong>")
		b.WriteString(text[open+2 : open+2+stop])
		b.WriteString("</strong>")
		text = text[open+4+stop:]
	}
	b.WriteString(text)
	return b.String()
}

package render

import (
	"strings"
	"testing"
)

func TestFormatText_EscapesHTML(t *testing.T) {
	got := FormatText(`<script>alert("x")</script>`)

	if strings.Contains(got, "<script>") {
		t.Fatalf("HTML не экранирован: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Fatalf("ожидали экранированный тег, получили %q", got)
	}
}

func TestFormatText_NewlineToBreak(t *testing.T) {
	got := FormatText("первая\nвторая")

	if got != "первая<br />вторая" {
		t.Fatalf("неожиданный результат: %q", got)
	}
}

func TestFormatText_Bold(t *testing.T) {
	got := FormatText("это **важно** запомнить")

	if got != "это <strong>важно</strong> запомнить" {
		t.Fatalf("неожиданный результат: %q", got)
	}
}

func TestFormatText_UnpairedBoldStaysLiteral(t *testing.T) {
	got := FormatText("одинокие ** звёздочки")

	if strings.Contains(got, "<strong>") {
		t.Fatalf("непарные звёздочки не должны давать strong: %q", got)
	}
}

func TestFormatText_MarkdownLink(t *testing.T) {
	got := FormatText("смотри [мой сайт](https://markrenzo.com) тут")

	want := `смотри <a href="https://markrenzo.com" target="_blank" rel="noopener noreferrer">мой сайт</a> тут`
	if got != want {
		t.Fatalf("неожиданный результат: %q", got)
	}
}

func TestFormatText_MarkdownLinkNonHTTPStaysText(t *testing.T) {
	got := FormatText("[label](javascript:alert(1))")

	if strings.Contains(got, "<a ") {
		t.Fatalf("не-http ссылка не должна становиться якорем: %q", got)
	}
}

func TestFormatText_BareURL(t *testing.T) {
	got := FormatText("зайди на https://example.com/page.")

	want := `зайди на <a href="https://example.com/page" target="_blank" rel="noopener noreferrer">https://example.com/page</a>.`
	if got != want {
		t.Fatalf("неожиданный результат: %q", got)
	}
}

func TestFormatText_PlainText(t *testing.T) {
	got := FormatText("просто текст")

	if got != "просто текст" {
		t.Fatalf("обычный текст изменился: %q", got)
	}
}

package render

import (
	"strings"
	"time"
)

// Константы поэтапного появления абзацев. Абзац N начинает анимацию только
// после того, как абзац N-1 закончил свою, плюс фиксированная пауза.
const (
	perWordStagger    = 50 * time.Millisecond
	paragraphDuration = 600 * time.Millisecond
	paragraphPause    = 300 * time.Millisecond
)

// Paragraph - абзац текста и момент начала его показа
// относительно начала сообщения, в миллисекундах.
type Paragraph struct {
	Text          string `json:"text"`
	StartOffsetMs int64  `json:"start_offset_ms"`
}

// SplitParagraphs разбивает текст на абзацы по пустым строкам
// (две и более подряд идущие новые строки).
func SplitParagraphs(text string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

// Schedule назначает каждому абзацу монотонно возрастающую задержку показа:
// бегущая сумма времени анимации предыдущих абзацев
// (слова x 50мс + 600мс) плюс пауза 300мс между абзацами.
func Schedule(paragraphs []string) []Paragraph {
	result := make([]Paragraph, 0, len(paragraphs))
	var offset time.Duration
	for i, p := range paragraphs {
		if i > 0 {
			offset += paragraphPause
		}
		result = append(result, Paragraph{Text: p, StartOffsetMs: offset.Milliseconds()})
		offset += time.Duration(wordCount(p))*perWordStagger + paragraphDuration
	}
	return result
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

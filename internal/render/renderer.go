package render

import (
	"sort"
	"strings"
)

// Префиксы идентификаторов карточек. Идентификатор валиден, если после
// префикса есть хотя бы один символ, либо если это литерал aboutmecard.
var identifierPrefixes = []string{"work_", "project_", "tool_", "skill_", "gallery_"}

const aboutIdentifier = "aboutmecard"

// ValidIdentifier проверяет, соответствует ли строка грамматике идентификатора.
func ValidIdentifier(s string) bool {
	if s == aboutIdentifier {
		return true
	}
	for _, prefix := range identifierPrefixes {
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return true
		}
	}
	return false
}

// span - найденный в исходной строке диапазон с готовым сегментом.
type span struct {
	start, end int // полуинтервал [start, end) в байтах исходной строки
	seg        Segment
}

// Render разбирает сырой текст сообщения в последовательность сегментов.
// Сканирование детерминированное, в два прохода: сначала группы вида
// [<id>,<id>], затем одиночные теги <id> в оставшемся тексте. Группы
// извлекаются первыми и всегда выигрывают у пересекающихся одиночных тегов.
// Нераспознанные теги остаются обычным текстом - режима ошибки у парсера нет.
func Render(content string) []Segment {
	spans := scanGroups(content)
	spans = append(spans, scanSingles(content, spans)...)

	// Текст без единого тега возвращаем как есть, одним сегментом.
	if len(spans) == 0 {
		if content == "" {
			return nil
		}
		return []Segment{TextSegment(content)}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var segments []Segment
	pos := 0
	for _, sp := range spans {
		if text := strings.TrimSpace(content[pos:sp.start]); text != "" {
			segments = append(segments, TextSegment(text))
		}
		segments = append(segments, sp.seg)
		pos = sp.end
	}
	if text := strings.TrimSpace(content[pos:]); text != "" {
		segments = append(segments, TextSegment(text))
	}
	return segments
}

// scanGroups ищет группы [<id>, <id>, ...]. Скобки литеральные, элементы
// разделены запятыми, пробелы вокруг элементов допустимы. Группа без единого
// валидного идентификатора группой не считается и остаётся текстом.
func scanGroups(content string) []span {
	var spans []span
	for i := 0; i < len(content); i++ {
		if content[i] != '[' {
			continue
		}
		ids, end, ok := parseGroup(content, i)
		if !ok {
			continue
		}
		spans = append(spans, span{start: i, end: end, seg: CardGroupSegment(ids)})
		i = end - 1
	}
	return spans
}

// parseGroup пытается разобрать группу, начинающуюся с '[' на позиции start.
// Возвращает идентификаторы, позицию за закрывающей скобкой и признак успеха.
func parseGroup(content string, start int) ([]string, int, bool) {
	var ids []string
	i := start + 1
	for {
		i = skipSpaces(content, i)
		if i >= len(content) {
			return nil, 0, false
		}
		if content[i] == ']' {
			// Пустые скобки или хвостовая запятая без элемента.
			if len(ids) == 0 {
				return nil, 0, false
			}
			return ids, i + 1, true
		}
		if content[i] != '<' {
			return nil, 0, false
		}
		gt := strings.IndexByte(content[i:], '>')
		if gt < 0 {
			return nil, 0, false
		}
		id := content[i+1 : i+gt]
		if !ValidIdentifier(id) {
			return nil, 0, false
		}
		ids = append(ids, id)
		i += gt + 1

		i = skipSpaces(content, i)
		if i >= len(content) {
			return nil, 0, false
		}
		switch content[i] {
		case ',':
			i++
		case ']':
			return ids, i + 1, true
		default:
			return nil, 0, false
		}
	}
}

// scanSingles ищет одиночные теги <id> вне уже занятых диапазонов.
func scanSingles(content string, taken []span) []span {
	var spans []span
	for i := 0; i < len(content); i++ {
		if content[i] != '<' || inside(i, taken) {
			continue
		}
		gt := strings.IndexByte(content[i:], '>')
		if gt < 0 {
			break
		}
		end := i + gt + 1
		if inside(end-1, taken) {
			continue
		}
		id := content[i+1 : end-1]
		if !ValidIdentifier(id) {
			continue
		}
		spans = append(spans, span{start: i, end: end, seg: CardSegment(id)})
		i = end - 1
	}
	return spans
}

func inside(pos int, spans []span) bool {
	for _, sp := range spans {
		if pos >= sp.start && pos < sp.end {
			return true
		}
	}
	return false
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

package render

// PlannedSegment - сегмент вместе с планом показа. Для текстовых сегментов
// ассистента заполняется разбивка на абзацы с задержками; текст пользователя
// остаётся единым куском и не анимируется.
type PlannedSegment struct {
	Segment
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
}

// Plan строит план рендера сообщения: сегменты в исходном порядке, а для
// сообщений ассистента - поэтапное появление абзацев. Бегущая сумма задержек
// общая для всего сообщения, поэтому абзацы разных текстовых сегментов
// появляются строго последовательно.
func Plan(content string, isUser bool) []PlannedSegment {
	segments := Render(content)
	planned := make([]PlannedSegment, 0, len(segments))

	var carried []string
	for _, seg := range segments {
		ps := PlannedSegment{Segment: seg}
		if !isUser && seg.Kind == KindText {
			carried = append(carried, SplitParagraphs(seg.Text)...)
		}
		planned = append(planned, ps)
	}

	if isUser {
		return planned
	}

	// Раздаём рассчитанные задержки обратно по текстовым сегментам.
	scheduled := Schedule(carried)
	idx := 0
	for i := range planned {
		if planned[i].Kind != KindText {
			continue
		}
		count := len(SplitParagraphs(planned[i].Text))
		planned[i].Paragraphs = scheduled[idx : idx+count]
		idx += count
	}
	return planned
}

package render

// SegmentKind - вид сегмента разобранного сообщения.
type SegmentKind string

const (
	KindText      SegmentKind = "text"
	KindCard      SegmentKind = "card"
	KindCardGroup SegmentKind = "card_group"
)

// Segment - единица разобранного сообщения: либо текст,
// либо ссылка на карточку (одиночная или группа).
type Segment struct {
	Kind        SegmentKind `json:"kind"`
	Text        string      `json:"text,omitempty"`
	Identifier  string      `json:"identifier,omitempty"`
	Identifiers []string    `json:"identifiers,omitempty"`
}

// TextSegment создаёт текстовый сегмент.
func TextSegment(text string) Segment {
	return Segment{Kind: KindText, Text: text}
}

// CardSegment создаёт сегмент одиночной карточки.
func CardSegment(identifier string) Segment {
	return Segment{Kind: KindCard, Identifier: identifier}
}

// CardGroupSegment создаёт сегмент группы карточек.
func CardGroupSegment(identifiers []string) Segment {
	return Segment{Kind: KindCardGroup, Identifiers: identifiers}
}

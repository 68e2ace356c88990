package models

import "time"

// Message - одно сообщение в транскрипте беседы.
// Content хранит сырой текст; теги карточек разбираются только при рендере.
type Message struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

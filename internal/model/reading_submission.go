package model

import "time"

// ReadingSubmission отчёт студента о прочитанной книге.
// Заполнено ровно одно из BookID/CustomBookID (CHECK в схеме).
// PageCount приходит отдельным шагом диалога, поэтому запись без него
// валидна и может быть дозаполнена позже.
type ReadingSubmission struct {
	ID             int64     `json:"id"`
	AccountID      int64     `json:"account_id"`
	Month          string    `json:"month"`
	BookID         *int64    `json:"book_id"`
	CustomBookID   *int64    `json:"custom_book_id"`
	VoiceObjectKey string    `json:"voice_object_key"`
	PageCount      *int      `json:"page_count"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

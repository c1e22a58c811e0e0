package model

import "time"

// CustomBook книга вне каталога, которую студент указал сам
type CustomBook struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Month     string    `json:"month"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

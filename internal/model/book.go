package model

import "time"

// Book книга месячной программы kitobxonlik, загруженная координатором
type Book struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Month      string    `json:"month"` // Название месяца, например "March"
	ObjectKey  string    `json:"object_key"`
	Filename   string    `json:"filename"` // Исходное имя файла, под ним книга уходит студенту
	UploadedBy int64     `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

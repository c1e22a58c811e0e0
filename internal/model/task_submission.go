package model

import "time"

// TaskSubmission сданное студентом видео по заданию.
// На пару (account, task_name) допускается ровно одна запись.
type TaskSubmission struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	TaskName    string    `json:"task_name"`
	ObjectKey   string    `json:"object_key"`
	SubmittedAt time.Time `json:"submitted_at"`
}

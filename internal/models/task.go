package models

import "time"

type Task struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

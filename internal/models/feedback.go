package models

import "time"

type Feedback struct {
	ID        int64     `json:"id"`
	RecordID  int64     `json:"record_id"`
	Reason    string    `json:"reason"`
	Comments  string    `json:"comments"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

package repositories

import (
	"database/sql"
	"fmt"

	"fillratedash/internal/models"
)

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(fb *models.Feedback) (int64, error) {
	const q = `
		INSERT INTO fill_rate_feedback (record_id, reason, comments, user_email, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := r.db.QueryRow(q,
		fb.RecordID, fb.Reason, fb.Comments, fb.UserEmail, fb.CreatedAt,
	).Scan(&fb.ID); err != nil {
		return 0, fmt.Errorf("create feedback: %w", err)
	}
	return fb.ID, nil
}

func (r *FeedbackRepository) HistoryByRecordID(recordID int64) ([]models.Feedback, error) {
	const q = `
		SELECT id, record_id, reason, comments, user_email, created_at
		FROM fill_rate_feedback
		WHERE record_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(q, recordID)
	if err != nil {
		return nil, fmt.Errorf("feedback history: %w", err)
	}
	defer rows.Close()

	out := []models.Feedback{}
	for rows.Next() {
		var fb models.Feedback
		var comments sql.NullString
		if err := rows.Scan(&fb.ID, &fb.RecordID, &fb.Reason, &comments, &fb.UserEmail, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		fb.Comments = comments.String
		out = append(out, fb)
	}
	return out, rows.Err()
}

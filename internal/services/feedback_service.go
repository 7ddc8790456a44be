package services

import (
	"errors"
	"time"

	"fillratedash/internal/models"
)

// NonFulfillmentReasons is the fixed vocabulary of reason codes the supply
// team attaches to under-filled orders.
var NonFulfillmentReasons = []string{
	"Product non Availability at Factory",
	"Product non Availability at SO",
	"Product non availability at CFA",
	"Supply not made as per PO time lines",
	"PO price issue",
	"Appointment issues",
	"Supply rejected by customer",
}

var (
	ErrMissingFields = errors.New("record id and reason are required")
	ErrUnknownReason = errors.New("unknown reason")
)

type feedbackStore interface {
	Create(fb *models.Feedback) (int64, error)
	HistoryByRecordID(recordID int64) ([]models.Feedback, error)
}

type FeedbackService struct {
	Repo feedbackStore

	now func() time.Time
}

func NewFeedbackService(repo feedbackStore) *FeedbackService {
	return &FeedbackService{Repo: repo, now: time.Now}
}

func (s *FeedbackService) Reasons() []string {
	return NonFulfillmentReasons
}

func (s *FeedbackService) Submit(recordID int64, reason, comments, userEmail string) (*models.Feedback, error) {
	if recordID == 0 || reason == "" {
		return nil, ErrMissingFields
	}
	valid := false
	for _, r := range NonFulfillmentReasons {
		if r == reason {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrUnknownReason
	}

	fb := &models.Feedback{
		RecordID:  recordID,
		Reason:    reason,
		Comments:  comments,
		UserEmail: userEmail,
		CreatedAt: s.now(),
	}
	if _, err := s.Repo.Create(fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) History(recordID int64) ([]models.Feedback, error) {
	return s.Repo.HistoryByRecordID(recordID)
}

package models

type SendOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type SubmitFeedbackRequest struct {
	RecordID int64  `json:"record_id" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	Comments string `json:"comments"`
}

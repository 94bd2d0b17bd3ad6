package models

import "time"

// DigestSent tracks which weekly digests have been sent to avoid duplicates
type DigestSent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:128;not null;index" json:"user_id"`
	JourneyCount int       `gorm:"not null" json:"journey_count"`
	TotalMeters  float64   `gorm:"not null" json:"total_meters"`
	SentAt       time.Time `gorm:"not null;index" json:"sent_at"`
}

// TableName specifies the table name for the DigestSent model
func (DigestSent) TableName() string {
	return "digest_sent"
}

package services

import (
	"log"
	"time"

	"herospath/internal/database"
	"herospath/internal/models"

	"gorm.io/gorm"
)

// DigestWorker periodically mails each user a summary of their past week of
// journeys. A digest_sent row per user keeps sends to at most one a week.
type DigestWorker struct {
	db           *gorm.DB
	emailService *EmailService
	interval     time.Duration
}

func NewDigestWorker() *DigestWorker {
	return &DigestWorker{
		db:           database.GetDB(),
		emailService: NewEmailService(),
		interval:     time.Hour, // Check every hour
	}
}

func (w *DigestWorker) Start() {
	go w.run()
}

func (w *DigestWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for range ticker.C {
		w.sendDueDigests()
	}
}

// hasRecentDigest checks whether a digest was already sent within the window
func (w *DigestWorker) hasRecentDigest(userID string, since time.Time) bool {
	var count int64
	w.db.Model(&models.DigestSent{}).
		Where("user_id = ? AND sent_at > ?", userID, since).
		Count(&count)
	return count > 0
}

func (w *DigestWorker) sendDueDigests() {
	now := time.Now()
	weekAgo := now.Add(-7 * 24 * time.Hour)

	var accounts []models.Account
	if err := w.db.Where("digest_enabled = ?", true).Find(&accounts).Error; err != nil {
		log.Printf("Error: Failed to load accounts for digest: %v", err)
		return
	}

	for _, account := range accounts {
		if w.hasRecentDigest(account.GoogleID, weekAgo) {
			continue
		}
		w.sendDigestForUser(account, weekAgo)
	}
}

func (w *DigestWorker) sendDigestForUser(account models.Account, since time.Time) {
	var journeys []models.Journey
	if err := w.db.Where("user_id = ? AND created_at > ?", account.GoogleID, since).
		Find(&journeys).Error; err != nil {
		log.Printf("Error: Failed to load journeys for %s: %v", account.Email, err)
		return
	}

	// Nothing walked this week, nothing to say
	if len(journeys) == 0 {
		return
	}

	// Journey.Distance was computed by geo.TotalDistance at creation, so the
	// digest shows the same numbers as the app
	var totalMeters float64
	for _, journey := range journeys {
		totalMeters += journey.Distance
	}

	if err := w.emailService.SendWeeklyDigest(account, len(journeys), totalMeters); err != nil {
		log.Printf("Failed to send weekly digest to %s: %v", account.Email, err)
		return
	}

	record := models.DigestSent{
		UserID:       account.GoogleID,
		JourneyCount: len(journeys),
		TotalMeters:  totalMeters,
		SentAt:       time.Now(),
	}
	w.db.Create(&record)

	log.Printf("Sent weekly digest to %s (%d journeys, %.1f km)",
		account.Email, len(journeys), totalMeters/1000)
}

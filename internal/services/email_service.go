package services

import (
	"fmt"
	"os"

	"herospath/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")

	client := sendgrid.NewSendClient(apiKey)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendWeeklyDigest sends a user their past week of walking: journey count
// and total distance
func (s *EmailService) SendWeeklyDigest(account models.Account, journeyCount int, totalMeters float64) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(account.DisplayName, account.Email)

	km := totalMeters / 1000
	subject := fmt.Sprintf("Your week on Hero's Path: %.1f km walked", km)

	plainContent := fmt.Sprintf("Hello %s, you recorded %d journeys this week covering %.1f km. Keep exploring!",
		account.DisplayName, journeyCount, km)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>You recorded <strong>%d journeys</strong> this week covering <strong>%.1f km</strong>.</p><p>Keep exploring!</p>",
		account.DisplayName, journeyCount, km)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send digest to %s: %d", account.Email, response.StatusCode)
	}

	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"petoverflow/internal/models"
	"petoverflow/internal/repository"
)

const smsTextLimit = 120

// SmsPublisher pushes an outbound SMS onto the delivery pipeline. The Kafka
// adapter implements it; tests swap in a recorder.
type SmsPublisher interface {
	PublishSms(ctx context.Context, phoneNumber, message string) error
}

// NotificationService fans a new question out as SMS to every user who opted
// in. Delivery is best effort; a failed publish is logged, not returned, so a
// broker outage never blocks posting a question.
type NotificationService interface {
	NotifyNewQuestion(ctx context.Context, question *models.Question, topics []string)
}

type notificationService struct {
	users     repository.UserRepository
	publisher SmsPublisher
	logger    *slog.Logger
}

func NewNotificationService(users repository.UserRepository, publisher SmsPublisher, logger *slog.Logger) NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{users: users, publisher: publisher, logger: logger}
}

func (s *notificationService) NotifyNewQuestion(ctx context.Context, question *models.Question, topics []string) {
	numbers, err := s.users.PhoneNumbersWantingSms(ctx)
	if err != nil {
		s.logger.Warn("loading sms recipients failed", "error", err)
		return
	}

	text := question.Text
	if len(text) > smsTextLimit {
		text = text[:smsTextLimit] + "..."
	}
	message := fmt.Sprintf("New question about %s: %s", strings.Join(topics, ", "), text)

	for _, number := range numbers {
		if err := s.publisher.PublishSms(ctx, number, message); err != nil {
			s.logger.Warn("sms publish failed",
				"phoneNumber", number,
				"questionId", question.ID,
				"error", err)
		}
	}
}

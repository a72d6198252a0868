package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

type NotificationUserReader interface {
	ListUsers() ([]models.User, error)
}

type NotificationMeasurementReader interface {
	ListByUser(userID uint) ([]models.Measurement, error)
}

type NotificationService struct {
	users                  NotificationUserReader
	measurements           NotificationMeasurementReader
	botToken               string
	chatID                 string
	enabled                bool
	periodReminderDays     int
	fertilityReminder      bool
	location               *time.Location
	client                 *http.Client
	mu                     sync.Mutex
	sentDailyNotifications map[string]time.Time
}

func NewNotificationService(users NotificationUserReader, measurements NotificationMeasurementReader, location *time.Location) *NotificationService {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	enabled := botToken != "" && chatID != ""

	periodReminderDays := 2
	if raw := os.Getenv("TELEGRAM_PERIOD_REMINDER_DAYS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			periodReminderDays = parsed
		}
	}

	fertilityReminder := true
	if raw := os.Getenv("TELEGRAM_NOTIFY_FERTILITY"); raw != "" {
		fertilityReminder = raw == "1" || raw == "true" || raw == "TRUE"
	}

	if location == nil {
		location = time.Local
	}

	return &NotificationService{
		users:              users,
		measurements:       measurements,
		botToken:           botToken,
		chatID:             chatID,
		enabled:            enabled,
		periodReminderDays: periodReminderDays,
		fertilityReminder:  fertilityReminder,
		location:           location,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		sentDailyNotifications: make(map[string]time.Time),
	}
}

func (service *NotificationService) Start(ctx context.Context) {
	if !service.enabled {
		return
	}

	ticker := time.NewTicker(6 * time.Hour)
	go func() {
		defer ticker.Stop()

		service.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.run(ctx)
			}
		}
	}()
}

func (service *NotificationService) run(ctx context.Context) {
	users, err := service.users.ListUsers()
	if err != nil {
		log.Printf("notifications: fetch users failed: %v", err)
		return
	}

	now := time.Now().In(service.location)
	today := DateAtLocation(now, service.location)

	for _, user := range users {
		measurements, err := service.measurements.ListByUser(user.ID)
		if err != nil {
			log.Printf("notifications: fetch measurements failed for user %d: %v", user.ID, err)
			continue
		}

		prediction, ok := PredictNextCycle(measurements)
		if !ok {
			continue
		}

		daysUntilPeriod := DaysBetween(today, prediction.NextPeriodStart)
		if daysUntilPeriod == service.periodReminderDays {
			key := fmt.Sprintf("period:%d:%s", user.ID, FormatDay(today))
			if service.shouldSend(key, today) {
				message := fmt.Sprintf("Selene reminder: your predicted period starts in %d day(s) on %s.",
					service.periodReminderDays,
					prediction.NextPeriodStart.Format("Jan 2"),
				)
				if err := service.sendTelegram(ctx, message); err != nil {
					log.Printf("notifications: send period reminder failed: %v", err)
				}
			}
		}

		if service.fertilityReminder && sameDay(today, prediction.FertileWindowStart) {
			key := fmt.Sprintf("fertility:%d:%s", user.ID, FormatDay(today))
			if service.shouldSend(key, today) {
				message := fmt.Sprintf("Selene reminder: your fertile window starts today (%s).",
					prediction.FertileWindowStart.Format("Jan 2"),
				)
				if err := service.sendTelegram(ctx, message); err != nil {
					log.Printf("notifications: send fertility reminder failed: %v", err)
				}
			}
		}
	}
}

func (service *NotificationService) shouldSend(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if sentOn, ok := service.sentDailyNotifications[key]; ok && sameDay(sentOn, today) {
		return false
	}

	service.sentDailyNotifications[key] = today
	if len(service.sentDailyNotifications) > 500 {
		service.sentDailyNotifications = make(map[string]time.Time)
	}
	return true
}

func (service *NotificationService) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", service.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", service.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

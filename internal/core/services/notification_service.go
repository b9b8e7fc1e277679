package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"educenter/internal/config"
)

// NotificationService delivers OTP codes via email (Brevo HTTP API) and
// SMS (Twilio REST API). Delivery runs detached from the request with its
// own bounded timeout; failures are logged, never returned to the caller.
type NotificationService struct {
	cfg    config.NotifyConfig
	client *http.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg config.NotifyConfig) *NotificationService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &NotificationService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// DispatchOTP sends the code to the account's email and, when a phone number
// is present, via SMS. Fire-and-forget: the caller is never blocked on
// provider latency or failure.
func (s *NotificationService) DispatchOTP(email, phone, code, purpose string) {
	subject := "EduCenter verification code"
	if purpose == OTPPurposeResetPassword {
		subject = "EduCenter password reset code"
	}
	body := fmt.Sprintf("Your verification code is %s. It is valid for 10 minutes.", code)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.client.Timeout)
		defer cancel()

		if err := s.sendEmail(ctx, email, subject, body); err != nil {
			log.Printf("otp email to %s failed: %v", email, err)
		}
		if phone != "" {
			if err := s.sendSMS(ctx, phone, body); err != nil {
				log.Printf("otp sms to %s failed: %v", phone, err)
			}
		}
	}()
}

// sendEmail delivers a transactional email through the Brevo v3 API
func (s *NotificationService) sendEmail(ctx context.Context, to, subject, content string) error {
	if s.cfg.EmailAPIKey == "" {
		log.Printf("email gateway disabled, skipping message to %s", to)
		return nil
	}

	payload := map[string]any{
		"sender":      map[string]string{"name": s.cfg.EmailName, "email": s.cfg.EmailSender},
		"to":          []map[string]string{{"email": to}},
		"subject":     subject,
		"textContent": content,
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.brevo.com/v3/smtp/email", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.cfg.EmailAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	return nil
}

// sendSMS delivers a text message through the Twilio REST API
func (s *NotificationService) sendSMS(ctx context.Context, to, message string) error {
	if s.cfg.SMSAccountSID == "" || s.cfg.SMSAuthToken == "" {
		log.Printf("sms gateway disabled, skipping message to %s", to)
		return nil
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.cfg.SMSAccountSID)

	data := url.Values{}
	data.Set("To", to)
	data.Set("From", s.cfg.SMSFrom)
	data.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.cfg.SMSAccountSID, s.cfg.SMSAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}
	return nil
}

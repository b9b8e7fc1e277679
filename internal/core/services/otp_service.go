package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"educenter/internal/config"
)

// OTP purposes. The purpose is part of the derivation key, so a code issued
// for one purpose never validates for another.
const (
	OTPPurposeEmail         = "email"
	OTPPurposeResetPassword = "reset_password"
)

var ErrOTPBadSubject = errors.New("otp identity and purpose must not be empty")

// OTPService derives short numeric codes from (identity, purpose, time window)
// and a shared secret. Codes are never stored; verification recomputes the
// expected code for the current and adjacent windows.
type OTPService struct {
	secret      []byte
	digits      int
	defaultStep time.Duration
	steps       map[string]time.Duration

	now func() time.Time
}

// NewOTPService creates a new OTP service from configuration
func NewOTPService(cfg config.OTPConfig) *OTPService {
	digits := cfg.Digits
	if digits < 4 || digits > 10 {
		digits = 5
	}
	step := time.Duration(cfg.StepMinutes) * time.Minute
	if step <= 0 {
		step = 10 * time.Minute
	}

	return &OTPService{
		secret:      []byte(cfg.Secret),
		digits:      digits,
		defaultStep: step,
		steps:       make(map[string]time.Duration),
		now:         time.Now,
	}
}

// SetPurposeStep overrides the time window for a single purpose
func (s *OTPService) SetPurposeStep(purpose string, step time.Duration) {
	if step > 0 {
		s.steps[purpose] = step
	}
}

// Generate produces the code for the current time window
func (s *OTPService) Generate(identity, purpose string) (string, error) {
	if identity == "" || purpose == "" {
		return "", ErrOTPBadSubject
	}

	counter := s.now().Unix() / int64(s.stepFor(purpose).Seconds())
	return s.code(identity, purpose, counter), nil
}

// Verify checks a candidate code against the current and both adjacent time
// windows (delivery latency and clock skew). A wrong or malformed code simply
// returns false.
func (s *OTPService) Verify(identity, purpose, candidate string) bool {
	if identity == "" || purpose == "" {
		return false
	}
	if len(candidate) != s.digits || !allDigits(candidate) {
		return false
	}

	base := s.now().Unix() / int64(s.stepFor(purpose).Seconds())
	for _, counter := range []int64{base - 1, base, base + 1} {
		if counter < 0 {
			continue
		}
		expected := s.code(identity, purpose, counter)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(candidate)) == 1 {
			return true
		}
	}

	return false
}

func (s *OTPService) stepFor(purpose string) time.Duration {
	if step, ok := s.steps[purpose]; ok {
		return step
	}
	return s.defaultStep
}

// code computes the HOTP value for the subject at the given counter.
// The subject key is derived from (identity, purpose) as an explicit tuple,
// not by string concatenation, so "ab"+"c" and "a"+"bc" key differently.
func (s *OTPService) code(identity, purpose string, counter int64) string {
	keyMac := hmac.New(sha256.New, s.secret)
	keyMac.Write([]byte(identity))
	keyMac.Write([]byte{0})
	keyMac.Write([]byte(purpose))
	subjectKey := keyMac.Sum(nil)

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(sha256.New, subjectKey)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// RFC 4226 dynamic truncation
	offset := sum[len(sum)-1] & 0x0f
	bin := (int(sum[offset])&0x7f)<<24 |
		(int(sum[offset+1])&0xff)<<16 |
		(int(sum[offset+2])&0xff)<<8 |
		(int(sum[offset+3]) & 0xff)

	mod := 1
	for i := 0; i < s.digits; i++ {
		mod *= 10
	}

	return fmt.Sprintf("%0*d", s.digits, bin%mod)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

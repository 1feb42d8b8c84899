package settings

import (
	"strings"
	"time"

	"consultation-booking/internal/pkg/errs"
)

const (
	MaxDescriptionLength = 2000
	MaxDurationMinutes   = 8 * 60
)

var (
	ErrInvalidFee         = errs.New("consultation fee must not be negative")
	ErrInvalidCurrency    = errs.New("consultation currency must be a 3-letter ISO code")
	ErrInvalidDuration    = errs.New("consultation duration must be between 1 and 480 minutes")
	ErrDescriptionTooLong = errs.New("consultation description exceeds maximum length")
)

// Settings is the singleton consultation configuration. IsActive gates whether
// consultations are offered at all.
type Settings struct {
	FeeCents        int64
	Currency        string
	DurationMinutes int
	IsActive        bool
	Description     string
	UpdatedAt       time.Time
}

func New(feeCents int64, currency string, durationMinutes int, isActive bool, description string, now time.Time) (Settings, error) {
	if feeCents < 0 {
		return Settings{}, ErrInvalidFee
	}
	c := strings.ToUpper(strings.TrimSpace(currency))
	if len(c) != 3 {
		return Settings{}, ErrInvalidCurrency
	}
	if durationMinutes <= 0 || durationMinutes > MaxDurationMinutes {
		return Settings{}, ErrInvalidDuration
	}
	d := strings.TrimSpace(description)
	if len(d) > MaxDescriptionLength {
		return Settings{}, ErrDescriptionTooLong
	}
	return Settings{
		FeeCents:        feeCents,
		Currency:        c,
		DurationMinutes: durationMinutes,
		IsActive:        isActive,
		Description:     d,
		UpdatedAt:       now,
	}, nil
}

// Default is used until an admin saves the settings for the first time.
func Default() Settings {
	return Settings{
		FeeCents:        0,
		Currency:        "USD",
		DurationMinutes: 60,
		IsActive:        false,
	}
}

func (s Settings) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

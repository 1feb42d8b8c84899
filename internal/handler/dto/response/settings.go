package response

import (
	"time"

	"consultation-booking/internal/usecase/queries"
)

type SettingsResponse struct {
	FeeCents        int64      `json:"feeCents"`
	Currency        string     `json:"currency"`
	DurationMinutes int        `json:"durationMinutes"`
	IsActive        bool       `json:"isActive"`
	Description     string     `json:"description"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

func FromSettingsView(v *queries.SettingsView) *SettingsResponse {
	return mustCopy[SettingsResponse](v)
}

package response

import (
	"time"

	"consultation-booking/internal/usecase/commands"
	"consultation-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID             uuid.UUID `json:"id"`
	DayOfWeek      int       `json:"dayOfWeek"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	IsActive       bool      `json:"isActive"`
	RecurrenceType string    `json:"recurrenceType"`
	StartDate      *string   `json:"startDate,omitempty"`
	EndDate        *string   `json:"endDate,omitempty"`
	SpecificDates  []string  `json:"specificDates,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromSlotViews(vs []*queries.SlotView) []*SlotResponse {
	out := make([]*SlotResponse, len(vs))
	for i, v := range vs {
		out[i] = mustCopy[SlotResponse](v)
	}
	return out
}

type AddSlotsResponse struct {
	Created   int `json:"created"`
	Requested int `json:"requested"`
}

func FromAddSlotsResult(r *commands.AddSlotsResult) *AddSlotsResponse {
	return &AddSlotsResponse{Created: r.Created, Requested: r.Requested}
}

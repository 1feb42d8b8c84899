package request

import (
	"consultation-booking/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type TimeWindow struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type AddSlotsRequest struct {
	RecurrenceType string       `json:"recurrenceType" binding:"required,oneof=weekly date_range specific_dates"`
	DaysOfWeek     []int        `json:"daysOfWeek,omitempty" binding:"omitempty,dive,min=0,max=6"`
	StartDate      *string      `json:"startDate,omitempty"`
	EndDate        *string      `json:"endDate,omitempty"`
	SpecificDates  []string     `json:"specificDates,omitempty" binding:"omitempty,max=366"`
	Windows        []TimeWindow `json:"windows" binding:"required,min=1,max=48,dive"`
}

func (r AddSlotsRequest) ToCommand() (commands.AddSlotsRequest, error) {
	var cmd commands.AddSlotsRequest
	if err := copier.Copy(&cmd, &r); err != nil {
		return commands.AddSlotsRequest{}, err
	}
	return cmd, nil
}

type SetSlotActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

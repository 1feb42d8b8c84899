package request

import (
	"consultation-booking/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

// UpdateSettingsRequest is a partial update; omitted fields keep their saved value.
type UpdateSettingsRequest struct {
	FeeCents        *int64  `json:"feeCents,omitempty" binding:"omitempty,min=0"`
	Currency        *string `json:"currency,omitempty" binding:"omitempty,len=3,alpha"`
	DurationMinutes *int    `json:"durationMinutes,omitempty" binding:"omitempty,min=1,max=480"`
	IsActive        *bool   `json:"isActive,omitempty"`
	Description     *string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

func (r UpdateSettingsRequest) ToCommand() (commands.UpdateSettingsRequest, error) {
	var cmd commands.UpdateSettingsRequest
	if err := copier.Copy(&cmd, &r); err != nil {
		return commands.UpdateSettingsRequest{}, err
	}
	return cmd, nil
}

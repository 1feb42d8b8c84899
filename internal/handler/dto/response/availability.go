package response

import (
	"consultation-booking/internal/usecase/queries"
)

type WindowResponse struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsBooked    bool   `json:"isBooked"`
	IsAvailable bool   `json:"isAvailable"`
}

type DayAvailabilityResponse struct {
	Date      string           `json:"date"`
	IsPast    bool             `json:"isPast"`
	IsOffered bool             `json:"isOffered"`
	Windows   []WindowResponse `json:"windows"`
}

func FromDayAvailabilityView(v *queries.DayAvailabilityView) *DayAvailabilityResponse {
	resp := mustCopy[DayAvailabilityResponse](v)
	if resp.Windows == nil {
		resp.Windows = []WindowResponse{}
	}
	return resp
}

type OpenDatesResponse struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Dates []string `json:"dates"`
}

func NewOpenDatesResponse(from, to string, dates []string) *OpenDatesResponse {
	if dates == nil {
		dates = []string{}
	}
	return &OpenDatesResponse{From: from, To: to, Dates: dates}
}

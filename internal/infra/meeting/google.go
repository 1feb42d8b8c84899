package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/usecase/shared"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	calendarBaseURL = "https://www.googleapis.com/calendar/v3"
	calendarScope   = "https://www.googleapis.com/auth/calendar.events"
	meetSolution    = "hangoutsMeet"
)

// GoogleCalendarCreator creates a calendar event with a Google Meet conference and
// returns its join link.
type GoogleCalendarCreator struct {
	client     *http.Client
	baseURL    string
	calendarID string
	timeout    time.Duration
}

func NewGoogleCalendarCreator(cfg config.MeetingConfig) *GoogleCalendarCreator {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendarScope},
	}
	ctx := context.Background()
	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	return newGoogleCalendarCreator(oauth2.NewClient(ctx, ts), calendarBaseURL, cfg.CalendarID, cfg.Timeout)
}

func newGoogleCalendarCreator(client *http.Client, baseURL, calendarID string, timeout time.Duration) *GoogleCalendarCreator {
	if calendarID == "" {
		calendarID = "primary"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleCalendarCreator{client: client, baseURL: baseURL, calendarID: calendarID, timeout: timeout}
}

func (g *GoogleCalendarCreator) Enabled() bool { return true }

type eventTime struct {
	DateTime string `json:"dateTime"`
}

type conferenceSolutionKey struct {
	Type string `json:"type"`
}

type createRequest struct {
	RequestID             string                `json:"requestId"`
	ConferenceSolutionKey conferenceSolutionKey `json:"conferenceSolutionKey"`
}

type conferenceData struct {
	CreateRequest *createRequest `json:"createRequest,omitempty"`
	EntryPoints   []entryPoint   `json:"entryPoints,omitempty"`
}

type entryPoint struct {
	EntryPointType string `json:"entryPointType"`
	URI            string `json:"uri"`
}

type eventRequest struct {
	Summary        string         `json:"summary"`
	Description    string         `json:"description,omitempty"`
	Start          eventTime      `json:"start"`
	End            eventTime      `json:"end"`
	ConferenceData conferenceData `json:"conferenceData"`
}

type eventResponse struct {
	ID             string         `json:"id"`
	HangoutLink    string         `json:"hangoutLink"`
	ConferenceData conferenceData `json:"conferenceData"`
}

func (g *GoogleCalendarCreator) CreateMeeting(ctx context.Context, req shared.MeetingRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := json.Marshal(eventRequest{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       eventTime{DateTime: req.Start.Format(time.RFC3339)},
		End:         eventTime{DateTime: req.End.Format(time.RFC3339)},
		ConferenceData: conferenceData{
			CreateRequest: &createRequest{
				RequestID:             req.BookingID.String(),
				ConferenceSolutionKey: conferenceSolutionKey{Type: meetSolution},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode calendar event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events?conferenceDataVersion=1", g.baseURL, url.PathEscape(g.calendarID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build calendar request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("create calendar event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("create calendar event: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var event eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return "", fmt.Errorf("decode calendar event: %w", err)
	}
	if link := event.meetLink(); link != "" {
		return link, nil
	}
	return "", fmt.Errorf("calendar event %s has no conference link", event.ID)
}

func (e eventResponse) meetLink() string {
	if e.HangoutLink != "" {
		return e.HangoutLink
	}
	for _, ep := range e.ConferenceData.EntryPoints {
		if ep.EntryPointType == "video" && ep.URI != "" {
			return ep.URI
		}
	}
	return ""
}

// Disabled is wired when automatic creation is off; confirmations then need a manual link.
type Disabled struct{}

func NewDisabled() *Disabled { return &Disabled{} }

func (Disabled) Enabled() bool { return false }

func (Disabled) CreateMeeting(context.Context, shared.MeetingRequest) (string, error) {
	return "", shared.ErrMeetingCreationDisabled
}

// New picks the creator matching cfg.
func New(cfg config.MeetingConfig) shared.MeetingCreator {
	if !cfg.AutoCreate || cfg.RefreshToken == "" {
		return NewDisabled()
	}
	return NewGoogleCalendarCreator(cfg)
}

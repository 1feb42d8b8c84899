//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/user"
	"consultation-booking/internal/handler/api"
	resdto "consultation-booking/internal/handler/dto/response"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/ptr"
	"consultation-booking/internal/usecase/commands"
	"consultation-booking/internal/usecase/queries"
	"consultation-booking/tests/common/builder"
	"consultation-booking/tests/common/httptest"
	commandsmock "consultation-booking/tests/mock/commands"
	queriesmock "consultation-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminBookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.AdminBookingHandler
}

func (s *AdminBookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewAdminBookingHandler(s.mockCommands, s.mockQueries)

	admin := s.router.Group("/api/admin", fakeAuth(uuid.New(), user.RoleAdmin))
	admin.GET("/bookings", s.handler.List)
	admin.POST("/bookings/:id/confirm", s.handler.Confirm)
	admin.POST("/bookings/:id/reject", s.handler.Reject)
	admin.POST("/bookings/:id/cancel", s.handler.Cancel)
	admin.POST("/bookings/:id/complete", s.handler.Complete)
	admin.POST("/bookings/:id/payment-failed", s.handler.MarkPaymentFailed)
}

func (s *AdminBookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminBookingHandlerTestSuite))
}

// ================================================================================
// TestList
// ================================================================================

func (s *AdminBookingHandlerTestSuite) TestList() {
	s.Run("success: forwards filters, cursor and limit", func() {
		playerID := uuid.New()
		next := "djE6MTcwNzEyMzYwMDAwMDAwMC0x"
		page := &queries.BookingPage{
			Bookings:   []*queries.BookingView{builder.NewBookingBuilder().WithPlayer(playerID).BuildView()},
			NextCursor: &next,
		}
		wantFilter := queries.AdminBookingFilter{Status: "pending,confirmed", From: "2024-02-01", To: "2024-02-29", PlayerID: &playerID}

		s.mockQueries.EXPECT().
			ListAll(gomock.Any(), gomock.Cond(func(f queries.AdminBookingFilter) bool {
				return cmp.Equal(wantFilter, f)
			}), &queries.Cursor{After: "abc"}, 10).
			Return(page, nil).Times(1)

		url := "/api/admin/bookings?status=pending,confirmed&from=2024-02-01&to=2024-02-29&playerId=" + playerID.String() + "&limit=10&after=abc"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BookingPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Bookings, 1)
		s.Equal(&next, body.NextCursor)
	})

	s.Run("success: defaults and clamps the limit", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any(), queries.AdminBookingFilter{}, (*queries.Cursor)(nil), queries.DefaultListLimit).
			Return(&queries.BookingPage{}, nil).Times(1)
		s.mockQueries.EXPECT().ListAll(gomock.Any(), gomock.Any(), gomock.Any(), queries.ValidateLimit(100000)).
			Return(&queries.BookingPage{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/bookings", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/bookings?limit=100000", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on malformed playerId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/bookings?playerId=42", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "playerId")
	})

	s.Run("error: 400 on invalid cursor", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("invalid cursor"), errs.ErrValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/bookings?after=not-a-cursor", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestConfirm
// ================================================================================

func (s *AdminBookingHandlerTestSuite) TestConfirm() {
	id := uuid.New()
	url := "/api/admin/bookings/" + id.String() + "/confirm"
	confirmed := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ID = id
		b.MeetingLink = ptr.To("https://meet.google.com/abc-defg-hij")
	}).WithStatus(booking.StatusConfirmed).BuildView()

	s.Run("success: with an explicit meeting link", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id, commands.ConfirmBookingRequest{
			MeetingLink: ptr.To("https://meet.google.com/abc-defg-hij"),
			AdminNotes:  ptr.To("paid in full"),
		}).Return(confirmed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{
			"meetingLink": "https://meet.google.com/abc-defg-hij",
			"adminNotes":  "paid in full",
		}, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
		s.Equal(confirmed.MeetingLink, body.MeetingLink)
	})

	s.Run("success: empty body lets the meeting creator supply the link", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id, commands.ConfirmBookingRequest{}).Return(confirmed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 when meetingLink is not a URL", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"meetingLink": "call me"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 409 when not pending", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id, gomock.Any()).
			Return(nil, errs.Mark(errs.New("cancelled -> confirmed"), errs.ErrInvalidTransition)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "does not allow")
	})

	s.Run("error: 502 when no link can be created", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id, gomock.Any()).
			Return(nil, errs.Mark(errs.New("meeting api down"), errs.ErrCollaboratorFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Upstream")
	})
}

// ================================================================================
// TestNotesActions
// ================================================================================

func (s *AdminBookingHandlerTestSuite) TestNotesActions() {
	id := uuid.New()
	cancelled := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.ID = id }).
		WithStatus(booking.StatusCancelled).BuildView()

	testCases := []struct {
		name   string
		path   string
		expect func(notes any) *gomock.Call
	}{
		{name: "reject", path: "/reject", expect: func(notes any) *gomock.Call {
			return s.mockCommands.EXPECT().Reject(gomock.Any(), id, notes)
		}},
		{name: "cancel", path: "/cancel", expect: func(notes any) *gomock.Call {
			return s.mockCommands.EXPECT().CancelByAdmin(gomock.Any(), id, notes)
		}},
		{name: "payment failed", path: "/payment-failed", expect: func(notes any) *gomock.Call {
			return s.mockCommands.EXPECT().MarkPaymentFailed(gomock.Any(), id, notes)
		}},
	}

	for _, tc := range testCases {
		url := "/api/admin/bookings/" + id.String() + tc.path

		s.Run(tc.name+": with notes", func() {
			tc.expect(ptr.To("no transfer received")).Return(cancelled, nil).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"adminNotes": "no transfer received"}, "bearer-token")
			s.Equal(http.StatusOK, rec.Code, rec.Body.String())
		})

		s.Run(tc.name+": without body", func() {
			tc.expect(nil).Return(cancelled, nil).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
			s.Equal(http.StatusOK, rec.Code, rec.Body.String())
		})

		s.Run(tc.name+": notes too long", func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"adminNotes": strings.Repeat("x", 1001)}, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})

		s.Run(tc.name+": terminal booking", func() {
			tc.expect(gomock.Any()).Return(nil, errs.Mark(errs.New("completed"), errs.ErrInvalidTransition)).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
		})
	}
}

func (s *AdminBookingHandlerTestSuite) TestComplete() {
	id := uuid.New()
	completed := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.ID = id }).
		WithStatus(booking.StatusCompleted).BuildView()

	s.mockCommands.EXPECT().Complete(gomock.Any(), id).Return(completed, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/bookings/"+id.String()+"/complete", nil, "bearer-token")

	var body resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal("completed", body.Status)
	s.False(body.CanCancel)
}

//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"consultation-booking/internal/domain/user"
	"consultation-booking/internal/handler/api"
	resdto "consultation-booking/internal/handler/dto/response"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/usecase/queries"
	"consultation-booking/tests/common/httptest"
	queriesmock "consultation-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	s.router.Use(fakeAuth(uuid.New(), user.RolePlayer))
	s.router.GET("/api/availability", s.handler.GetDay)
	s.router.GET("/api/availability/calendar", s.handler.ListOpenDates)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGetDay() {
	s.Run("success: windows with booked and available flags", func() {
		view := &queries.DayAvailabilityView{
			Date:      "2024-02-05",
			IsOffered: true,
			Windows: []queries.WindowView{
				{StartTime: "09:00", EndTime: "10:00", IsBooked: true},
				{StartTime: "10:00", EndTime: "11:00", IsAvailable: true},
			},
		}
		s.mockQueries.EXPECT().GetDay(gomock.Any(), "2024-02-05").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability?date=2024-02-05", nil, "bearer-token")

		var body resdto.DayAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.DayAvailabilityResponse{
			Date:      "2024-02-05",
			IsOffered: true,
			Windows: []resdto.WindowResponse{
				{StartTime: "09:00", EndTime: "10:00", IsBooked: true},
				{StartTime: "10:00", EndTime: "11:00", IsAvailable: true},
			},
		}, body)
	})

	s.Run("success: a day with no slots renders an empty list", func() {
		s.mockQueries.EXPECT().GetDay(gomock.Any(), "2024-02-04").
			Return(&queries.DayAvailabilityView{Date: "2024-02-04"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability?date=2024-02-04", nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"windows":[]`)
	})

	s.Run("error: date is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "date is required")
	})

	s.Run("error: malformed date", func() {
		s.mockQueries.EXPECT().GetDay(gomock.Any(), "05/02/2024").
			Return(nil, errs.Mark(errs.New("invalid date"), errs.ErrValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability?date=05/02/2024", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability?date=2024-02-05", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *AvailabilityHandlerTestSuite) TestListOpenDates() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().ListOpenDates(gomock.Any(), "2024-02-01", "2024-02-29").
			Return([]string{"2024-02-05", "2024-02-07"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/calendar?from=2024-02-01&to=2024-02-29", nil, "bearer-token")

		var body resdto.OpenDatesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]string{"2024-02-05", "2024-02-07"}, body.Dates)
		s.Equal("2024-02-01", body.From)
	})

	s.Run("error: to is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/calendar?from=2024-02-01", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "from and to are required")
	})

	s.Run("error: range too wide", func() {
		s.mockQueries.EXPECT().ListOpenDates(gomock.Any(), "2024-01-01", "2025-12-31").
			Return(nil, errs.Mark(errs.New("range exceeds limit"), errs.ErrValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/calendar?from=2024-01-01&to=2025-12-31", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

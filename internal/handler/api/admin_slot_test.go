//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"consultation-booking/internal/domain/user"
	"consultation-booking/internal/handler/api"
	resdto "consultation-booking/internal/handler/dto/response"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/ptr"
	"consultation-booking/internal/usecase/commands"
	"consultation-booking/internal/usecase/queries"
	"consultation-booking/tests/common/httptest"
	"consultation-booking/tests/common/testutil"
	commandsmock "consultation-booking/tests/mock/commands"
	queriesmock "consultation-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminSlotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSlotCommands
	mockQueries  *queriesmock.MockSlotQueries
	handler      *api.AdminSlotHandler
}

func (s *AdminSlotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSlotCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.handler = api.NewAdminSlotHandler(s.mockCommands, s.mockQueries)

	admin := s.router.Group("/api/admin", fakeAuth(uuid.New(), user.RoleAdmin))
	admin.GET("/slots", s.handler.List)
	admin.POST("/slots", s.handler.Add)
	admin.PATCH("/slots/:id", s.handler.SetActive)
	admin.DELETE("/slots/:id", s.handler.Delete)
}

func (s *AdminSlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminSlotHandlerTestSuite))
}

func (s *AdminSlotHandlerTestSuite) TestList() {
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	views := []*queries.SlotView{
		{ID: uuid.New(), DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", IsActive: true, RecurrenceType: "weekly", CreatedAt: created, UpdatedAt: created},
		{ID: uuid.New(), DayOfWeek: 3, StartTime: "14:00", EndTime: "15:00", IsActive: false, RecurrenceType: "date_range",
			StartDate: ptr.To("2024-02-01"), EndDate: ptr.To("2024-02-29"), CreatedAt: created, UpdatedAt: created},
	}
	s.mockQueries.EXPECT().ListAll(gomock.Any()).Return(views, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/slots", nil, "bearer-token")

	var body []resdto.SlotResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 2)
	s.Equal(views[1].ID, body[1].ID)
	s.False(body[1].IsActive)
	s.Equal("date_range", body[1].RecurrenceType)
	s.Equal(ptr.To("2024-02-29"), body[1].EndDate)
}

func (s *AdminSlotHandlerTestSuite) TestAdd() {
	url := "/api/admin/slots"
	reqBody := map[string]any{
		"recurrenceType": "weekly",
		"daysOfWeek":     []int{1, 3},
		"windows": []map[string]string{
			{"startTime": "09:00", "endTime": "10:00"},
			{"startTime": "10:00", "endTime": "11:00"},
		},
	}

	s.Run("success: 201 with counts", func() {
		want := commands.AddSlotsRequest{
			RecurrenceType: "weekly",
			DaysOfWeek:     []int{1, 3},
			Windows: []commands.TimeWindowInput{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "10:00", EndTime: "11:00"},
			},
		}
		s.mockCommands.EXPECT().
			AddSlots(gomock.Any(), gomock.Cond(func(got commands.AddSlotsRequest) bool {
				return cmp.Equal(want, got, cmpopts.EquateEmpty())
			})).
			Return(&commands.AddSlotsResult{Requested: 4, Created: 4}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.AddSlotsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(resdto.AddSlotsResponse{Created: 4, Requested: 4}, body)
	})

	validation := []struct {
		name   string
		mutate testutil.Mutation
	}{
		{name: "missing recurrenceType", mutate: testutil.Omit("recurrenceType")},
		{name: "unknown recurrenceType", mutate: testutil.Field("recurrenceType", "monthly")},
		{name: "day out of range", mutate: testutil.Field("daysOfWeek", []int{7})},
		{name: "no windows", mutate: testutil.Field("windows", []map[string]string{})},
		{name: "window without end", mutate: testutil.Field("windows", []map[string]string{{"startTime": "09:00"}})},
	}
	for _, tc := range validation {
		s.Run("validation: "+tc.name, func() {
			requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})
	}

	s.Run("error: rule rejected by the use case", func() {
		s.mockCommands.EXPECT().AddSlots(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("end before start"), errs.ErrValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *AdminSlotHandlerTestSuite) TestSetActive() {
	id := uuid.New()
	url := "/api/admin/slots/" + id.String()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().SetActive(gomock.Any(), id, false).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"isActive": false}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: isActive is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 404 for unknown slot", func() {
		s.mockCommands.EXPECT().SetActive(gomock.Any(), id, true).
			Return(errs.Mark(errs.New("slot not found"), errs.ErrNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"isActive": true}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

func (s *AdminSlotHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/admin/slots/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/admin/slots/123", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

//go:build e2e

package booking_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"consultation-booking/internal/handler/dto/request"
	"consultation-booking/internal/handler/dto/response"
	"consultation-booking/internal/pkg/ptr"
	"consultation-booking/tests/common/authtest"
	"consultation-booking/tests/common/dbtest"
	"consultation-booking/tests/common/httptest"
	"consultation-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL     = "/api/bookings"
	availabilityURL = "/api/availability"
	adminBookingURL = "/api/admin/bookings/"
)

type BookingSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *BookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// nextMonday is at least three days out so the cancellation threshold never interferes.
func nextMonday() string {
	d := time.Now().UTC().AddDate(0, 0, 3)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func createRequest(date string) request.CreateBookingRequest {
	return request.CreateBookingRequest{
		Date:             date,
		StartTime:        "09:00",
		PaymentMethod:    "mobile_money",
		PaymentReference: ptr.To("MM-55821"),
	}
}

// =============================================================================
// TestBookingLifecycle
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("book, conflict, confirm and read back", func() {
		t := s.T()
		date := nextMonday()
		dbtest.CreateWeeklySlot(t, s.DB, 1, "09:00", "10:00")
		playerA, tokenA := s.jwt.NewPlayer(t)
		_, tokenB := s.jwt.NewPlayer(t)
		_, adminToken := s.jwt.NewAdmin(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL+"?date="+date, nil, tokenA)
		var day response.DayAvailabilityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &day)
		require.True(t, day.IsOffered)
		require.Equal(t, []response.WindowResponse{{StartTime: "09:00", EndTime: "10:00", IsAvailable: true}}, day.Windows)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, createRequest(date), tokenA)
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		want := response.BookingResponse{
			PlayerID:         playerA,
			BookingDate:      date,
			StartTime:        "09:00",
			EndTime:          "10:00",
			FeeCents:         5000,
			FeeCurrency:      "USD",
			PaymentMethod:    "mobile_money",
			PaymentReference: ptr.To("MM-55821"),
			Status:           "pending",
			PaymentStatus:    "pending",
			IsUpcoming:       true,
			CanCancel:        true,
		}
		opts := cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "Reference", "StartsAt", "CreatedAt", "UpdatedAt")
		require.Empty(t, cmp.Diff(want, created, opts))
		require.NotEmpty(t, created.Reference)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, createRequest(date), tokenB)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Slot already booked")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, tokenB)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, adminBookingURL+created.ID.String()+"/confirm",
			request.ConfirmBookingRequest{MeetingLink: ptr.To("https://meet.google.com/abc-defg-hij")}, adminToken)
		var confirmed response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &confirmed)
		require.Equal(t, "confirmed", confirmed.Status)
		require.Equal(t, "completed", confirmed.PaymentStatus)
		require.NotNil(t, confirmed.ConfirmedAt)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL+"?date="+date, nil, tokenB)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &day)
		require.True(t, day.Windows[0].IsBooked)
		require.False(t, day.Windows[0].IsAvailable)
	})

	s.Run("cancelled booking frees the window", func() {
		t := s.T()
		date := nextMonday()
		dbtest.CreateWeeklySlot(t, s.DB, 1, "09:00", "10:00")
		_, tokenA := s.jwt.NewPlayer(t)
		_, tokenB := s.jwt.NewPlayer(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, createRequest(date), tokenA)
		var first response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &first)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+first.ID.String()+"/cancel", nil, tokenA)
		var cancelled response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)
		require.Equal(t, ptr.To("player"), cancelled.CancelledBy)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, createRequest(date), tokenB)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)

		require.Equal(t, 1, dbtest.CountBookings(t, s.DB, date, "09:00", "pending", "confirmed"))
		require.Equal(t, 2, dbtest.CountBookings(t, s.DB, date, "09:00"))
	})

	s.Run("window that is not offered is rejected", func() {
		t := s.T()
		dbtest.CreateWeeklySlot(t, s.DB, 1, "09:00", "10:00")
		_, token := s.jwt.NewPlayer(t)

		req := createRequest(nextMonday())
		req.StartTime = "15:00"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
	})

	s.Run("disabled consultations reject bookings", func() {
		t := s.T()
		dbtest.CreateWeeklySlot(t, s.DB, 1, "09:00", "10:00")
		dbtest.SeedSettings(t, s.DB, 5000, "USD", 60, false)
		_, token := s.jwt.NewPlayer(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, createRequest(nextMonday()), token)
		httptest.AssertErrorResponse(t, w, http.StatusServiceUnavailable, "")
	})
}

// =============================================================================
// TestIdempotentCreate
// =============================================================================

func (s *BookingSuite) TestIdempotentCreate() {
	s.Run("same key replays the first booking", func() {
		t := s.T()
		date := nextMonday()
		dbtest.CreateWeeklySlot(t, s.DB, 1, "09:00", "10:00")
		_, token := s.jwt.NewPlayer(t)
		key := uuid.NewString()

		send := func(body request.CreateBookingRequest, replayed string) response.BookingResponse {
			w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, body, token,
				map[string]string{"Idempotency-Key": key})
			var b response.BookingResponse
			httptest.AssertSuccessResponse(t, w, http.StatusCreated, &b)
			httptest.AssertHeaders(t, w, map[string]string{"Idempotent-Replayed": replayed})
			return b
		}

		first := send(createRequest(date), "")
		second := send(createRequest(date), "true")
		require.Equal(t, first.ID, second.ID)
		require.Equal(t, first.Reference, second.Reference)
		require.Equal(t, 1, dbtest.CountBookings(t, s.DB, date, "09:00"))

		changed := createRequest(date)
		changed.PaymentMethod = "card"
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, changed, token,
			map[string]string{"Idempotency-Key": key})
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "different request")
	})
}

// =============================================================================
// TestConcurrentCreate
// =============================================================================

func (s *BookingSuite) TestConcurrentCreate() {
	s.Run("exactly one of many simultaneous requests wins", func() {
		t := s.T()
		date := nextMonday()
		dbtest.CreateWeeklySlot(t, s.DB, 1, "09:00", "10:00")

		const players = 12
		tokens := make([]string, players)
		for i := range tokens {
			_, tokens[i] = s.jwt.NewPlayer(t)
		}

		codes := make([]int, players)
		var wg sync.WaitGroup
		for i := range players {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, createRequest(date), tokens[i])
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		created := 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
			default:
				t.Fatalf("unexpected status %d", code)
			}
		}
		require.Equal(t, 1, created)
		require.Equal(t, 1, dbtest.CountBookings(t, s.DB, date, "09:00"))
	})

	s.Run("partial unique index rejects a second live row", func() {
		t := s.T()
		ctx := context.Background()
		date := nextMonday()

		insert := `INSERT INTO bookings (id, reference, player_id, booking_date, start_time, end_time,
		               fee_amount_cents, fee_currency, payment_method, status)
		           VALUES ($1, $2, $3, $4, '09:00', '10:00', 5000, 'USD', 'card', $5)`

		_, err := s.DB.Exec(ctx, insert, uuid.New(), "CB-E2E00001", uuid.New(), date, "cancelled")
		require.NoError(t, err)
		_, err = s.DB.Exec(ctx, insert, uuid.New(), "CB-E2E00002", uuid.New(), date, "pending")
		require.NoError(t, err)

		_, err = s.DB.Exec(ctx, insert, uuid.New(), "CB-E2E00003", uuid.New(), date, "pending")
		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr), "got %v", err)
		require.Equal(t, "23505", pgErr.Code)
		require.Equal(t, "bookings_live_slot_uniq", pgErr.ConstraintName)
	})
}

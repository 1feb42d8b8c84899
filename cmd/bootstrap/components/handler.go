package components

import (
	"consultation-booking/internal/handler"
	"consultation-booking/internal/handler/api"
	"consultation-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewConsultationHandler,
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewAdminSlotHandler,
		api.NewAdminBookingHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	consultation *api.ConsultationHandler,
	availability *api.AvailabilityHandler,
	bookings *api.BookingHandler,
	adminSlots *api.AdminSlotHandler,
	adminBookings *api.AdminBookingHandler,
) handler.Handlers {
	return handler.Handlers{
		Consultation: consultation,
		Availability: availability,
		Bookings:     bookings,
		AdminSlots:   adminSlots,
		AdminBooking: adminBookings,
	}
}

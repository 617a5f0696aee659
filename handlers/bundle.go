// File: tutorhive/handlers/bundle.go
package handlers

import (
	"tutorhive/services/booking"
	"tutorhive/services/tutor"
)

// HandlerBundle groups all endpoint handlers into one struct so routes can
// be registered from a single wiring point.
type HandlerBundle struct {
	Tutor   *TutorHandler
	Booking *BookingHandler
}

// NewHandlerBundle builds the handler set over the given services.
func NewHandlerBundle(tutorSvc tutor.TutorService, bookingSvc booking.BookingService) *HandlerBundle {
	return &HandlerBundle{
		Tutor:   &TutorHandler{Service: tutorSvc},
		Booking: &BookingHandler{Service: bookingSvc},
	}
}

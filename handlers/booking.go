package handlers

import (
	"net/http"
	"strconv"
	"time"

	"tutorhive/models"
	"tutorhive/services/booking"
	"tutorhive/services/schedule"
	"tutorhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves slot discovery and session booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// AvailableSlotsHandler returns the bookable start times for one tutor,
// date and duration. Duration 0 returns the unfiltered candidate starts.
func (h *BookingHandler) AvailableSlotsHandler(c *gin.Context) {
	tutorID := c.Param("id")
	date := c.Query("date")
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	duration := 0.0
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a non-negative number of hours"})
			return
		}
		duration = parsed
	}

	result, err := h.Service.AvailableSlots(c.Request.Context(), tutorID, date, duration)
	if err != nil {
		utils.GetLogger().Error("failed to compute available slots",
			zap.String("tutorID", tutorID), zap.String("date", date), zap.Error(err))
		respondScheduleError(c, err, "failed to compute available slots")
		return
	}
	c.JSON(http.StatusOK, result)
}

// MaxDurationHandler bounds the duration selector for a chosen start time.
func (h *BookingHandler) MaxDurationHandler(c *gin.Context) {
	tutorID := c.Param("id")
	date := c.Query("date")
	startTime := c.Query("start")
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	max, options, err := h.Service.MaxDuration(c.Request.Context(), tutorID, date, startTime)
	if err != nil {
		respondScheduleError(c, err, "failed to compute max duration")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"max_minutes":      max,
		"duration_options": options,
	})
}

// SubmitBookingHandler books a session for the authenticated student. The
// candidate is re-validated against a fresh availability snapshot before it
// persists.
func (h *BookingHandler) SubmitBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	studentID, ok := authedID(c, "studentID")
	if !ok {
		return
	}

	var candidate models.BookingCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	booked, err := h.Service.SubmitBooking(c.Request.Context(), studentID, candidate)
	if err != nil {
		logger.Warn("booking rejected",
			zap.String("studentID", studentID), zap.String("tutorID", candidate.TutorID), zap.Error(err))
		respondScheduleError(c, err, "failed to submit booking")
		return
	}
	c.JSON(http.StatusCreated, booked)
}

// CancelBookingHandler cancels a booking on behalf of either party.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	requesterID, ok := authedID(c, "subjectID")
	if !ok {
		return
	}
	bookingID := c.Param("bookingID")

	if err := h.Service.CancelBooking(c.Request.Context(), bookingID, requesterID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to cancel booking", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// UpdateBookingStatusHandler moves a booking through its lifecycle.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	if _, ok := authedID(c, "tutorID"); !ok {
		return
	}
	bookingID := c.Param("bookingID")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Service.UpdateStatus(c.Request.Context(), bookingID, req.Status); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to update booking", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking updated"})
}

// ListStudentBookingsHandler lists the authenticated student's bookings.
func (h *BookingHandler) ListStudentBookingsHandler(c *gin.Context) {
	studentID, ok := authedID(c, "studentID")
	if !ok {
		return
	}

	bookings, err := h.Service.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListTutorBookingsHandler lists the authenticated tutor's bookings.
func (h *BookingHandler) ListTutorBookingsHandler(c *gin.Context) {
	tutorID, ok := authedID(c, "tutorID")
	if !ok {
		return
	}

	bookings, err := h.Service.ListForTutor(c.Request.Context(), tutorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

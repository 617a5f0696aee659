package handlers

import (
	"net/http"

	"tutorhive/services/schedule"

	"github.com/gin-gonic/gin"
)

// respondScheduleError maps the scheduling error taxonomy to HTTP statuses.
// Unknown errors fall through to a 500 with the given fallback message.
func respondScheduleError(c *gin.Context, err error, fallback string) {
	switch schedule.ErrCode(err) {
	case schedule.CodeInvalidTimeOrder:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time order", "code": schedule.CodeInvalidTimeOrder, "message": err.Error()})
	case schedule.CodeOverlapConflict:
		c.JSON(http.StatusConflict, gin.H{"error": "time conflict", "code": schedule.CodeOverlapConflict, "message": err.Error()})
	case schedule.CodeNoSlotAvailable:
		c.JSON(http.StatusConflict, gin.H{"error": "no slot available", "code": schedule.CodeNoSlotAvailable, "message": err.Error()})
	case schedule.CodeOutOfRangeDuration:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "duration out of range", "code": schedule.CodeOutOfRangeDuration, "message": err.Error()})
	case schedule.CodeNoAvailabilityForDate:
		c.JSON(http.StatusNotFound, gin.H{"error": "no availability for date", "code": schedule.CodeNoAvailabilityForDate, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "message": err.Error()})
	}
}

// authedID pulls the authenticated subject ID placed in the context by the
// JWT middleware under key.
func authedID(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid subject ID in context"})
		return "", false
	}
	return id, true
}

package handlers

import (
	"net/http"

	"tutorhive/models"
	"tutorhive/services/schedule"
	"tutorhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetAvailabilityHandler returns a tutor's weekly availability grouped by
// weekday, blocks sorted by start time.
func (h *TutorHandler) GetAvailabilityHandler(c *gin.Context) {
	tutorID := c.Param("id")

	weekly, err := h.Service.GetAvailability(c.Request.Context(), tutorID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tutor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": weekly.Entries()})
}

// SetAvailabilityHandler replaces the authenticated tutor's weekly
// availability in one write. The payload is validated as a whole before
// anything persists.
func (h *TutorHandler) SetAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()

	tutorID, ok := authedID(c, "tutorID")
	if !ok {
		return
	}

	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	weekly, err := h.Service.SetAvailability(c.Request.Context(), tutorID, req.Entries)
	if err != nil {
		if schedule.ErrCode(err) != "" {
			respondScheduleError(c, err, "failed to set availability")
			return
		}
		logger.Error("failed to set availability", zap.String("tutorID", tutorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set availability", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": weekly.Entries()})
}

// AddWeekdayHandler enables a weekday with the default block.
func (h *TutorHandler) AddWeekdayHandler(c *gin.Context) {
	tutorID, ok := authedID(c, "tutorID")
	if !ok {
		return
	}
	day := c.Param("day")

	weekly, err := h.Service.AddWeekday(c.Request.Context(), tutorID, day)
	if err != nil {
		respondScheduleError(c, err, "failed to add weekday")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": weekly.Entries()})
}

// RemoveWeekdayHandler disables a weekday and discards its blocks.
func (h *TutorHandler) RemoveWeekdayHandler(c *gin.Context) {
	tutorID, ok := authedID(c, "tutorID")
	if !ok {
		return
	}
	day := c.Param("day")

	weekly, err := h.Service.RemoveWeekday(c.Request.Context(), tutorID, day)
	if err != nil {
		respondScheduleError(c, err, "failed to remove weekday")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": weekly.Entries()})
}

// AddTimeBlockHandler places a new block of the requested length on a
// weekday, gap-first.
func (h *TutorHandler) AddTimeBlockHandler(c *gin.Context) {
	tutorID, ok := authedID(c, "tutorID")
	if !ok {
		return
	}
	day := c.Param("day")

	var req struct {
		DurationMinutes int `json:"duration_minutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	weekly, err := h.Service.AddTimeBlock(c.Request.Context(), tutorID, day, req.DurationMinutes)
	if err != nil {
		respondScheduleError(c, err, "failed to add time block")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": weekly.Entries()})
}

// UpdateTimeBlockHandler edits one boundary of an existing block.
// Incomplete clock fragments are accepted without error and leave the
// stored schedule untouched, so clients can send keystrokes as they happen.
func (h *TutorHandler) UpdateTimeBlockHandler(c *gin.Context) {
	tutorID, ok := authedID(c, "tutorID")
	if !ok {
		return
	}
	day := c.Param("day")

	var req struct {
		Index int    `json:"index"`
		Field string `json:"field" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}
	if req.Field != schedule.FieldStart && req.Field != schedule.FieldEnd {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field must be \"start\" or \"end\""})
		return
	}

	weekly, err := h.Service.UpdateTimeBlock(c.Request.Context(), tutorID, day, req.Index, req.Field, req.Value)
	if err != nil {
		respondScheduleError(c, err, "failed to update time block")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": weekly.Entries()})
}

// RemoveTimeBlockHandler deletes a block; removing the last block on a
// weekday removes the weekday itself.
func (h *TutorHandler) RemoveTimeBlockHandler(c *gin.Context) {
	tutorID, ok := authedID(c, "tutorID")
	if !ok {
		return
	}
	day := c.Param("day")

	var req struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	weekly, err := h.Service.RemoveTimeBlock(c.Request.Context(), tutorID, day, req.Index)
	if err != nil {
		respondScheduleError(c, err, "failed to remove time block")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": weekly.Entries()})
}

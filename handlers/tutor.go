package handlers

import (
	"net/http"
	"strconv"

	"tutorhive/models"
	"tutorhive/services/tutor"
	"tutorhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TutorHandler serves tutor profile and availability endpoints.
type TutorHandler struct {
	Service tutor.TutorService
}

// RegisterTutorHandler creates a new tutor profile. New tutors stay pending
// until they publish availability.
func (h *TutorHandler) RegisterTutorHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.Tutor
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	created, err := h.Service.Register(c.Request.Context(), &req)
	if err != nil {
		logger.Error("failed to register tutor", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register tutor", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created.PublicProfile())
}

// GetTutorHandler returns a tutor's public profile.
func (h *TutorHandler) GetTutorHandler(c *gin.Context) {
	id := c.Param("id")

	profile, err := h.Service.GetProfile(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tutor not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateTutorHandler updates the authenticated tutor's profile fields.
// Availability and status are managed through their own endpoints.
func (h *TutorHandler) UpdateTutorHandler(c *gin.Context) {
	logger := utils.GetLogger()

	tutorID, ok := authedID(c, "tutorID")
	if !ok {
		return
	}

	var req models.Tutor
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}
	req.ID = tutorID

	updated, err := h.Service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		logger.Error("failed to update tutor", zap.String("tutorID", tutorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update tutor", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated.PublicProfile())
}

// DeleteTutorHandler removes the authenticated tutor's profile.
func (h *TutorHandler) DeleteTutorHandler(c *gin.Context) {
	tutorID, ok := authedID(c, "tutorID")
	if !ok {
		return
	}

	if err := h.Service.DeleteTutor(c.Request.Context(), tutorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tutor", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tutor deleted"})
}

// BrowseTutorsHandler lists active tutors, optionally filtered by subject.
func (h *TutorHandler) BrowseTutorsHandler(c *gin.Context) {
	subject := c.Query("subject")

	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	tutors, err := h.Service.Browse(c.Request.Context(), subject, limit)
	if err != nil {
		utils.GetLogger().Error("failed to browse tutors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to browse tutors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tutors": tutors})
}

package routes

import (
	"net/http"
	"time"

	"tutorhive/handlers"
	"tutorhive/middleware"
	"tutorhive/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTutorRoutes registers tutor profile and availability endpoints.
func RegisterTutorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tutors")
	{
		// Public endpoints: registration and marketplace browsing.
		api.POST("/register", hb.Tutor.RegisterTutorHandler)
		api.GET("", hb.Tutor.BrowseTutorsHandler)
		api.GET("/id/:id", hb.Tutor.GetTutorHandler)
		api.GET("/id/:id/availability", hb.Tutor.GetAvailabilityHandler)

		// Endpoints that modify tutor data require a tutor token.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthTutorMiddleware())
		protected.PATCH("/me", hb.Tutor.UpdateTutorHandler)
		protected.DELETE("/me", hb.Tutor.DeleteTutorHandler)
		protected.PUT("/me/availability", hb.Tutor.SetAvailabilityHandler)
		protected.POST("/me/availability/:day", hb.Tutor.AddWeekdayHandler)
		protected.DELETE("/me/availability/:day", hb.Tutor.RemoveWeekdayHandler)
		protected.POST("/me/availability/:day/blocks", hb.Tutor.AddTimeBlockHandler)
		protected.PATCH("/me/availability/:day/blocks", hb.Tutor.UpdateTimeBlockHandler)
		protected.DELETE("/me/availability/:day/blocks", hb.Tutor.RemoveTimeBlockHandler)
		protected.GET("/me/bookings", hb.Booking.ListTutorBookingsHandler)
		protected.PATCH("/me/bookings/:bookingID/status", hb.Booking.UpdateBookingStatusHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for slot discovery and
// session booking.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		// Slot discovery is public so students can browse before signing in.
		api.GET("/tutors/:id/slots", hb.Booking.AvailableSlotsHandler)
		api.GET("/tutors/:id/max-duration", hb.Booking.MaxDurationHandler)

		student := api.Group("")
		student.Use(middleware.JWTAuthStudentMiddleware())
		student.POST("/sessions", hb.Booking.SubmitBookingHandler)
		student.GET("/sessions", hb.Booking.ListStudentBookingsHandler)

		// Either party may cancel.
		api.DELETE("/sessions/:bookingID", middleware.JWTAuthAnyMiddleware(), hb.Booking.CancelBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(utils.ErrorHandler())

	RegisterTutorRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}

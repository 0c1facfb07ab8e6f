package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akshat/campushub/internal/app/controllers"
	"github.com/akshat/campushub/internal/app/models/dto"
	"github.com/akshat/campushub/internal/pkg/realtime"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	eventController *controllers.EventController,
	studentController *controllers.StudentController,
	registrationController *controllers.RegistrationController,
	attendanceController *controllers.AttendanceController,
	feedbackController *controllers.FeedbackController,
	analyticsController *controllers.AnalyticsController,
	instituteController *controllers.InstituteController,
	realtimeHandler *realtime.Handler,
) {
	api := router.Group("/api")

	// Event routes
	events := api.Group("/events")
	{
		events.GET("", eventController.GetAllEvents)
		events.GET("/:id", eventController.GetEventByID)
		events.POST("", eventController.CreateEvent)
		events.PUT("/:id", eventController.UpdateEvent)
		events.DELETE("/:id", eventController.DeleteEvent)
	}

	// Student routes
	students := api.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudent)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
	}

	// Registration routes
	registrations := api.Group("/registrations")
	{
		registrations.GET("", registrationController.GetAllRegistrations)
		registrations.POST("", registrationController.CreateRegistration)
		registrations.PUT("/:id/verify", registrationController.VerifyRegistration)
		registrations.PUT("/verify-all", registrationController.VerifyAllRegistrations)
		registrations.DELETE("/:id", registrationController.DeleteRegistration)
		registrations.DELETE("", registrationController.DeleteAllRegistrations)
	}

	// Attendance routes
	attendance := api.Group("/attendance")
	{
		attendance.GET("/event/:eventId", attendanceController.GetEventAttendance)
		attendance.GET("/event/:eventId/check-ins", attendanceController.GetEventCheckIns)
		attendance.POST("/mark", attendanceController.MarkAttendance)
		attendance.POST("", attendanceController.SelfCheckIn)
	}

	// Feedback routes
	feedback := api.Group("/feedback")
	{
		feedback.GET("", feedbackController.GetFeedback)
		feedback.GET("/event/:eventId", feedbackController.GetEventFeedback)
		feedback.POST("", feedbackController.CreateFeedback)
		feedback.DELETE("/:id", feedbackController.DeleteFeedback)
		feedback.DELETE("", feedbackController.DeleteFeedbackBulk)
	}

	// Analytics routes
	analytics := api.Group("/analytics")
	{
		analytics.GET("/overview", analyticsController.GetOverview)
		analytics.GET("/top-active-students", analyticsController.GetTopActiveStudents)
		analytics.GET("/event-popularity", analyticsController.GetEventPopularity)
		analytics.GET("/event-type-analysis", analyticsController.GetEventTypeAnalysis)
		analytics.GET("/event-stats/:eventId", analyticsController.GetEventStats)
	}

	// Institutes
	api.GET("/institutes", instituteController.GetInstitutes)

	// Realtime updates
	router.GET("/ws", realtimeHandler.HandleConnection)

	// Operational endpoints
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

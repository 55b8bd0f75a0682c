package http

import (
	"github.com/gin-gonic/gin"

	"study-planner/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
// Every route requires a caller scope and is rate limited per user.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.Use(mw.Auth(), mw.RateLimit())

	rg.POST("/plan", h.Plan)
	rg.POST("/rescore", h.Rescore)
	rg.GET("/schedule", h.GetSchedule)
	rg.PATCH("/blocks/:id", h.UpdateBlockStatus)

	obligations := rg.Group("/obligations")
	{
		obligations.GET("", h.ListObligations)
		obligations.POST("/ingest", h.Ingest)
		obligations.POST("/:id/complete", h.CompleteObligation)
		obligations.POST("/:id/snooze", h.SnoozeObligation)
		obligations.POST("/:id/cancel", h.CancelObligation)
	}

	courses := rg.Group("/courses")
	{
		courses.GET("", h.ListCourses)
		courses.POST("", h.UpsertCourse)
		courses.PUT("/:id", h.UpsertCourse)
	}

	conflicts := rg.Group("/conflicts")
	{
		conflicts.GET("", h.ListConflicts)
		conflicts.POST("/detect", h.DetectConflicts)
		conflicts.POST("/:id/resolve", h.ResolveConflict)
	}

	rg.POST("/sessions", h.LogSession)
	rg.GET("/profile", h.GetProfile)
	rg.POST("/profile/learn", h.LearnProfile)
	rg.GET("/preferences", h.GetPreferences)
	rg.PATCH("/preferences", h.UpdatePreferences)
}

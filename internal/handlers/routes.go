package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Auth      *AuthHandler
	Tasks     *TaskHandler
	Templates *TemplateHandler
	Schedules *ScheduleHandler
	DailyTask *DailyTaskHandler
	Labels    *LabelHandler
	Analytics *AnalyticsHandler
}

// RegisterRoutes mounts the API under /api. Session middleware must already
// be installed on r.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())

	tasks := protected.Group("/tasks")
	{
		tasks.GET("", h.Tasks.ListTasks)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.POST("/generate", h.Tasks.GenerateTasks)
		tasks.GET("/:id", h.Tasks.GetTask)
		tasks.PUT("/:id", h.Tasks.UpdateTask)
		tasks.DELETE("/:id", h.Tasks.DeleteTask)
	}

	labels := protected.Group("/labels")
	{
		labels.GET("", h.Labels.ListLabels)
		labels.POST("", h.Labels.CreateLabel)
		labels.GET("/:id", h.Labels.GetLabel)
		labels.PUT("/:id", h.Labels.UpdateLabel)
		labels.DELETE("/:id", h.Labels.DeleteLabel)
	}

	templates := protected.Group("/templates")
	{
		templates.GET("", h.Templates.ListTemplates)
		templates.POST("", h.Templates.CreateTemplate)
		templates.GET("/available-weekdays", h.Templates.AvailableWeekdays)
		templates.GET("/:id", h.Templates.GetTemplate)
		templates.PUT("/:id", h.Templates.UpdateTemplate)
		templates.DELETE("/:id", h.Templates.DeleteTemplate)
	}

	lists := protected.Group("/daily-task-lists")
	{
		lists.GET("", h.Schedules.ListLists)
		lists.POST("", h.Schedules.CreateList)
		lists.GET("/today", h.Schedules.GetTodayList)
		lists.GET("/date/:date", h.Schedules.GetListByDate)
		lists.GET("/:id", h.Schedules.GetList)
		lists.DELETE("/:id", h.Schedules.DeleteList)
	}

	dailyTasks := protected.Group("/daily-tasks")
	{
		dailyTasks.GET("/:id", h.DailyTask.GetTask)
		dailyTasks.PUT("/:id", h.DailyTask.UpdateTask)
		dailyTasks.DELETE("/:id", h.DailyTask.DeleteTask)
		dailyTasks.POST("/:id/complete", h.DailyTask.CompleteTask)
		dailyTasks.POST("/:id/incomplete", h.DailyTask.IncompleteTask)
	}

	adhoc := protected.Group("/adhoc-tasks")
	{
		adhoc.GET("", h.DailyTask.ListAdhoc)
		adhoc.POST("", h.DailyTask.CreateAdhoc)
	}

	analytics := protected.Group("/analytics")
	{
		analytics.GET("/completion-stats", h.Analytics.CompletionStats)
	}
}

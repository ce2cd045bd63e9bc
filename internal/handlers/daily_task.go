package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-planner-api/internal/dto"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/services"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// DailyTaskHandler serves daily tasks and the adhoc queue
type DailyTaskHandler struct {
	dailyTaskService *services.DailyTaskService
}

func NewDailyTaskHandler(dailyTaskService *services.DailyTaskService) *DailyTaskHandler {
	return &DailyTaskHandler{
		dailyTaskService: dailyTaskService,
	}
}

// GetTask returns a daily task with its labels and references
func (h *DailyTaskHandler) GetTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	taskID, ok := middleware.ParseIDParam(c, "id", "daily task")
	if !ok {
		return
	}

	task, err := h.dailyTaskService.GetTask(userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTaskDTO(*task))
}

// UpdateTask edits a daily task. A single label_id is accepted as a
// shorthand for label_ids; an empty label_id clears the labels.
func (h *DailyTaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	taskID, ok := middleware.ParseIDParam(c, "id", "daily task")
	if !ok {
		return
	}

	type UpdateDailyTaskRequest struct {
		Title     *string   `json:"title"`
		Order     *int      `json:"order"`
		DueDate   *string   `json:"due_date"`
		Completed *bool     `json:"completed"`
		LabelIDs  *[]string `json:"label_ids"`
		LabelID   *string   `json:"label_id"`
	}

	var req UpdateDailyTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	input := services.UpdateDailyTaskInput{
		Title:     req.Title,
		Order:     req.Order,
		Completed: req.Completed,
		LabelIDs:  req.LabelIDs,
	}
	if req.DueDate != nil {
		due, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			apierrors.ValidationFailed(c, "", map[string]string{"due_date": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		input.DueDate = &due
	}
	if input.LabelIDs == nil && req.LabelID != nil {
		ids := []string{}
		if *req.LabelID != "" {
			ids = append(ids, *req.LabelID)
		}
		input.LabelIDs = &ids
	}

	task, err := h.dailyTaskService.UpdateTask(userID, taskID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTaskDTO(*task))
}

// CompleteTask marks a daily task done
func (h *DailyTaskHandler) CompleteTask(c *gin.Context) {
	h.transition(c, h.dailyTaskService.CompleteTask)
}

// IncompleteTask reopens a daily task
func (h *DailyTaskHandler) IncompleteTask(c *gin.Context) {
	h.transition(c, h.dailyTaskService.ReopenTask)
}

func (h *DailyTaskHandler) transition(c *gin.Context, apply func(userID, taskID uint64) (*models.DailyTask, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	taskID, ok := middleware.ParseIDParam(c, "id", "daily task")
	if !ok {
		return
	}

	task, err := apply(userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTaskDTO(*task))
}

// DeleteTask removes a daily task
func (h *DailyTaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	taskID, ok := middleware.ParseIDParam(c, "id", "daily task")
	if !ok {
		return
	}

	if err := h.dailyTaskService.DeleteTask(userID, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Daily task deleted successfully",
	})
}

// ListAdhoc returns open adhoc tasks in queue order, or completed ones with
// completed=true, optionally for one completion date
func (h *DailyTaskHandler) ListAdhoc(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	completed := c.DefaultQuery("completed", "false") == "true"
	date, ok := middleware.ParseDateQuery(c, "date")
	if !ok {
		return
	}

	tasks, err := h.dailyTaskService.ListAdhoc(services.ListAdhocInput{
		UserID:    userID,
		Completed: completed,
		Date:      date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdhocListResponse(tasks))
}

// CreateAdhoc appends a task to the adhoc queue
func (h *DailyTaskHandler) CreateAdhoc(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateAdhocRequest struct {
		Title    string   `json:"title"`
		DueDate  string   `json:"due_date"`
		LabelIDs []string `json:"label_ids"`
	}

	var req CreateAdhocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	var due time.Time
	if req.DueDate != "" {
		parsed, err := utils.ParseDate(req.DueDate)
		if err != nil {
			apierrors.ValidationFailed(c, "", map[string]string{"due_date": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		due = parsed
	}

	task, err := h.dailyTaskService.CreateAdhoc(services.CreateAdhocInput{
		UserID:   userID,
		Title:    req.Title,
		DueDate:  due,
		LabelIDs: req.LabelIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDailyTaskDTO(*task))
}

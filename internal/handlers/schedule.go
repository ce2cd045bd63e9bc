package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-planner-api/internal/dto"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/services"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// ScheduleHandler serves daily task lists
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// ListLists returns the user's lists newest first, optionally restricted to
// an inclusive date range
func (h *ScheduleHandler) ListLists(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	start, ok := middleware.ParseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := middleware.ParseDateQuery(c, "end_date")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	lists, total, err := h.scheduleService.ListLists(services.ListInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Params:    params,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTaskListsResponse(lists, params, total))
}

// CreateList materializes a template into the list for a date. Without a
// date it creates today's list; without a template_id it uses the template
// assigned to the date's weekday.
func (h *ScheduleHandler) CreateList(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateListRequest struct {
		Date       string  `json:"date"`
		TemplateID *uint64 `json:"template_id"`
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	date := h.scheduleService.Today()
	if req.Date != "" {
		parsed, err := utils.ParseDate(req.Date)
		if err != nil {
			apierrors.ValidationFailed(c, "", map[string]string{"date": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	list, err := h.scheduleService.Materialize(services.MaterializeInput{
		UserID:     userID,
		Date:       date,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDailyTaskListDTO(*list))
}

// GetList returns a list by ID with its ordered tasks
func (h *ScheduleHandler) GetList(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	listID, ok := middleware.ParseIDParam(c, "id", "daily task list")
	if !ok {
		return
	}

	list, err := h.scheduleService.GetList(userID, listID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTaskListDTO(*list))
}

// GetListByDate returns the list of a calendar date
func (h *ScheduleHandler) GetListByDate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	date, ok := middleware.ParseDateParam(c, "date")
	if !ok {
		return
	}

	list, err := h.scheduleService.GetListByDate(userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTaskListDTO(*list))
}

// GetTodayList returns today's list
func (h *ScheduleHandler) GetTodayList(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	list, err := h.scheduleService.GetTodayList(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTaskListDTO(*list))
}

// DeleteList removes a list and its tasks
func (h *ScheduleHandler) DeleteList(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	listID, ok := middleware.ParseIDParam(c, "id", "daily task list")
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteList(userID, listID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Daily task list deleted successfully",
	})
}

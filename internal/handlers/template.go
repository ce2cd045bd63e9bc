package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-planner-api/internal/dto"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/services"
)

// TemplateHandler serves templates and weekday assignment
type TemplateHandler struct {
	templateService *services.TemplateService
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

type templateTaskRequest struct {
	TaskID uint64 `json:"task_id"`
	Order  *int   `json:"order"`
}

// toTemplateTaskInputs checks that every entry names a task and an order.
func toTemplateTaskInputs(tasks []templateTaskRequest) ([]planner.TemplateTaskInput, *apierrors.ValidationError) {
	inputs := make([]planner.TemplateTaskInput, len(tasks))
	for i, t := range tasks {
		if t.TaskID == 0 || t.Order == nil {
			return nil, apierrors.NewValidationError("tasks", "Each task requires task_id and order")
		}
		inputs[i] = planner.TemplateTaskInput{TaskID: t.TaskID, Order: *t.Order}
	}
	return inputs, nil
}

// ListTemplates returns the user's templates with ordered tasks
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	templates, err := h.templateService.ListTemplates(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateListResponse(templates))
}

// GetTemplate returns a template by ID
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	templateID, ok := middleware.ParseIDParam(c, "id", "template")
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplate(userID, templateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateDTO(*template))
}

// CreateTemplate creates a template with weekdays and tasks
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTemplateRequest struct {
		Title    string                `json:"title"`
		Weekdays []string              `json:"weekdays"`
		Tasks    []templateTaskRequest `json:"tasks"`
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	tasks, verr := toTemplateTaskInputs(req.Tasks)
	if verr != nil {
		respondServiceError(c, verr)
		return
	}

	template, err := h.templateService.CreateTemplate(services.CreateTemplateInput{
		UserID:   userID,
		Title:    req.Title,
		Weekdays: req.Weekdays,
		Tasks:    tasks,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateDTO(*template))
}

// UpdateTemplate changes any of title, weekdays and tasks
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	templateID, ok := middleware.ParseIDParam(c, "id", "template")
	if !ok {
		return
	}

	type UpdateTemplateRequest struct {
		Title    *string                `json:"title"`
		Weekdays *[]string              `json:"weekdays"`
		Tasks    *[]templateTaskRequest `json:"tasks"`
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	input := services.UpdateTemplateInput{
		Title:    req.Title,
		Weekdays: req.Weekdays,
	}
	if req.Tasks != nil {
		tasks, verr := toTemplateTaskInputs(*req.Tasks)
		if verr != nil {
			respondServiceError(c, verr)
			return
		}
		input.Tasks = &tasks
	}

	template, err := h.templateService.UpdateTemplate(userID, templateID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateDTO(*template))
}

// DeleteTemplate removes a template no list was created from
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	templateID, ok := middleware.ParseIDParam(c, "id", "template")
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(userID, templateID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Template deleted successfully",
	})
}

// AvailableWeekdays lists weekdays not used by the user's other templates
func (h *TemplateHandler) AvailableWeekdays(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var exclude uint64
	if raw := c.Query("exclude_template_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid exclude_template_id")
			return
		}
		exclude = id
	}

	weekdays, err := h.templateService.AvailableWeekdays(userID, exclude)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvailableWeekdaysResponse{Weekdays: weekdays})
}

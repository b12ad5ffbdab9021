package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskpilot/taskpilot-api/internal/dto"
	apierrors "github.com/taskpilot/taskpilot-api/internal/errors"
	"github.com/taskpilot/taskpilot-api/internal/middleware"
	"github.com/taskpilot/taskpilot-api/internal/models"
	"github.com/taskpilot/taskpilot-api/internal/services"
	"github.com/taskpilot/taskpilot-api/internal/taskview"
	"github.com/taskpilot/taskpilot-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the caller's tasks with optional filtering, sorting and
// pagination applied via query parameters.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	filter := taskview.Filter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
	}
	filtered := filter.Apply(tasks)
	taskview.SortTasks(filtered, c.Query("sort"))

	params := utils.GetPaginationParams(c)
	page := utils.Paginate(filtered, params)

	items := make([]dto.TaskDTO, len(page))
	for i, task := range page {
		items[i] = dto.ToTaskDTO(task)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": items,
		"total": len(filtered),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int64(len(filtered)),
		},
	})
}

// GetTask returns one of the caller's tasks by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, taskID, ok := callerAndTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// CreateTask creates a new task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title             string     `json:"title" binding:"required"`
		Description       string     `json:"description"`
		Status            string     `json:"status"`
		Priority          string     `json:"priority"`
		Category          string     `json:"category"`
		DueDate           *time.Time `json:"due_date"`
		EstimatedDuration *int       `json:"estimated_duration"`
		Tags              []string   `json:"tags"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Task title is required")
		return
	}

	task, err := h.taskService.CreateTask(userID, services.CreateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		Status:            models.TaskStatus(req.Status),
		Priority:          models.TaskPriority(req.Priority),
		Category:          models.TaskCategory(req.Category),
		DueDate:           req.DueDate,
		EstimatedDuration: req.EstimatedDuration,
		Tags:              req.Tags,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTask applies a partial update. The raw body is inspected so that only
// the fields actually sent are changed, and an explicit null due_date clears
// the deadline.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, taskID, ok := callerAndTaskID(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput
	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if description, ok := rawReq["description"].(string); ok {
		input.Description = &description
	}
	if status, ok := rawReq["status"].(string); ok {
		s := models.TaskStatus(status)
		input.Status = &s
	}
	if priority, ok := rawReq["priority"].(string); ok {
		p := models.TaskPriority(priority)
		input.Priority = &p
	}
	if category, ok := rawReq["category"].(string); ok {
		cat := models.TaskCategory(category)
		input.Category = &cat
	}
	if duration, ok := rawReq["estimated_duration"].(float64); ok {
		d := int(duration)
		input.EstimatedDuration = &d
	}
	if rawTags, ok := rawReq["tags"].([]any); ok {
		tags := make([]string, 0, len(rawTags))
		for _, rt := range rawTags {
			if tag, ok := rt.(string); ok {
				tags = append(tags, tag)
			}
		}
		input.Tags = &tags
	}
	if _, present := rawReq["due_date"]; present {
		if rawReq["due_date"] == nil {
			input.ClearDueDate = true
		} else if dueDateStr, ok := rawReq["due_date"].(string); ok {
			parsed, err := time.Parse(time.RFC3339, dueDateStr)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due date format")
				return
			}
			input.DueDate = &parsed
		}
	}

	task, err := h.taskService.UpdateTask(taskID, userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// DeleteTask removes one of the caller's tasks.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := callerAndTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// CompleteTask marks a task as completed, cascading to its subtasks.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, taskID, ok := callerAndTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task marked as completed",
		"task":    dto.ToTaskDTO(*task),
	})
}

// AddSubtask appends a subtask to one of the caller's tasks.
func (h *TaskHandler) AddSubtask(c *gin.Context) {
	userID, taskID, ok := callerAndTaskID(c)
	if !ok {
		return
	}

	type AddSubtaskRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Subtask title is required")
		return
	}

	task, err := h.taskService.AddSubtask(taskID, userID, req.Title)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// AddNote appends a note to one of the caller's tasks.
func (h *TaskHandler) AddNote(c *gin.Context) {
	userID, taskID, ok := callerAndTaskID(c)
	if !ok {
		return
	}

	type AddNoteRequest struct {
		Content string `json:"content" binding:"required"`
		IsAI    bool   `json:"is_ai"`
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Note content is required")
		return
	}

	task, err := h.taskService.AddNote(taskID, userID, req.Content, req.IsAI)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// GetStats returns the caller's task statistics overview.
func (h *TaskHandler) GetStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return
	}

	stats, err := h.taskService.Stats(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetAnalytics returns the dashboard analytics for the caller's tasks.
func (h *TaskHandler) GetAnalytics(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analytics": taskview.Compute(tasks, time.Now()),
	})
}

// callerAndTaskID extracts the authenticated user ID and the :id parameter.
// On failure it writes the error response and returns ok=false.
func callerAndTaskID(c *gin.Context) (userID, taskID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "Not authenticated")
		return 0, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		// An unparseable ID can never match a task the caller owns.
		apierrors.NotFound(c, "Task not found")
		return 0, 0, false
	}

	return userID, taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, "Validation failed", verr.Fields)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

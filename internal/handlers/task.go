package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-app/taskflow/internal/dto"
	apierrors "github.com/taskflow-app/taskflow/internal/errors"
	"github.com/taskflow-app/taskflow/internal/middleware"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/services"
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

// ListTasks returns the caller's tasks sorted ascending by due date.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// SearchTasks returns the caller's tasks matching ?q= in title or
// description.
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.SearchTasks(userID, c.Query("q"))
	if err != nil {
		if errors.Is(err, services.ErrQueryRequired) {
			apierrors.BadRequest(c, "Search query is required")
			return
		}
		apierrors.InternalError(c, "Failed to search tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task owned by the caller.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, err := h.taskService.GetTask(userID, c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task for the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		DueDate     *time.Time      `json:"dueDate"`
		Priority    models.Priority `json:"priority"`
		Category    string          `json:"category"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(userID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. The body is parsed as a raw map so an
// explicit null dueDate clears the deadline while an absent key leaves it
// alone.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, ok := updateInputFromRaw(rawReq)
	if !ok {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(userID, c.Param("id"), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task owned by the caller.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.taskService.DeleteTask(userID, c.Param("id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task removed successfully",
	})
}

// updateInputFromRaw maps the present keys of a raw JSON body onto an
// UpdateTaskInput. It reports false on a type mismatch or unparseable date.
func updateInputFromRaw(raw map[string]any) (services.UpdateTaskInput, bool) {
	var input services.UpdateTaskInput

	if v, present := raw["title"]; present {
		s, ok := v.(string)
		if !ok {
			return input, false
		}
		input.Title = &s
	}
	if v, present := raw["description"]; present {
		s, ok := v.(string)
		if !ok {
			return input, false
		}
		input.Description = &s
	}
	if v, present := raw["dueDate"]; present {
		if v == nil {
			input.ClearDueDate = true
		} else {
			s, ok := v.(string)
			if !ok {
				return input, false
			}
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return input, false
			}
			input.DueDate = &parsed
		}
	}
	if v, present := raw["priority"]; present {
		s, ok := v.(string)
		if !ok {
			return input, false
		}
		p := models.Priority(s)
		input.Priority = &p
	}
	if v, present := raw["category"]; present {
		s, ok := v.(string)
		if !ok {
			return input, false
		}
		input.Category = &s
	}
	if v, present := raw["status"]; present {
		s, ok := v.(string)
		if !ok {
			return input, false
		}
		st := models.TaskStatus(s)
		input.Status = &st
	}
	if v, present := raw["completed"]; present {
		b, ok := v.(bool)
		if !ok {
			return input, false
		}
		input.Completed = &b
	}

	return input, true
}

// respondTaskError maps task service errors onto the wire contract.
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, "Title is required")
	case errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Server error")
	}
}

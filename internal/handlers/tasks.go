package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aymanElshayeb/reactExampleBackend/internal/models"
	"github.com/aymanElshayeb/reactExampleBackend/internal/services"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.taskService.AddTask(c.Request.Context(), task)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTask handles PUT /api/tasks. The task id comes from the body; a
// missing or unknown id is a 404, never an upsert.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateTaskByID handles PUT /api/tasks/:id. The path id overrides whatever
// id the body carries.
func (h *TaskHandler) UpdateTaskByID(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task.ID = id

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RemoveTasks handles DELETE /api/tasks with a JSON array of ids. An empty
// array is rejected before it reaches the service layer.
func (h *TaskHandler) RemoveTasks(c *gin.Context) {
	var ids []uint
	if err := c.ShouldBindJSON(&ids); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no task ids supplied"})
		return
	}

	if err := h.taskService.RemoveTasks(c.Request.Context(), ids); err != nil {
		handleTaskError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveTask handles DELETE /api/tasks/:id.
func (h *TaskHandler) RemoveTask(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.taskService.RemoveTasks(c.Request.Context(), []uint{id}); err != nil {
		handleTaskError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchByDescription handles GET /api/tasks/search?description=&page=&size=.
// Pages are zero-indexed; an empty page yields 204.
func (h *TaskHandler) SearchByDescription(c *gin.Context) {
	description := c.Query("description")

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
		return
	}

	result, err := h.taskService.SearchByDescription(c.Request.Context(), description, page, size)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	if len(result.Content) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseID(c *gin.Context, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func handleTaskError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "task not found",
		})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to process task request",
		})
	}
}

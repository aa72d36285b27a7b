package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aymanElshayeb/reactExampleBackend/internal/models"
	"github.com/aymanElshayeb/reactExampleBackend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser handles POST /api/users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.userService.AddUser(c.Request.Context(), user)
	if err != nil {
		handleUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetUsers handles GET /api/users. An empty collection yields 204.
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		handleUserError(c, err)
		return
	}

	if len(users) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID handles GET /api/users/:id.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserByUsername handles GET /api/users/username/:username.
func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	user, err := h.userService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetTasksOfUser handles GET /api/users/:id/tasks. A missing user is a 404;
// an existing user with no tasks is a 204 — the two are never conflated.
func (h *UserHandler) GetTasksOfUser(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	tasks, err := h.userService.GetTasksOfUser(c.Request.Context(), id)
	if err != nil {
		handleUserError(c, err)
		return
	}

	if len(tasks) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func handleUserError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "user not found",
		})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to process user request",
		})
	}
}

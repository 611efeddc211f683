package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"user-api/internal/domain"
	"user-api/internal/repository"
	"user-api/internal/service"
	"user-api/internal/validation"
)

const (
	msgUserCreated  = "Пользователь создан"
	msgUserUpdated  = "Пользователь обновлен"
	msgUserDeleted  = "Пользователь удален"
	msgUserNotFound = "Пользователь не найден"
	msgCreateFailed = "Ошибка создания пользователя"
	msgUpdateFailed = "Ошибка обновления пользователя"
	msgDeleteFailed = "Ошибка удаления пользователя"
)

// Handler wires HTTP routes to the user service.
type Handler struct {
	users  service.UserService
	logger *logrus.Logger
}

func NewHandler(users service.UserService, logger *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	users := router.Group("/user")
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

// userRequest is the wire shape of a create/update body. Age is a pointer so
// a missing key fails the required rule instead of defaulting to zero.
type userRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Age      *int   `json:"age"`
	Sex      string `json:"sex"`
	Birthday string `json:"birthday"`
	Phone    string `json:"phone"`
}

func (r userRequest) candidate() validation.Candidate {
	return validation.Candidate{
		Email:    r.Email,
		Name:     r.Name,
		Age:      r.Age,
		Sex:      r.Sex,
		Birthday: r.Birthday,
		Phone:    r.Phone,
	}
}

func (r userRequest) input() service.UserInput {
	input := service.UserInput{
		Email:    r.Email,
		Name:     r.Name,
		Sex:      domain.Sex(r.Sex),
		Birthday: r.Birthday,
		Phone:    r.Phone,
	}
	if r.Age != nil {
		input.Age = *r.Age
	}
	return input
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"elapsed":    time.Since(start).String(),
		}).Info("request handled")
	}
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgCreateFailed, "error": err.Error()})
		return
	}

	if violations := validation.Validate(req.candidate()); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgCreateFailed, "errors": violations})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.input())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgCreateFailed, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msgUserCreated, "user": userToResponse(*user)})
}

func (h *Handler) getUser(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(*user)})
}

func (h *Handler) updateUser(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgUpdateFailed, "error": err.Error()})
		return
	}

	if violations := validation.Validate(req.candidate()); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgUpdateFailed, "errors": violations})
		return
	}

	updated, err := h.users.UpdateUser(c.Request.Context(), user, req.input())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgUpdateFailed, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgUserUpdated, "user": userToResponse(*updated)})
}

func (h *Handler) deleteUser(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgDeleteFailed, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgUserDeleted})
}

// lookupUser resolves the :id path parameter into a stored user. An
// unparseable or unknown id yields a 404, matching route-level resolution.
func (h *Handler) lookupUser(c *gin.Context) (*domain.User, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
		return nil, false
	}

	user, err := h.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return user, true
}

type UserResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Age       int        `json:"age"`
	Sex       domain.Sex `json:"sex"`
	Birthday  string     `json:"birthday"`
	Phone     string     `json:"phone"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Age:       user.Age,
		Sex:       user.Sex,
		Birthday:  user.Birthday.Format("2006-01-02"),
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jmuhoro/todo-api/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleAddTodo(c *gin.Context)
	HandleGetTodos(c *gin.Context)
	HandleGetTodo(c *gin.Context)
	HandleUpdateTodo(c *gin.Context)
	HandleDeleteTodo(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	auth   services.AuthService
	tokens services.TokenService
	tasks  services.TaskService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	tokenService services.TokenService,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		auth:   authService,
		tokens: tokenService,
		tasks:  taskService,
	}
}

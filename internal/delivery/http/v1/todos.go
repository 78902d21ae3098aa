package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmuhoro/todo-api/internal/models"
	"github.com/jmuhoro/todo-api/internal/services"
)

type todoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Date        time.Time `json:"date"`
	UserID      string    `json:"user_id"`
}

func newTodoResponse(task *models.Task) todoResponse {
	return todoResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Date:        task.CreatedAt,
		UserID:      task.UserID,
	}
}

type addTodoRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"required"`
}

func (h *handlerImpl) HandleAddTodo(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	var req addTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("title and description are required"))
		return
	}

	_, err = h.tasks.Add(c, userID, req.Title, *req.Description)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to add todo")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Todo added successfully",
	})
}

func (h *handlerImpl) HandleGetTodos(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", 5)

	result, err := h.tasks.List(c, userID, page, perPage)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list todos")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	todos := make([]todoResponse, len(result.Tasks))
	for i := range result.Tasks {
		todos[i] = newTodoResponse(&result.Tasks[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"page":        result.Page,
		"per_page":    result.PerPage,
		"total":       result.Total,
		"total_pages": result.TotalPages,
		"todos":       todos,
	})
}

func (h *handlerImpl) HandleGetTodo(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	taskID, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c, userID, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to get todo")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"todo":   []todoResponse{newTodoResponse(task)},
	})
}

type updateTodoRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"required"`
}

func (h *handlerImpl) HandleUpdateTodo(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	taskID, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	var req updateTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("title and description are required"))
		return
	}

	err = h.tasks.Update(c, userID, taskID, req.Title, *req.Description)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update todo")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Todo: %d updated successfully", taskID),
	})
}

func (h *handlerImpl) HandleDeleteTodo(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	taskID, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	err := h.tasks.Delete(c, userID, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete todo")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Todo: %d deleted successfully", taskID),
	})
}

func (h *handlerImpl) taskIDParam(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("id", c.Param("id")).
			Msg("invalid task id")
		abort(c, newBadRequestError("invalid task id"))
		return 0, false
	}
	return taskID, true
}

// queryInt mirrors the lenient query parsing of the list
// endpoint: a missing or non-numeric value falls back to the
// default instead of failing the request.
func queryInt(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

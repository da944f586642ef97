package handlers

import (
	"errors"
	"net/http"

	"github.com/Mieeelll/Taskflow-To-Do-App/internal/auth"
	dom "github.com/Mieeelll/Taskflow-To-Do-App/internal/domain"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/dto"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/repo"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// List godoc
// @Summary      List todos for the authenticated user
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        skip       query  int     false  "Offset (>=0)"       default(0)
// @Param        limit      query  int     false  "Page size (1-100)"  default(50)
// @Param        completed  query  bool    false  "Filter by completed"
// @Param        priority   query  string  false  "Filter by priority"
// @Param        category   query  string  false  "Filter by category"
// @Param        search     query  string  false  "Substring of title or description"
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	var q dto.ListTodosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	filters := repo.ListFilters{
		Completed: q.Completed,
		Priority:  q.Priority,
		Category:  q.Category,
		Search:    q.Search,
	}
	list, total, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), filters, q.Skip, q.Limit)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Todos: todosToResponses(list), Total: total})
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  dto.TodoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate.Ptr(),
	})
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, todoToResponse(t))
}

// Update godoc
// @Summary      Partially update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Todo ID"
// @Param        body  body      dto.UpdateTodoRequest  true  "Fields to change"
// @Success      200   {object}  dto.TodoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	in := service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		Category:    req.Category,
	}
	if req.DueDate != nil {
		in.DueDate = req.DueDate.Ptr()
	}
	t, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTitleEmpty):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternal(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// ToggleComplete godoc
// @Summary      Set the completed flag
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Todo ID"
// @Param        body  body      dto.ToggleCompleteRequest  true  "Desired state"
// @Success      200   {object}  dto.ToggleCompleteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /todos/{id}/toggle-complete [patch]
func (h *TodoHandler) ToggleComplete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ToggleCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.svc.ToggleComplete(c.Request.Context(), auth.UserIDFromContext(c), id, *req.Completed)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToggleCompleteResponse{
		ID:        t.ID.String(),
		Completed: t.Completed,
		UpdatedAt: t.UpdatedAt,
	})
}

// Delete godoc
// @Summary      Soft-delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}

// parseID reads the id path param. A malformed id is indistinguishable
// from a missing record.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, service.ErrNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		Category:    t.Category,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}

package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/board"
	dom "taskboard/internal/domain"
	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves the task CRUD surface and the board gestures (column
// moves, progress edits, sprint drags) on top of the reconciliation engine.
type TaskHandler struct {
	board *board.Board
	svc   *service.TaskService
}

func NewTaskHandler(b *board.Board, svc *service.TaskService) *TaskHandler {
	return &TaskHandler{board: b, svc: svc}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.board.CreateTask(c.Request.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    dom.TaskPriority(req.Priority),
		DueDate:     req.DueDate.Ptr(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// List godoc
// @Summary      List tasks with optional filters
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        status    query  string  false  "Status filter or 'all'"
// @Param        priority  query  string  false  "Priority filter or 'all'"
// @Param        search    query  string  false  "Substring over title and description"
// @Success      200  {object}  dto.ListTasksResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	f := board.Filters{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: tasksToResponses(h.board.Filtered(f))})
}

// Board godoc
// @Summary      Kanban columns grouped by status
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        status    query  string  false  "Status filter or 'all'"
// @Param        priority  query  string  false  "Priority filter or 'all'"
// @Param        search    query  string  false  "Substring over title and description"
// @Success      200  {object}  dto.BoardResponse
// @Router       /tasks/board [get]
func (h *TaskHandler) Board(c *gin.Context) {
	f := board.Filters{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}
	cols := h.board.Columns(f)
	resp := dto.BoardResponse{Columns: make(map[string][]dto.TaskResponse, len(cols))}
	for status, tasks := range cols {
		resp.Columns[string(status)] = tasksToResponses(tasks)
	}
	c.JSON(http.StatusOK, resp)
}

// Statistics godoc
// @Summary      Aggregate task statistics
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  service.TaskStatistics
// @Router       /tasks/stats [get]
func (h *TaskHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetByID godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	t, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Update godoc
// @Summary      Partially update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update; sprint_id null clears the assignment"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.UpdateTaskInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Priority != nil {
		p := dom.TaskPriority(*req.Priority)
		in.Priority = &p
	}
	if req.Status != nil {
		s := dom.TaskStatus(*req.Status)
		in.Status = &s
	}
	in.Progress = req.Progress
	if req.SprintID.Set() {
		if req.SprintID.Null() {
			in.Sprint = &service.SprintChange{Clear: true}
		} else {
			in.Sprint = &service.SprintChange{SprintID: req.SprintID.ID()}
		}
	}
	t, err := h.board.UpdateTask(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Move godoc
// @Summary      Move a task to another board column
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.MoveTaskRequest  true  "Target status"
// @Success      200   {object}  dto.TaskResponse
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id}/move [post]
func (h *TaskHandler) Move(c *gin.Context) {
	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.board.MoveTask(c.Request.Context(), c.Param("id"), dom.TaskStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// SetProgress godoc
// @Summary      Edit a task's progress directly
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.SetProgressRequest  true  "Raw progress value"
// @Success      200   {object}  dto.TaskResponse
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id}/progress [post]
func (h *TaskHandler) SetProgress(c *gin.Context) {
	var req dto.SetProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.board.SetProgress(c.Request.Context(), c.Param("id"), *req.Progress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task (admin only)
// @Tags         tasks
// @Security     CookieAuth
// @Param        id   path  string  true  "Task ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	actor := auth.ActorFromContext(c)
	if err := h.board.DeleteTask(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddComment godoc
// @Summary      Add a comment to a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.AddCommentRequest  true  "Comment body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c *gin.Context) {
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.AddComment(c.Request.Context(), c.Param("id"), req.Content, req.Author)
	if err != nil {
		respondError(c, err)
		return
	}
	h.board.Put(t)
	c.JSON(http.StatusCreated, taskToResponse(t))
}

func respondError(c *gin.Context, err error) {
	switch {
	case dom.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dom.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, dom.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func taskToResponse(t *dom.Task) dto.TaskResponse {
	rec := t.Record()
	resp := dto.TaskResponse{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      string(rec.Status),
		Priority:    string(rec.Priority),
		Progress:    rec.Progress,
		DueDate:     rec.DueDate,
		CreatedAt:   rec.CreatedAt,
		SprintID:    rec.SprintID,
		Comments:    make([]dto.CommentResponse, len(rec.Comments)),
	}
	for i, cr := range rec.Comments {
		resp.Comments[i] = dto.CommentResponse{
			ID:        cr.ID,
			Content:   cr.Content,
			Author:    cr.Author,
			CreatedAt: cr.CreatedAt,
		}
	}
	return resp
}

func tasksToResponses(list []*dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}

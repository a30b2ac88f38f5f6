package handlers

import (
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/board"
	dom "taskboard/internal/domain"
	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// SprintHandler serves sprint CRUD and the planning view (sprint lane plus
// backlog lane).
type SprintHandler struct {
	svc   *service.SprintService
	board *board.Board
}

func NewSprintHandler(svc *service.SprintService, b *board.Board) *SprintHandler {
	return &SprintHandler{svc: svc, board: b}
}

// Create godoc
// @Summary      Create a sprint
// @Tags         sprints
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateSprintRequest  true  "Sprint body"
// @Success      201   {object}  dto.SprintResponse
// @Failure      400   {object}  map[string]string
// @Router       /sprints [post]
func (h *SprintHandler) Create(c *gin.Context) {
	var req dto.CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start := req.StartDate.Ptr()
	end := req.EndDate.Ptr()
	if start == nil || end == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}
	sp, err := h.svc.Create(c.Request.Context(), req.Name, *start, *end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sprintToResponse(sp))
}

// List godoc
// @Summary      List sprints
// @Tags         sprints
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListSprintsResponse
// @Router       /sprints [get]
func (h *SprintHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.SprintResponse, len(list))
	for i, sp := range list {
		out[i] = sprintToResponse(sp)
	}
	c.JSON(http.StatusOK, dto.ListSprintsResponse{Items: out})
}

// Plan godoc
// @Summary      Planning view: sprint tasks and the backlog
// @Tags         sprints
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Sprint ID"
// @Success      200  {object}  dto.SprintPlanResponse
// @Failure      404  {object}  map[string]string
// @Router       /sprints/{id}/plan [get]
func (h *SprintHandler) Plan(c *gin.Context) {
	id := c.Param("id")
	sp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SprintPlanResponse{
		Sprint:  sprintToResponse(sp),
		Tasks:   tasksToResponses(h.board.InSprint(id)),
		Backlog: tasksToResponses(h.board.Backlog()),
	})
}

// Start godoc
// @Summary      Start a sprint
// @Tags         sprints
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Sprint ID"
// @Success      200  {object}  dto.SprintResponse
// @Failure      404  {object}  map[string]string
// @Router       /sprints/{id}/start [post]
func (h *SprintHandler) Start(c *gin.Context) {
	sp, err := h.svc.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprintToResponse(sp))
}

// Complete godoc
// @Summary      Complete a sprint
// @Tags         sprints
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Sprint ID"
// @Success      200  {object}  dto.SprintResponse
// @Failure      404  {object}  map[string]string
// @Router       /sprints/{id}/complete [post]
func (h *SprintHandler) Complete(c *gin.Context) {
	sp, err := h.svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprintToResponse(sp))
}

// Delete godoc
// @Summary      Delete a sprint (admin only)
// @Tags         sprints
// @Security     CookieAuth
// @Param        id   path  string  true  "Sprint ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /sprints/{id} [delete]
func (h *SprintHandler) Delete(c *gin.Context) {
	actor := auth.ActorFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func sprintToResponse(s *dom.Sprint) dto.SprintResponse {
	return dto.SprintResponse{
		ID:        s.ID(),
		Name:      s.Name(),
		StartDate: s.StartDate(),
		EndDate:   s.EndDate(),
		Status:    string(s.Status()),
	}
}

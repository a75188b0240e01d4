package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the tracker service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches tracker routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tracker", h.create)
	rg.GET("/tracker", h.list)
	rg.GET("/tracker/:id", h.get)
	rg.PUT("/tracker/:id", h.update)
	rg.DELETE("/tracker/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	c.Set("jobId", req.JobID)
	if req.Status != "" {
		c.Set("statusTransition", req.Status)
	}

	rec, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.JobID, req.Status)
	if err != nil {
		writeError(c, err, "failed to create application")
		return
	}
	c.Set("applicationId", rec.ID)
	respond.JSON(c, http.StatusCreated, ToResponse(rec))
}

func (h *Handler) list(c *gin.Context) {
	board, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to list applications")
		return
	}
	respond.OK(c, toBoardResponse(board))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	rec, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to load application")
		return
	}
	respond.OK(c, ToResponse(rec))
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if req.Status != nil {
		c.Set("statusTransition", *req.Status)
	}

	rec, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, req.toPatch())
	if err != nil {
		writeError(c, err, "failed to update application")
		return
	}
	c.Set("jobId", rec.JobID)
	respond.OK(c, ToResponse(rec))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete application")
		return
	}
	respond.OK(c, gin.H{})
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidStatus):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid status")
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusBadRequest, "duplicate_application", "application already exists for this job")
	case errors.Is(err, ErrJobNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found")
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found")
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed to access this application")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback)
	}
}

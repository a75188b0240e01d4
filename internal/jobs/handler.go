package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the jobs service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.create)
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/:id", h.get)
	rg.PUT("/jobs/:id", h.update)
	rg.DELETE("/jobs/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	job, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.toInput())
	if err != nil {
		writeError(c, err, "failed to create job")
		return
	}
	c.Set("jobId", job.ID)
	respond.JSON(c, http.StatusCreated, toResponse(job))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	filter := Filter{
		Search:   c.Query("search"),
		Type:     c.Query("type"),
		Location: c.Query("location"),
	}
	if mine, _ := strconv.ParseBool(c.Query("mine")); mine {
		filter.PostedBy = middleware.UserIDFromContext(c)
	}

	jobs, err := h.Svc.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		writeError(c, err, "failed to list jobs")
		return
	}
	resp := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, toResponse(job))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)
	job, err := h.Svc.Get(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err, "failed to load job")
		return
	}
	respond.OK(c, toResponse(job))
}

func (h *Handler) update(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	job, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), jobID, req.toInput())
	if err != nil {
		writeError(c, err, "failed to update job")
		return
	}
	respond.OK(c, toResponse(job))
}

func (h *Handler) delete(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), jobID); err != nil {
		writeError(c, err, "failed to delete job")
		return
	}
	respond.OK(c, gin.H{})
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found")
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed to modify this job")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback)
	}
}

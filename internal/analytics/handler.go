package analytics

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/applications"
	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analytics service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analytics routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics", h.analytics)
	rg.GET("/dashboard", h.dashboard)
}

type dashboardResponse struct {
	Metrics            Metrics                       `json:"metrics"`
	RecentApplications []applications.RecordResponse `json:"recentApplications"`
}

func (h *Handler) analytics(c *gin.Context) {
	summary, err := h.Svc.Analytics(c.Request.Context(), middleware.UserIDFromContext(c), c.Query("range"))
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "range must be one of 7d, 30d, 90d, ytd, all")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute analytics")
		return
	}
	respond.OK(c, summary)
}

func (h *Handler) dashboard(c *gin.Context) {
	dash, err := h.Svc.Dashboard(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard")
		return
	}
	recent := make([]applications.RecordResponse, 0, len(dash.RecentApplications))
	for _, jr := range dash.RecentApplications {
		recent = append(recent, applications.ToResponse(jr))
	}
	respond.OK(c, dashboardResponse{Metrics: dash.Metrics, RecentApplications: recent})
}

package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.Sync(c.Request.Context(), Identity{
		UserID:     middleware.UserIDFromContext(c),
		Email:      middleware.UserEmailFromContext(c),
		Name:       middleware.UserNameFromContext(c),
		PictureURL: middleware.UserPictureFromContext(c),
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user")
		return
	}
	respond.OK(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"fullName":   user.FullName,
		"pictureUrl": user.PictureURL,
		"createdAt":  user.CreatedAt,
	})
}

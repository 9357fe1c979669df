package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/dengas/devtimetracker/internal/users"
)

// UserHandler exposes user lookups.
type UserHandler struct {
	users *users.Service
}

// Me returns the caller's profile, provisioning the user row on first
// contact.
func (h *UserHandler) Me(c *gin.Context) {
	info, err := h.users.Info(c.Request.Context(), principalFrom(c))
	if err != nil {
		log.WithError(err).Error("load user info")
		respondError(c, http.StatusInternalServerError, "Failed to retrieve user info", codeInternal)
		return
	}
	respond(c, http.StatusOK, info)
}

// Get returns any user's row; client admins only.
func (h *UserHandler) Get(c *gin.Context) {
	if !principalFrom(c).IsClientAdmin() {
		respondError(c, http.StatusForbidden, "You do not have access to this resource", codeUnauthorized)
		return
	}
	id := c.Param("id")
	user, err := h.users.GetByID(c.Request.Context(), id)
	if errors.Is(err, users.ErrUserNotFound) {
		respondError(c, http.StatusNotFound, fmt.Sprintf("User not found with ID: %s", id), codeNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("load user")
		respondError(c, http.StatusInternalServerError, "Failed to retrieve user", codeInternal)
		return
	}
	respond(c, http.StatusOK, user)
}

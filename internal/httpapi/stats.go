package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/dengas/devtimetracker/internal/badge"
	"github.com/dengas/devtimetracker/internal/stats"
)

// StatsHandler exposes the project statistics API.
type StatsHandler struct {
	service *stats.Service
}

// List returns the projects visible to the caller.
func (h *StatsHandler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context(), principalFrom(c))
	if err != nil {
		log.WithError(err).Error("list projects")
		respondError(c, http.StatusInternalServerError, "Failed to retrieve project stats", codeInternal)
		return
	}
	respond(c, http.StatusOK, projects)
}

// Get returns one project with its files.
func (h *StatsHandler) Get(c *gin.Context) {
	id := c.Param("id")
	project, err := h.service.Get(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		respondStatsError(c, id, err, "Failed to retrieve project stats")
		return
	}
	respond(c, http.StatusOK, project)
}

// Create stores a new project for the caller.
func (h *StatsHandler) Create(c *gin.Context) {
	in := stats.ProjectInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", codeValidation)
		return
	}
	project, err := h.service.Create(c.Request.Context(), principalFrom(c), &in)
	if err != nil {
		respondStatsError(c, "", err, "Failed to create project")
		return
	}
	respond(c, http.StatusCreated, project)
}

// Update replaces a project's mutable state and its whole file set.
func (h *StatsHandler) Update(c *gin.Context) {
	in := stats.ProjectInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", codeValidation)
		return
	}
	id := c.Param("id")
	project, err := h.service.Update(c.Request.Context(), principalFrom(c), id, &in)
	if err != nil {
		respondStatsError(c, id, err, "Failed to update project")
		return
	}
	respond(c, http.StatusOK, project)
}

// Patch applies a partial update.
func (h *StatsHandler) Patch(c *gin.Context) {
	in := stats.ProjectPatch{}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", codeValidation)
		return
	}
	id := c.Param("id")
	project, err := h.service.Patch(c.Request.Context(), principalFrom(c), id, &in)
	if err != nil {
		respondStatsError(c, id, err, "Failed to patch project")
		return
	}
	respond(c, http.StatusOK, project)
}

// Delete removes a project with everything attached to it.
func (h *StatsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), principalFrom(c), id); err != nil {
		respondStatsError(c, id, err, "Failed to delete project")
		return
	}
	respond(c, http.StatusOK, "Project deleted successfully")
}

// ListFiles returns a project's files without an ownership check.
func (h *StatsHandler) ListFiles(c *gin.Context) {
	id := c.Param("id")
	files, err := h.service.ListFiles(c.Request.Context(), id)
	if err != nil {
		respondStatsError(c, id, err, "Failed to retrieve project files")
		return
	}
	respond(c, http.StatusOK, files)
}

// Dashboard summarizes the caller's visible projects.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	board, err := h.service.Dashboard(c.Request.Context(), principalFrom(c))
	if err != nil {
		log.WithError(err).Error("dashboard stats")
		respondError(c, http.StatusInternalServerError, "Failed to retrieve dashboard stats", codeInternal)
		return
	}
	respond(c, http.StatusOK, board)
}

// Badge serves the public SVG badge. It always answers 200; hidden or
// unknown projects get the fallback badge.
func (h *StatsHandler) Badge(c *gin.Context) {
	color := c.DefaultQuery("color", badge.DefaultColor)
	project, err := h.service.FindByID(c.Request.Context(), c.Query("projectId"))
	if err != nil && !errors.Is(err, stats.ErrProjectNotFound) {
		log.WithError(err).Error("badge lookup")
	}
	if err != nil || !project.GithubBadgeVisible {
		c.Data(http.StatusOK, "image/svg+xml", []byte(badge.Render(badge.Label, badge.FallbackValue, badge.FallbackColor)))
		return
	}
	value := badge.FormatCodingTime(project.TotalCodingTime)
	c.Data(http.StatusOK, "image/svg+xml", []byte(badge.Render(badge.Label, value, color)))
}

// respondStatsError maps lifecycle service failures onto envelope codes.
func respondStatsError(c *gin.Context, id string, err error, fallback string) {
	vErr := &stats.ValidationError{}
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, vErr.Message, codeValidation)
	case errors.Is(err, stats.ErrProjectNotFound):
		respondError(c, http.StatusNotFound, fmt.Sprintf("Project not found with ID: %s", id), codeNotFound)
	case errors.Is(err, stats.ErrAccessDenied):
		respondError(c, http.StatusForbidden, "You do not have access to this project", codeUnauthorized)
	default:
		log.WithError(err).Error(fallback)
		respondError(c, http.StatusInternalServerError, fallback, codeInternal)
	}
}

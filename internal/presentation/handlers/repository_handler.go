package handlers

import (
	"github.com/gin-gonic/gin"
)

// RepositoryHandler relays repository-scoped GitHub reads
type RepositoryHandler struct {
	github GitHubService
}

// NewRepositoryHandler creates a new repository handler
func NewRepositoryHandler(github GitHubService) *RepositoryHandler {
	return &RepositoryHandler{github: github}
}

// GetTree handles GET /api/repos/:owner/:repo/tree
// @Summary Get a repository tree
// @Description Returns the recursive file tree. Without branch the default branch is resolved first.
// @Tags Repositories
// @Produce json
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Param branch query string false "Branch name, defaults to the repository's default branch"
// @Success 200 {object} object
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/repos/{owner}/{repo}/tree [get]
func (h *RepositoryHandler) GetTree(c *gin.Context) {
	// empty branch resolves to the default branch
	branch := c.Query("branch")

	data, err := h.github.FetchRepositoryTree(c.Request.Context(), c.Param("owner"), c.Param("repo"), branch)
	respond(c, data, err)
}

// GetLanguages handles GET /api/repos/:owner/:repo/languages
// @Summary Get repository languages
// @Description Returns the mapping of language name to byte count
// @Tags Repositories
// @Produce json
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {object} map[string]int
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/repos/{owner}/{repo}/languages [get]
func (h *RepositoryHandler) GetLanguages(c *gin.Context) {
	data, err := h.github.FetchRepositoryLanguages(c.Request.Context(), c.Param("owner"), c.Param("repo"))
	respond(c, data, err)
}

package handlers

import (
	"github.com/gin-gonic/gin"
)

// UserHandler relays user-scoped GitHub reads
type UserHandler struct {
	github GitHubService
}

// NewUserHandler creates a new user handler
func NewUserHandler(github GitHubService) *UserHandler {
	return &UserHandler{github: github}
}

// GetUser handles GET /api/user/:username
// @Summary Get a GitHub user
// @Description Returns the GitHub user profile verbatim
// @Tags Users
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {object} object
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/user/{username} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	data, err := h.github.FetchUser(c.Request.Context(), c.Param("username"))
	respond(c, data, err)
}

// GetUserRepositories handles GET /api/user/:username/repos
// @Summary List a user's repositories
// @Description Returns up to 100 repositories, most recently updated first
// @Tags Users
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} object
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/user/{username}/repos [get]
func (h *UserHandler) GetUserRepositories(c *gin.Context) {
	data, err := h.github.FetchUserRepositories(c.Request.Context(), c.Param("username"))
	respond(c, data, err)
}

// GetUserStarred handles GET /api/user/:username/starred
// @Summary List a user's starred repositories
// @Description Returns up to 100 starred repositories
// @Tags Users
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} object
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/user/{username}/starred [get]
func (h *UserHandler) GetUserStarred(c *gin.Context) {
	data, err := h.github.FetchUserStarredRepos(c.Request.Context(), c.Param("username"))
	respond(c, data, err)
}

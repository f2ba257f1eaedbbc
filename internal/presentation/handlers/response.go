package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"gitviz-backend/internal/github"
	"gitviz-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GitHubService is the upstream accessor set the handlers relay
type GitHubService interface {
	FetchRepositoryTree(ctx context.Context, owner, repo, branch string) (json.RawMessage, error)
	FetchUser(ctx context.Context, username string) (json.RawMessage, error)
	FetchUserRepositories(ctx context.Context, username string) (json.RawMessage, error)
	FetchRepositoryLanguages(ctx context.Context, owner, repo string) (json.RawMessage, error)
	FetchUserStarredRepos(ctx context.Context, username string) (json.RawMessage, error)
}

// ErrorResponse represents an error relayed to the caller
type ErrorResponse struct {
	Message string `json:"message"`
}

// respond writes either the upstream payload or the mapped error
func respond(c *gin.Context, data json.RawMessage, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	if apiErr, ok := github.AsAPIError(err); ok {
		message = apiErr.Message
		if apiErr.Status != 0 {
			status = apiErr.Status
		}
	}

	log.Printf("[%s] %s %s: upstream error (status %d): %v",
		middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, status, err)

	c.JSON(status, ErrorResponse{Message: message})
}

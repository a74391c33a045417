package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"petoverflow/internal/rank"
	"petoverflow/internal/service"
	"petoverflow/pkg/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paging reads the size and offset query parameters. A malformed value gets a
// 400 and ok=false; range checks are left to the listing services.
func paging(c *gin.Context) (size, offset int, ok bool) {
	size = defaultPageSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid size parameter", "")
			return 0, 0, false
		}
		size = n
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid offset parameter", "")
			return 0, 0, false
		}
		offset = n
	}
	return size, offset, true
}

// idParam reads a numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+name+" parameter", "")
		return 0, false
	}
	return uint(n), true
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAnswerNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, rank.ErrInvalidPage):
		response.Error(c, http.StatusBadRequest, "Invalid pagination arguments", "")
	case errors.Is(err, service.ErrUsernameTaken):
		response.Error(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error(), "")
	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error", "")
	}
}

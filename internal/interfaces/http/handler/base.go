package handler

import (
	"errors"
	"net/http"

	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/interfaces/http/dto"
	"github.com/fruitscm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getOrgID extracts the organization scope resolved by the auth middleware
func getOrgID(c *gin.Context) (uuid.UUID, error) {
	orgStr := middleware.GetOrganizationID(c)
	if orgStr == "" {
		return uuid.Nil, errors.New("organization scope not found in context")
	}
	return uuid.Parse(orgStr)
}

// getUserID extracts the authenticated user ID, or nil when unauthenticated
func getUserID(c *gin.Context) *uuid.UUID {
	userStr := middleware.GetUserID(c)
	if userStr == "" {
		return nil
	}
	id, err := uuid.Parse(userStr)
	if err != nil {
		return nil
	}
	return &id
}

// Success sends a 200 response with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.Response{Code: 201, Data: data, Message: "created"})
}

// Error sends an error response; the envelope code mirrors the HTTP status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(statusCode, message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, message)
}

// HandleError converts domain errors to HTTP responses. Unknown error types
// surface as 500 without leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		h.Error(c, statusCode, domainErr.Message)
		return
	}
	h.Error(c, http.StatusInternalServerError, "An unexpected error occurred")
}

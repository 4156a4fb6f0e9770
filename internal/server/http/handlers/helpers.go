package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/adapter/objectstore"
	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/server/http/dto"
	"github.com/polkiloo/printshop/internal/server/http/middleware"
)

const (
	internalErrorMessage  = "internal server error"
	operationFailedPrefix = "operation failed: "
)

// CurrentPrincipal extracts the authenticated caller from context.
func CurrentPrincipal(c *gin.Context) model.Principal {
	principal, _ := middleware.CurrentPrincipal(c)
	return principal
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

// respondError maps domain errors to HTTP responses. Unexpected errors are
// attached to the gin context for the request logger and answered with their
// cause so staff can tell what failed.
func respondError(c *gin.Context, err error) {
	if respondDomainError(c, err) {
		return
	}
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, operationFailedPrefix+err.Error())
}

// respondPrivilegedError is respondError for account operations. The cause of
// an unexpected failure is only logged.
func respondPrivilegedError(c *gin.Context, err error) {
	if respondDomainError(c, err) {
		return
	}
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, internalErrorMessage)
}

func respondDomainError(c *gin.Context, err error) bool {
	var balanceDue *domainErrors.BalanceDueError
	switch {
	case errors.As(err, &balanceDue):
		c.AbortWithStatusJSON(http.StatusConflict, dto.BalanceDueResponse{
			Error:     err.Error(),
			Remaining: balanceDue.Remaining,
		})
	case errors.Is(err, domainErrors.ErrInvalidInput),
		errors.Is(err, domainErrors.ErrInvalidRole),
		errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidColor),
		errors.Is(err, domainErrors.ErrUnknownStatus),
		errors.Is(err, domainErrors.ErrUnknownCurrency),
		errors.Is(err, domainErrors.ErrPaymentMethodRequired),
		errors.Is(err, domainErrors.ErrInvalidPaymentMethod),
		errors.Is(err, domainErrors.ErrInvalidPaymentStatus):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domainErrors.ErrForbidden):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrGuardedStatus):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domainErrors.ErrRequiredStatusMissing):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, objectstore.ErrNotConfigured):
		_ = c.Error(err)
		abortWithError(c, http.StatusServiceUnavailable, "file storage is not configured")
	default:
		return false
	}
	return true
}

func refreshPaths(paths []model.ReadPath) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, string(p))
	}
	return out
}

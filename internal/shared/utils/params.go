package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/shared/constants"
	"cabinet/internal/shared/errors"
)

// ParseUUIDParam reads a UUID path parameter, returning a validation error
// naming the entity when it is missing or malformed.
func ParseUUIDParam(c *gin.Context, paramName, entityName string) (string, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", errors.NewValidationError("invalid " + entityName + " ID format")
	}

	return parsed.String(), nil
}

// GetUserID returns the authenticated user set by the auth middleware.
func GetUserID(c *gin.Context) (string, error) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", errors.NewUnauthorizedError("user not authenticated")
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", errors.NewUnauthorizedError("user not authenticated")
	}
	return userID, nil
}

// GetCabinetMember returns the active membership set by the cabinet middleware.
func GetCabinetMember(c *gin.Context) (*cabinet.Member, error) {
	value, exists := c.Get(constants.ContextKeyMember)
	if !exists {
		return nil, errors.NewForbiddenError("cabinet membership required")
	}
	member, ok := value.(*cabinet.Member)
	if !ok || member == nil {
		return nil, errors.NewForbiddenError("cabinet membership required")
	}
	return member, nil
}

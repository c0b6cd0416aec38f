package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetOperatorID extracts the operator ID from the Gin context
func GetOperatorID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get("operator_id")
	if !exists {
		return nil
	}
	operatorID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &operatorID
}

// GetOperatorRole extracts the operator role from the Gin context
func GetOperatorRole(c *gin.Context) string {
	role, exists := c.Get("operator_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// GetCasa resolves the register number for the request: the ?casa query
// parameter when present, otherwise the register baked into the token,
// otherwise the deployment's configured register.
func GetCasa(c *gin.Context, fallback int) int {
	if raw := c.Query("casa"); raw != "" {
		if casa, err := strconv.Atoi(raw); err == nil && casa > 0 {
			return casa
		}
	}
	if value, exists := c.Get("operator_casa"); exists {
		if casa, ok := value.(int); ok && casa > 0 {
			return casa
		}
	}
	if fallback > 0 {
		return fallback
	}
	return 1
}

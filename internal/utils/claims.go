package utils

import (
	"errors"

	"origo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetOfficerClaims extracts the officer claims from the Fiber context.
// It returns an error if the claims are missing or of an invalid type.
func GetOfficerClaims(c *fiber.Ctx) (*models.OfficerClaims, error) {
	v := c.Locals("claims")
	if v == nil {
		return nil, errors.New("claims not found in context")
	}

	claims, ok := v.(*models.OfficerClaims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}

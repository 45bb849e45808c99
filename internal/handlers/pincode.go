package handlers

import (
	"errors"

	"origo/internal/services/pincode"
	"origo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// PincodeHandler resolves postal codes for the address forms.
type PincodeHandler struct {
	pincodes pincode.Service
}

func NewPincodeHandler(svc pincode.Service) *PincodeHandler {
	return &PincodeHandler{pincodes: svc}
}

// Lookup resolves a 6-digit postal code to its city and state.
func (h *PincodeHandler) Lookup(c *fiber.Ctx) error {
	result, err := h.pincodes.Lookup(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, pincode.ErrInvalidPincode) {
			return utils.BadRequest(c, err.Error())
		}
		return upstreamError(c, err)
	}
	return utils.Success(c, result)
}

package handlers

import (
	"errors"

	"origo/internal/leadstore"
	"origo/internal/origination"
	"origo/internal/services/otp"
	"origo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type OTPHandler struct {
	otpService otp.Service
}

func NewOTPHandler(otpService otp.Service) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

// Start registers the draft's mobile number upstream and triggers OTP
// delivery.
func (h *OTPHandler) Start(c *fiber.Ctx) error {
	var input struct {
		Mobile string `json:"mobile" validate:"required,len=10,numeric"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, "Mobile number must be 10 digits")
	}

	appID, err := h.otpService.StartVerification(c.Context(), c.Params("id"), input.Mobile)
	if err != nil {
		if errors.Is(err, otp.ErrInvalidMobile) {
			return utils.BadRequest(c, "Mobile number must be 10 digits starting 6-9")
		}
		if errors.Is(err, leadstore.ErrLeadNotFound) {
			return storeError(c, err)
		}
		return upstreamError(c, err)
	}
	return utils.Success(c, fiber.Map{"appId": appID, "otp_sent": true})
}

// Verify confirms the code and promotes the draft into the leads list.
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var input struct {
		Code string `json:"code" validate:"required,min=4,max=8,numeric"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, "OTP code is required")
	}

	lead, err := h.otpService.Verify(c.Context(), c.Params("id"), input.Code)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrNoApplication):
			return utils.BadRequest(c, "Start mobile verification first")
		case errors.Is(err, origination.ErrInvalidOTP):
			return utils.BadRequest(c, "Invalid OTP code")
		case errors.Is(err, leadstore.ErrLeadNotFound):
			return storeError(c, err)
		}
		return upstreamError(c, err)
	}
	return utils.Success(c, lead)
}

// Resend re-triggers OTP delivery.
func (h *OTPHandler) Resend(c *fiber.Ctx) error {
	if err := h.otpService.Resend(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, otp.ErrNoApplication) {
			return utils.BadRequest(c, "Start mobile verification first")
		}
		return upstreamError(c, err)
	}
	return utils.Success(c, fiber.Map{"otp_sent": true})
}

package handlers

import (
	"errors"
	"time"

	"origo/internal/leadstore"
	"origo/internal/models"
	"origo/internal/services/payment"
	"origo/internal/utils"
	"origo/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler serves step 10: fee collection through the gateway.
type PaymentHandler struct {
	store    *leadstore.Store
	payments payment.Service
}

func NewPaymentHandler(store *leadstore.Store, payments payment.Service) *PaymentHandler {
	return &PaymentHandler{store: store, payments: payments}
}

type createPaymentRequest struct {
	FeeType string  `json:"feeType"`
	Amount  float64 `json:"amount"`
	Remarks string  `json:"remarks"`
}

// CreateSession opens a gateway checkout session and records it on the
// lead with status Pending.
func (h *PaymentHandler) CreateSession(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}

	var input createPaymentRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.PaymentRequest(input.FeeType, input.Amount)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	session, err := h.payments.CreateSession(c.Context(), lead, input.FeeType, input.Amount, input.Remarks)
	if err != nil {
		return paymentError(c, err)
	}

	updated, err := h.store.AddPayment(lead.ID, *session)
	if err != nil {
		return storeError(c, err)
	}

	step10 := models.PaymentCollection{FeeType: input.FeeType, Amount: input.Amount, Remarks: input.Remarks}
	if updated, err = h.store.UpdateLead(lead.ID, models.LeadUpdate{
		FormData: &models.FormDataUpdate{Step10: &step10},
	}); err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"lead": updated, "payment": session},
	})
}

// MarkSent stamps the moment the pay-link was shared with the applicant.
func (h *PaymentHandler) MarkSent(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}

	now := time.Now()
	updated, err := h.store.UpdatePayment(lead.ID, c.Params("paymentId"), models.PaymentPatch{SentAt: &now})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// Poll asks the gateway for the session's current state and folds it back
// into the lead. Paid sessions get their received timestamp stamped once.
func (h *PaymentHandler) Poll(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}

	paymentID := c.Params("paymentId")
	var session *models.PaymentSession
	for i := range lead.Payments {
		if lead.Payments[i].ID == paymentID {
			session = &lead.Payments[i]
			break
		}
	}
	if session == nil {
		return storeError(c, leadstore.ErrPaymentNotFound)
	}

	// Settled sessions never change again; skip the gateway round-trip.
	if session.Status != models.PaymentPending {
		return utils.Success(c, lead)
	}

	status, receivedAt, err := h.payments.PollStatus(c.Context(), session)
	if err != nil {
		return paymentError(c, err)
	}
	if status == session.Status {
		return utils.Success(c, lead)
	}

	patch := models.PaymentPatch{Status: &status}
	if receivedAt != nil && session.Timeline.ReceivedAt == nil {
		patch.ReceivedAt = receivedAt
	}
	updated, err := h.store.UpdatePayment(lead.ID, paymentID, patch)
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// Delete removes a payment session record from the lead.
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}

	updated, err := h.store.DeletePayment(lead.ID, c.Params("paymentId"))
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

func paymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, payment.ErrInvalidAmount), errors.Is(err, payment.ErrInvalidFeeType):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, payment.ErrGatewayFailure):
		return utils.BadGateway(c, "payment gateway unavailable")
	default:
		return utils.InternalError(c, err.Error())
	}
}

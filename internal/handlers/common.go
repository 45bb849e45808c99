// Package handlers exposes the wizard's step pages as HTTP endpoints.
// Each handler follows the same flow the UI did: validate the slice of
// form data, call the upstream origination endpoint directly, then merge
// the result into the lead store so every subscribed view stays current.
package handlers

import (
	"errors"

	"origo/internal/leadstore"
	"origo/internal/models"
	"origo/internal/origination"
	"origo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// upstreamError maps an origination client failure onto the response: a
// structured API error keeps the server's message and status, everything
// else is a bad gateway.
func upstreamError(c *fiber.Ctx, err error) error {
	if apiErr, ok := origination.AsAPIError(err); ok {
		return utils.Error(c, apiErr.Status, apiErr.Message)
	}
	if errors.Is(err, origination.ErrUnauthorized) {
		return utils.BadGateway(c, "origination service rejected our credentials")
	}
	return utils.BadGateway(c, "origination service unavailable")
}

// storeError maps lead store failures.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, leadstore.ErrLeadNotFound):
		return utils.NotFound(c, "Lead not found")
	case errors.Is(err, leadstore.ErrCoApplicantNotFound):
		return utils.NotFound(c, "Co-applicant not found")
	case errors.Is(err, leadstore.ErrPaymentNotFound):
		return utils.NotFound(c, "Payment session not found")
	case errors.Is(err, leadstore.ErrInvalidTransition):
		return utils.Conflict(c, "Status transition not allowed")
	default:
		return utils.InternalError(c, err.Error())
	}
}

// findLead resolves a path id against the store, checking the current
// draft as well as the reconciled list.
func findLead(store *leadstore.Store, id string) (*models.Lead, error) {
	if current := store.CurrentLead(); current != nil && (current.ID == id || current.AppID == id) {
		return current, nil
	}
	for _, l := range store.Leads() {
		if l.ID == id || (l.AppID != "" && l.AppID == id) {
			cp := l
			return &cp, nil
		}
	}
	return nil, leadstore.ErrLeadNotFound
}

// lockedResponse refuses step mutations on terminal leads; submitted and
// decided applications are read-only in the wizard.
func lockedResponse(c *fiber.Ctx) error {
	return utils.Conflict(c, "Application is no longer editable")
}

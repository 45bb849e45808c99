package handlers

import (
	"context"
	"errors"

	"origo/internal/leadstore"
	"origo/internal/models"
	"origo/internal/origination"
	"origo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type LeadHandler struct {
	store  *leadstore.Store
	client *origination.Client
}

func NewLeadHandler(store *leadstore.Store, client *origination.Client) *LeadHandler {
	return &LeadHandler{store: store, client: client}
}

// ListLeads refreshes the summary from the backend and returns the
// reconciled list. A refresh failure still returns the last known list,
// with the error message alongside for the dashboard banner.
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	refreshErr := h.store.RefreshLeads(c.Context())

	resp := fiber.Map{
		"leads": h.store.Leads(),
		"stats": h.store.Stats(),
	}
	if refreshErr != nil {
		resp["refresh_error"] = h.store.LastError()
	}
	return utils.Success(c, resp)
}

// Stats returns the backend-sourced dashboard counts without forcing a
// refresh.
func (h *LeadHandler) Stats(c *fiber.Ctx) error {
	return utils.Success(c, h.store.Stats())
}

// CreateLead starts a new local draft. The draft is current-only until
// OTP verification promotes it into the leads list.
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	lead := h.store.CreateLead()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": lead})
}

// GetLead returns the fully-detailed lead, fetching from the backend
// unless the detail payload is already cached locally.
func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	id := c.Params("id")
	force := c.QueryBool("force")

	lead, err := h.store.FetchLeadDetails(c.Context(), id, force)
	if err != nil {
		if errors.Is(err, origination.ErrMissingAppID) {
			return utils.BadRequest(c, "Application id is required")
		}
		return upstreamError(c, err)
	}
	return utils.Success(c, lead)
}

// OpenLead points the wizard at an existing lead without hitting the
// backend.
func (h *LeadHandler) OpenLead(c *fiber.Ctx) error {
	if err := h.store.SetCurrentLead(c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, h.store.CurrentLead())
}

// DeleteLead removes the lead from the working set.
func (h *LeadHandler) DeleteLead(c *fiber.Ctx) error {
	if err := h.store.DeleteLead(c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "Lead deleted"})
}

// UpdateStatus applies an admin-style status change, still subject to the
// lifecycle transition table.
func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	var input struct {
		Status models.LeadStatus `json:"status" validate:"required,oneof=Draft Submitted Approved Disbursed Rejected"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, "Unknown status")
	}

	lead, err := h.store.UpdateLeadStatus(c.Params("id"), input.Status)
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, lead)
}

// SubmitLead finalizes the application upstream and transitions the local
// status to Submitted.
func (h *LeadHandler) SubmitLead(c *fiber.Ctx) error {
	id := c.Params("id")
	lead, err := findLead(h.store, id)
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}
	if lead.AppID == "" {
		return utils.BadRequest(c, "Mobile verification must complete before submission")
	}

	if _, err := h.client.SubmitApplication(c.Context(), lead.AppID); err != nil {
		return upstreamError(c, err)
	}

	submitted, err := h.store.SubmitLead(id)
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, submitted)
}

// RefreshInBackground is used by the dashboard's pull-to-refresh: it
// kicks a reconcile without holding the request open.
func (h *LeadHandler) RefreshInBackground(c *fiber.Ctx) error {
	go func() {
		// Detached from the request lifetime on purpose.
		_ = h.store.RefreshLeads(context.Background())
	}()
	return c.SendStatus(fiber.StatusAccepted)
}

package handlers

import (
	"origo/internal/leadstore"
	"origo/internal/services/bre"
	"origo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// BREHandler serves step 9: the business-rule-engine risk assessment.
type BREHandler struct {
	store *leadstore.Store
	bre   bre.Service
}

func NewBREHandler(store *leadstore.Store, svc bre.Service) *BREHandler {
	return &BREHandler{store: store, bre: svc}
}

// Questions fetches the rule-engine questionnaire for the lead.
func (h *BREHandler) Questions(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.AppID == "" {
		return utils.BadRequest(c, "Risk assessment requires a verified application")
	}

	questions, err := h.bre.Questions(c.Context(), lead.AppID)
	if err != nil {
		return upstreamError(c, err)
	}
	return utils.Success(c, fiber.Map{"questions": questions})
}

// Trigger runs the rule engine and records the decision under step 9.
func (h *BREHandler) Trigger(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}
	if lead.AppID == "" {
		return utils.BadRequest(c, "Risk assessment requires a verified application")
	}

	assessment, err := h.bre.Trigger(c.Context(), lead.ID, lead.AppID)
	if err != nil {
		return breError(c, err)
	}
	return utils.Success(c, assessment)
}

type breAnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

// SubmitAnswers posts the officer's questionnaire answers and records the
// resulting decision.
func (h *BREHandler) SubmitAnswers(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}
	if lead.AppID == "" {
		return utils.BadRequest(c, "Risk assessment requires a verified application")
	}

	var input breAnswersRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if len(input.Answers) == 0 {
		return utils.BadRequest(c, "At least one answer is required")
	}

	assessment, err := h.bre.SubmitAnswers(c.Context(), lead.ID, lead.AppID, input.Answers)
	if err != nil {
		return breError(c, err)
	}
	return utils.Success(c, assessment)
}

// breError distinguishes store failures from upstream ones; the service
// touches both.
func breError(c *fiber.Ctx, err error) error {
	switch err {
	case leadstore.ErrLeadNotFound, leadstore.ErrInvalidTransition:
		return storeError(c, err)
	default:
		return upstreamError(c, err)
	}
}

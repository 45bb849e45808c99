package handlers

import (
	"io"
	"time"

	"origo/internal/leadstore"
	"origo/internal/models"
	"origo/internal/origination"
	"origo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// 10 MB per uploaded file.
const maxDocumentSize = 10 << 20

var allowedDocumentKinds = map[string]bool{
	"pan_card":       true,
	"aadhaar":        true,
	"bank_statement": true,
	"salary_slip":    true,
	"itr":            true,
	"property_paper": true,
	"photo":          true,
	"other":          true,
}

// DocumentHandler serves step 8: KYC and income document uploads.
type DocumentHandler struct {
	store  *leadstore.Store
	client *origination.Client
}

func NewDocumentHandler(store *leadstore.Store, client *origination.Client) *DocumentHandler {
	return &DocumentHandler{store: store, client: client}
}

// Upload streams one multipart file to the origination backend and
// records the acknowledgement under step 8.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}
	if lead.AppID == "" {
		return utils.BadRequest(c, "Documents require a verified application")
	}

	kind := c.FormValue("kind")
	if !allowedDocumentKinds[kind] {
		return utils.BadRequest(c, "Unsupported document kind")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing file upload")
	}
	if fileHeader.Size > maxDocumentSize {
		return utils.BadRequest(c, "File exceeds the 10 MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.InternalError(c, "Failed to read upload")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return utils.InternalError(c, "Failed to read upload")
	}

	ack, err := h.client.UploadDocument(c.Context(), lead.AppID, kind, fileHeader.Filename, data)
	if err != nil {
		return upstreamError(c, err)
	}

	record := models.DocumentRecord{
		ID:         ack.DocumentID,
		Kind:       kind,
		FileName:   fileHeader.Filename,
		Reference:  ack.Reference,
		UploadedAt: time.Now(),
	}

	step8 := models.DocumentUploads{Documents: append(leadDocuments(lead), record)}
	step := 9
	updated, err := h.store.UpdateLead(lead.ID, models.LeadUpdate{
		CurrentStep: maxStep(lead.CurrentStep, &step),
		FormData:    &models.FormDataUpdate{Step8: &step8},
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// Delete drops a recorded document from step 8. The backend keeps its
// copy; only the intake record is removed.
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	docID := c.Params("documentId")
	existing := leadDocuments(lead)
	remaining := make([]models.DocumentRecord, 0, len(existing))
	for _, d := range existing {
		if d.ID != docID {
			remaining = append(remaining, d)
		}
	}
	if len(remaining) == len(existing) {
		return utils.NotFound(c, "Document not found")
	}

	step8 := models.DocumentUploads{Documents: remaining}
	updated, err := h.store.UpdateLead(lead.ID, models.LeadUpdate{
		FormData: &models.FormDataUpdate{Step8: &step8},
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

func leadDocuments(lead *models.Lead) []models.DocumentRecord {
	if lead.FormData.Step8 == nil {
		return nil
	}
	return lead.FormData.Step8.Documents
}

package repositories

import (
	"encoding/json"
	"fmt"

	"origo/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DraftRepository persists write-through lead snapshots so drafts survive
// a process restart. It satisfies the lead store's DraftPersister.
type DraftRepository interface {
	SaveSnapshot(lead *models.Lead) error
	DeleteSnapshot(leadID string) error
	LoadSnapshots() ([]models.Lead, error)
}

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates the GORM-backed draft repository.
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) SaveSnapshot(lead *models.Lead) error {
	raw, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to marshal lead snapshot: %w", err)
	}
	var snapshot models.JSON
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return fmt.Errorf("failed to build lead snapshot: %w", err)
	}

	record := models.DraftRecord{
		LeadID:   lead.ID,
		AppID:    lead.AppID,
		Snapshot: snapshot,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lead_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"app_id", "snapshot", "updated_at"}),
	}).Create(&record).Error
}

func (r *draftRepository) DeleteSnapshot(leadID string) error {
	return r.db.Where("lead_id = ? OR app_id = ?", leadID, leadID).
		Delete(&models.DraftRecord{}).Error
}

// LoadSnapshots rehydrates all persisted leads, used at startup to
// repopulate the store with drafts that never reached the backend.
func (r *draftRepository) LoadSnapshots() ([]models.Lead, error) {
	var records []models.DraftRecord
	if err := r.db.Order("updated_at desc").Find(&records).Error; err != nil {
		return nil, err
	}

	leads := make([]models.Lead, 0, len(records))
	for _, rec := range records {
		raw, err := json.Marshal(rec.Snapshot)
		if err != nil {
			continue
		}
		var lead models.Lead
		if err := json.Unmarshal(raw, &lead); err != nil {
			continue
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

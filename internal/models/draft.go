package models

import "gorm.io/gorm"

// DraftRecord is a write-through snapshot of a locally-created lead, so a
// draft started before OTP verification survives a process restart. The
// in-memory store remains authoritative; snapshots are best-effort.
type DraftRecord struct {
	gorm.Model
	LeadID    string `gorm:"uniqueIndex;not null"`
	AppID     string `gorm:"index"`
	OfficerID uint   `gorm:"index"`
	Snapshot  JSON   `gorm:"type:jsonb"`
}

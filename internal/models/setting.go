package models

import "time"

// Setting value type tags. Advisory only, not enforced by storage.
const (
	SettingTypeText    = "text"
	SettingTypeNumber  = "number"
	SettingTypeBoolean = "boolean"
)

// SettingModel is a key/value site setting. Rows are upserted by key and never
// deleted by the normal flow.
type SettingModel struct {
	ID        uint      `json:"id"    gorm:"primaryKey"`
	Key       string    `json:"key"   gorm:"uniqueIndex;size:191;not null"`
	Value     string    `json:"value" gorm:"type:text"`
	Type      string    `json:"type"  gorm:"size:20;default:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SettingModel) TableName() string { return "settings" }

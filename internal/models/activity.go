package models

import "time"

// ActivityLogModel is an append-only audit entry. The application never
// updates or deletes rows; UserID survives user deletion as NULL.
type ActivityLogModel struct {
	ID         uint       `json:"id"          gorm:"primaryKey"`
	UserID     *uint      `json:"user_id"     gorm:"index"`
	User       *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Action     string     `json:"action"      gorm:"size:191;not null"`
	EntityType string     `json:"entity_type" gorm:"size:50"`
	EntityID   *uint      `json:"entity_id"`
	Details    string     `json:"details"     gorm:"type:text"`
	IPAddress  string     `json:"ip_address"  gorm:"size:64"`
	CreatedAt  time.Time  `json:"created_at"  gorm:"index"`
}

func (ActivityLogModel) TableName() string { return "activity_logs" }

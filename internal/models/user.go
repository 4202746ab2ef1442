package models

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

// User account statuses.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// UserModel is a CMS account.
type UserModel struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;size:191;not null"`
	Email    string `json:"email"    gorm:"uniqueIndex;size:191;not null"`
	Password string `json:"-"        gorm:"not null"`
	Role     string `json:"role"     gorm:"size:20;default:user;index"`
	Avatar   string `json:"avatar"`
	Status   string `json:"status"   gorm:"size:20;default:active;index"`
}

func (UserModel) TableName() string { return "users" }

// IsAdmin reports whether the user holds the admin role.
func (u *UserModel) IsAdmin() bool { return u.Role == RoleAdmin }

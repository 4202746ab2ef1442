package auth

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qalam/cms-core/internal/middleware"
	"github.com/qalam/cms-core/internal/models"
	"github.com/qalam/cms-core/internal/pkg/jwt"
)

var (
	// errBadCredentials covers both an unknown email and a wrong password so
	// responses never reveal which one it was.
	errBadCredentials   = errors.New("bad credentials")
	errAccountInactive  = errors.New("account inactive")
	errDuplicateAccount = errors.New("duplicate username or email")
	errWrongPassword    = errors.New("wrong current password")
)

// Service implements authentication and profile management.
type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	tokenTTL time.Duration
}

func NewService(db *gorm.DB, log *zap.Logger, tokenTTL time.Duration) *Service {
	return &Service{db: db, log: log, tokenTTL: tokenTTL}
}

// Login checks the email/password pair and issues a token. A login activity
// entry is recorded on success only.
func (s *Service) Login(req loginRequest, ip string) (*loginResponse, error) {
	var user models.UserModel
	err := s.db.Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errBadCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, errAccountInactive
	}

	token, err := jwt.Sign(user.ID, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.recordActivity(&user.ID, middleware.ActionLogin, ip)
	user.Password = ""
	return &loginResponse{Token: token, User: &user}, nil
}

// Register creates a regular account. Role and status are never taken from
// the request.
func (s *Service) Register(req registerRequest) (*models.UserModel, error) {
	var count int64
	err := s.db.Model(&models.UserModel{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleUser,
		Status:   models.UserStatusActive,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

// UpdateProfile changes the caller's own account. Changing the password
// requires the current one.
func (s *Service) UpdateProfile(userID uint, req updateProfileRequest) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	if req.Username != "" && req.Username != user.Username || req.Email != "" && req.Email != user.Email {
		username, email := user.Username, user.Email
		if req.Username != "" {
			username = req.Username
		}
		if req.Email != "" {
			email = req.Email
		}
		var count int64
		err := s.db.Model(&models.UserModel{}).
			Where("(username = ? OR email = ?) AND id <> ?", username, email, userID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errDuplicateAccount
		}
	}

	updates := map[string]any{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	if req.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
			return nil, errWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

// Logout only records the activity entry; tokens stay valid until expiry.
func (s *Service) Logout(userID uint, ip string) {
	s.recordActivity(&userID, middleware.ActionLogout, ip)
}

func (s *Service) recordActivity(userID *uint, action, ip string) {
	entry := models.ActivityLogModel{
		UserID:     userID,
		Action:     action,
		EntityType: "user",
		EntityID:   userID,
		IPAddress:  ip,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

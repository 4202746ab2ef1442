package user

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qalam/cms-core/internal/models"
	"github.com/qalam/cms-core/internal/pkg/pagination"
)

var (
	errUserNotFound  = errors.New("user not found")
	errDuplicateUser = errors.New("duplicate username or email")
	errDeleteSelf    = errors.New("cannot delete own account")
)

type createRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"     binding:"omitempty,oneof=admin editor user"`
	Status   string `json:"status"   binding:"omitempty,oneof=active inactive"`
}

type updateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"   binding:"omitempty,oneof=admin editor user"`
	Status   string `json:"status" binding:"omitempty,oneof=active inactive"`
	Avatar   string `json:"avatar"`
}

type listFilter struct {
	Search string
	Role   string
	Status string
}

// Service implements user administration.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns one page of users, newest first, password hashes omitted.
func (s *Service) List(q pagination.Query, f listFilter) ([]models.UserModel, pagination.Meta, error) {
	tx := s.db.Model(&models.UserModel{}).
		Select("id, username, email, role, avatar, status, created_at, updated_at")
	if f.Search != "" {
		like := "%" + f.Search + "%"
		tx = tx.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	if f.Role != "" {
		tx = tx.Where("role = ?", f.Role)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	tx = tx.Order("created_at DESC, id DESC")

	var users []models.UserModel
	meta, err := pagination.Paginate(tx, q, &users)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, meta, nil
}

// Get returns a single user by id.
func (s *Service) Get(id uint) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Select("id, username, email, role, avatar, status, created_at, updated_at").
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create adds an account with an admin-chosen role and status.
func (s *Service) Create(req createRequest) (*models.UserModel, error) {
	var count int64
	err := s.db.Model(&models.UserModel{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
		Status:   req.Status,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

// Update changes the named fields only; empty fields keep their value.
func (s *Service) Update(id uint, req updateRequest) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Username != "" || req.Email != "" {
		username, email := user.Username, user.Email
		if req.Username != "" {
			username = req.Username
		}
		if req.Email != "" {
			email = req.Email
		}
		var count int64
		err := s.db.Model(&models.UserModel{}).
			Where("(username = ? OR email = ?) AND id <> ?", username, email, id).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errDuplicateUser
		}
	}

	updates := map[string]any{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
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
	return s.Get(id)
}

// Delete removes the user together with their articles. Audit entries are
// kept with their user reference cleared. Admins cannot delete themselves.
func (s *Service) Delete(id, callerID uint) error {
	if id == callerID {
		return errDeleteSelf
	}

	var user models.UserModel
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errUserNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ActivityLogModel{}).
			Where("user_id = ?", id).
			Update("user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).
			Delete(&models.ArticleModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserModel{}, id).Error
	})
}

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/utils"
	"github.com/taskhub/backend/pkg/logger"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name" binding:"max=100"`
}

// LoginRequest accepts either a username or an email as the identifier.
type LoginRequest struct {
	Username string `json:"username" binding:"required_without=Email"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expireAt"`
	User     *models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}

type UserListRequest struct {
	PageRequest
	Role   string `form:"role"`
	Search string `form:"search"`
}

// Register creates a member account and signs the caller in.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.ensureUnique(0, req.Username, req.Email); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Role:     models.RoleMember,
		IsActive: true,
	}
	if err := models.Validate(&user); err != nil {
		return nil, err
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, conflict(err, "username or email already registered")
	}

	logger.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return s.issue(&user)
}

// Login verifies credentials and returns a fresh bearer token.
func (s *AuthService) Login(req *LoginRequest) (*AuthResult, error) {
	var user models.User
	query := s.db
	if req.Username != "" {
		query = query.Where("username = ?", strings.TrimSpace(req.Username))
	} else {
		query = query.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email)))
	}
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, response.NewUnauthorized("account is disabled")
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid credentials")
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.db.Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}

	return s.issue(&user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:    token,
		ExpireAt: time.Now().Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
		User:     user,
	}, nil
}

// Authenticate resolves a bearer token to an Actor. The role is read from the
// store so role changes and removals apply to tokens already issued.
func (s *AuthService) Authenticate(token string) (*Actor, error) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, response.NewUnauthorized("invalid or expired token")
	}

	var user models.User
	if err := s.db.Select("id", "username", "role", "is_active").First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("user no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, response.NewUnauthorized("account is disabled")
	}

	return &Actor{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// UpdateProfile patches the caller's own profile. Role is not editable here.
func (s *AuthService) UpdateProfile(actor *Actor, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(actor.UserID)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, 5)
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
		fields = append(fields, "username")
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		fields = append(fields, "email")
	}
	if req.Name != nil {
		user.Name = *req.Name
		fields = append(fields, "name")
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
		fields = append(fields, "avatar")
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
		fields = append(fields, "bio")
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := models.Validate(user); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(user.ID, user.Username, user.Email); err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Select(fields).Updates(user).Error; err != nil {
		return nil, conflict(err, "username or email already registered")
	}
	return user, nil
}

func (s *AuthService) ChangePassword(actor *Actor, req *ChangePasswordRequest) error {
	user, err := s.GetUserByID(actor.UserID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return response.NewBadRequest("incorrect old password")
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password", hashed).Error
}

// ListUsers is restricted to admins and managers.
func (s *AuthService) ListUsers(actor *Actor, req *UserListRequest) (*Page[models.User], error) {
	if err := requireElevated(actor); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.User{})
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	query = applySearch(query, req.Search, "username", "email", "name")

	return paginate[models.User](query, req.PageRequest, "created_at DESC", nil)
}

// DeleteUser soft-removes an account. Admins and managers only; managers may
// not remove admins, and nobody removes themselves.
func (s *AuthService) DeleteUser(actor *Actor, id uint) error {
	if err := requireElevated(actor); err != nil {
		return err
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	if user.ID == actor.UserID {
		return response.NewBadRequest("you cannot delete your own account")
	}
	if user.Role == models.RoleAdmin && !actor.IsAdmin() {
		return response.NewForbidden("only an admin can delete another admin")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// AssignRole sets a user's global role. Admin only.
func (s *AuthService) AssignRole(actor *Actor, id uint, role string) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbidden("only an admin can assign roles")
	}
	if !models.IsValidUserRole(role) {
		return nil, response.NewBadRequestf("role must be one of %s", strings.Join(models.UserRoles, ", "))
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user.ID == actor.UserID && role != models.RoleAdmin {
		return nil, response.NewBadRequest("you cannot demote yourself")
	}

	if err := s.db.Model(user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

func (s *AuthService) ensureUnique(selfID uint, username, email string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Unscoped().
		Where("username = ? AND id <> ?", username, selfID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return response.NewConflict("username already taken")
	}
	if err := s.db.Model(&models.User{}).Unscoped().
		Where("email = ? AND id <> ?", email, selfID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return response.NewConflict("email already registered")
	}
	return nil
}

// CreateAdminIfNotExists creates the bootstrap admin if no admin exists yet.
func (s *AuthService) CreateAdminIfNotExists(cfg *config.AuthConfig) error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: hashedPassword,
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info().Str("username", admin.Username).Msg("bootstrap admin created")
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", response.NewBadRequest("password must be at most 72 bytes")
	}
	return hashed, err
}

package services

import (
	"context"
	"errors"
	"strings"

	"fupa/constants"
	apperrors "fupa/errors"
	"fupa/models"
	"fupa/services/logger"
	"fupa/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

// GoogleVerifier checks a Google ID token and returns its email claim.
type GoogleVerifier func(ctx context.Context, token, audience string) (string, error)

// VerifyGoogleIDToken validates the token against Google's keys.
func VerifyGoogleIDToken(ctx context.Context, token, audience string) (string, error) {
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return "", err
	}
	email, _ := payload.Claims["email"].(string)
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return "", errors.New("google email is not verified")
	}
	if email == "" {
		return "", errors.New("google token has no email")
	}
	return email, nil
}

// AuthService is the credential side of the system. Creating an account
// never issues or replaces the caller's own token.
type AuthService struct {
	db             *gorm.DB
	secret         []byte
	tokenMinutes   int
	googleClientID string
	verifyGoogle   GoogleVerifier
	logger         logger.Logger
}

type AuthServiceOptions struct {
	DB             *gorm.DB
	Secret         []byte
	TokenMinutes   int
	GoogleClientID string
	VerifyGoogle   GoogleVerifier
	Logger         logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.VerifyGoogle == nil {
		opts.VerifyGoogle = VerifyGoogleIDToken
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.TokenMinutes <= 0 {
		opts.TokenMinutes = 60 * 24
	}
	return &AuthService{
		db:             opts.DB,
		secret:         opts.Secret,
		tokenMinutes:   opts.TokenMinutes,
		googleClientID: opts.GoogleClientID,
		verifyGoogle:   opts.VerifyGoogle,
		logger:         opts.Logger,
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// DefaultNameFromEmail is the display name given to new accounts.
func DefaultNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// CreateEmployee creates credentials and the matching user row and returns the uid.
func (s *AuthService) CreateEmployee(ctx context.Context, email, password, role string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = constants.RoleEmployee
	}
	if err := validator.ValidateEmail(email); err != nil {
		return "", err
	}
	if err := validator.ValidatePassword(password); err != nil {
		return "", err
	}
	if err := validator.ValidateRole(role); err != nil {
		return "", err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to check email", err)
	}
	if count > 0 {
		return "", apperrors.NewAppError(apperrors.ErrCodeUserExists, "Email "+email+" is already registered", nil)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         DefaultNameFromEmail(email),
		Role:         role,
		PasswordHash: hashed,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create user", err)
	}

	s.logger.Info("created %s account %s (%s)", role, user.ID, email)
	return user.ID, nil
}

// Login checks email and password and returns a fresh access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeInvalidPassword, "Wrong email or password", nil)
	}
	return s.issue(user)
}

// LoginWithGoogle maps a verified Google account onto an existing user.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (string, *models.User, error) {
	if s.googleClientID == "" {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Google sign-in is not configured", nil)
	}
	email, err := s.verifyGoogle(ctx, idToken, s.googleClientID)
	if err != nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid Google token", err)
	}
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "No account for "+email, nil)
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (string, *models.User, error) {
	token, err := GenerateToken(s.secret, UserInfo{UserID: user.ID, Role: user.Role}, s.tokenMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) userByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load user", err)
	}
	return &user, nil
}

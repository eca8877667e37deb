package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"brewpair/entity"
	"brewpair/repository"
	"brewpair/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MinPasswordLen = 6
	ResetTokenTTL  = time.Hour
)

type SignUpInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type AdminSignUpInput struct {
	SignUpInput
	CafeName string `json:"cafeName" binding:"required"`
}

// AuthService handles sign-up, sign-in and password resets.
type AuthService struct {
	userRepo  *repository.UserRepository
	shops     *ShopService
	jwtSecret string
	jwtTTL    time.Duration
	baseURL   string
	now       func() time.Time
}

func NewAuthService(repo *repository.UserRepository, shops *ShopService, secret string, ttl time.Duration, baseURL string) *AuthService {
	return &AuthService{
		userRepo:  repo,
		shops:     shops,
		jwtSecret: secret,
		jwtTTL:    ttl,
		baseURL:   strings.TrimRight(baseURL, "/"),
		now:       time.Now,
	}
}

// SignUp creates a customer account.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*entity.User, error) {
	return s.register(ctx, in, entity.RoleCustomer)
}

// SignUpAdmin creates an admin and a shop named after the cafe. A failed
// shop insert is logged and the account is still returned.
func (s *AuthService) SignUpAdmin(ctx context.Context, in AdminSignUpInput) (*entity.User, *entity.Shop, error) {
	cafe := strings.TrimSpace(in.CafeName)
	if cafe == "" {
		return nil, nil, invalid("cafeName is required")
	}
	user, err := s.register(ctx, in.SignUpInput, entity.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}
	shop, err := s.shops.CreateForOwner(ctx, cafe)
	if err != nil {
		log.Errorf("create shop for admin %s: %v", user.Email, err)
		return user, nil, nil
	}
	return user, shop, nil
}

func (s *AuthService) register(ctx context.Context, in SignUpInput, role entity.Role) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalid("a valid email is required")
	}
	if len(in.Password) < MinPasswordLen {
		return nil, invalid("password must be at least %d characters", MinPasswordLen)
	}

	count, err := s.userRepo.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(in.Name),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storeErr(err, "email")
	}
	return user, nil
}

// Login checks the credentials and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	return user, storeErr(err, "user")
}

// RequestPasswordReset issues a one-hour token and logs the reset link.
// Unknown emails return an empty token and no error so callers cannot
// tell which accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Infof("password reset requested for unknown email")
			return "", nil
		}
		return "", err
	}

	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	expires := s.now().Add(ResetTokenTTL)
	err = s.userRepo.Update(ctx, user.ID, map[string]any{
		"reset_token_hash": hashToken(token),
		"reset_expires_at": &expires,
	})
	if err != nil {
		return "", err
	}

	// No mailer; the link itself only goes to the debug log.
	log.Noticef("password reset issued for %s, valid until %s", user.Email, expires.Format(time.RFC3339))
	log.Debugf("password reset link for %s: %s/auth/reset-password?token=%s", user.Email, s.baseURL, url.QueryEscape(token))
	return token, nil
}

// CompletePasswordReset sets a new password and burns the token.
func (s *AuthService) CompletePasswordReset(ctx context.Context, token, password string) error {
	if len(password) < MinPasswordLen {
		return invalid("password must be at least %d characters", MinPasswordLen)
	}
	if token == "" {
		return invalid("reset token is invalid or expired")
	}
	user, err := s.userRepo.FindByResetToken(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("reset token is invalid or expired")
		}
		return err
	}
	if user.ResetExpiresAt == nil || s.now().After(*user.ResetExpiresAt) {
		return invalid("reset token is invalid or expired")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.Update(ctx, user.ID, map[string]any{
		"password":         string(hashed),
		"reset_token_hash": "",
		"reset_expires_at": nil,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"titlehub/internal/config"
	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/repository"
	"titlehub/internal/mailer"
	"titlehub/internal/middleware/auth"
	"titlehub/internal/throttle"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNoPendingCode  = errors.New("no pending confirmation code for this email")
	ErrInvalidCode    = errors.New("invalid confirmation code")
	ErrMailDispatch   = errors.New("failed to send confirmation email")
	ErrTooManyCodes   = errors.New("too many confirmation code requests")
	ErrInvalidToken   = errors.New("invalid token")
)

// Claims are the access token payload.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// RequestCode generates a fresh confirmation code for the email,
	// persists it (replacing any earlier code) and mails it out.
	RequestCode(ctx context.Context, email string) error
	// IssueToken redeems (email, code): finds or creates the user, removes
	// the pending record and returns a signed access token.
	IssueToken(ctx context.Context, email, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	signupRepo     repository.SignupRepository
	userRepo       repository.UserRepository
	mail           mailer.Mailer
	throttle       *throttle.Throttle
	jwtSecret      string
	accessTokenTTL time.Duration
	codeTTL        time.Duration
}

func NewAuthService(
	signupRepo repository.SignupRepository,
	userRepo repository.UserRepository,
	mail mailer.Mailer,
	th *throttle.Throttle,
	cfg *config.Config,
) AuthService {
	return &authService{
		signupRepo:     signupRepo,
		userRepo:       userRepo,
		mail:           mail,
		throttle:       th,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
		codeTTL:        cfg.SignupCodeTTL,
	}
}

func (s *authService) RequestCode(ctx context.Context, email string) error {
	ok, err := s.throttle.Allow(ctx, "signup:"+email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTooManyCodes
	}

	code := uuid.New().String()
	signup := &models.PendingSignup{
		Email:            email,
		ConfirmationCode: code,
		CreatedAt:        time.Now(),
	}

	// The pending record is written before dispatch is attempted: a failed
	// send leaves the record in place and the caller may simply retry.
	if err := s.signupRepo.Upsert(ctx, signup); err != nil {
		return fmt.Errorf("store pending signup: %w", err)
	}

	if err := s.mail.SendConfirmationCode(email, code); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDispatch, err)
	}
	return nil
}

func (s *authService) IssueToken(ctx context.Context, email, code string) (string, error) {
	signup, err := s.signupRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoPendingCode
		}
		return "", err
	}

	if signup.ConfirmationCode != code {
		return "", ErrInvalidCode
	}
	if s.codeTTL > 0 && time.Since(signup.CreatedAt) > s.codeTTL {
		return "", ErrInvalidCode
	}

	// Initial password is seeded from the confirmation code; there is no
	// password login endpoint, the hash only fills the not-null column.
	passwordHash, err := auth.HashPassword(code)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Username:     email,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}
	if _, err := s.userRepo.FirstOrCreateByEmail(ctx, user); err != nil {
		return "", fmt.Errorf("find or create user: %w", err)
	}

	if err := s.signupRepo.Delete(ctx, email); err != nil {
		return "", fmt.Errorf("delete pending signup: %w", err)
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

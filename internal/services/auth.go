package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"gert-backend/internal/middleware"
	"gert-backend/internal/models"
	"gert-backend/internal/repository"
)

// AuthService signs in platform admins and client users. The two account
// kinds live in separate tables and carry a role claim so the middleware
// can keep their route trees apart.
type AuthService struct {
	userRepo *repository.UserRepo
	redis    *redis.Client
	jwt      *middleware.JWTAuth
	email    *EmailService
}

func NewAuthService(userRepo *repository.UserRepo, redisClient *redis.Client, jwt *middleware.JWTAuth, email *EmailService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		redis:    redisClient,
		jwt:      jwt,
		email:    email,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (s *AuthService) AdminLogin(ctx context.Context, req models.LoginRequest) (*models.TokenPair, error) {
	admin, err := s.userRepo.AdminByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Invalid email or password"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &UnauthorizedError{Message: "Invalid email or password"}
	}

	return s.issueTokens(ctx, admin.ID, admin.Email, middleware.RoleAdmin, 0)
}

func (s *AuthService) ClientLogin(ctx context.Context, req models.LoginRequest) (*models.TokenPair, error) {
	user, err := s.userRepo.ClientUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Invalid email or password"}
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, &UnauthorizedError{Message: "Account is deactivated"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &UnauthorizedError{Message: "Invalid email or password"}
	}

	return s.issueTokens(ctx, user.ID, user.Email, middleware.RoleClient, user.ClientID)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	subject, err := s.redis.Get(ctx, "refresh:"+refreshToken).Result()
	if err != nil {
		return nil, &UnauthorizedError{Message: "Invalid or expired refresh token. Please log in again."}
	}

	// Delete old token (rotation)
	s.redis.Del(ctx, "refresh:"+refreshToken)

	role, idStr, ok := strings.Cut(subject, ":")
	if !ok {
		return nil, fmt.Errorf("malformed refresh subject: %q", subject)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	switch role {
	case middleware.RoleAdmin:
		admin, err := s.userRepo.AdminByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return s.issueTokens(ctx, admin.ID, admin.Email, middleware.RoleAdmin, 0)
	case middleware.RoleClient:
		user, err := s.userRepo.ClientUserByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !user.IsActive {
			return nil, &UnauthorizedError{Message: "Account is deactivated"}
		}
		return s.issueTokens(ctx, user.ID, user.Email, middleware.RoleClient, user.ClientID)
	default:
		return nil, fmt.Errorf("unknown refresh role: %q", role)
	}
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.redis.Del(ctx, "refresh:"+refreshToken).Err()
}

// CreateClientUser registers an account under a client company. The
// caller decides whether the new user gets the client-admin flag.
func (s *AuthService) CreateClientUser(ctx context.Context, req models.CreateClientUserRequest) (*models.ClientUser, error) {
	fieldErrors := make(map[string]string)

	if req.FirstName == "" {
		fieldErrors["first_name"] = "First name is required"
	}
	if !emailRegex.MatchString(req.Email) {
		fieldErrors["email"] = "Invalid email format"
	}
	if err := validatePassword(req.Password); err != nil {
		fieldErrors["password"] = err.Error()
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	// Check uniqueness
	_, err := s.userRepo.ClientUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, &ConflictError{Message: "Email already in use"}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Hash password (bcrypt cost 12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.ClientUser{
		ClientID:     req.ClientID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
	}

	if err := s.userRepo.CreateClientUser(ctx, user); err != nil {
		return nil, err
	}

	go s.email.SendWelcomeEmail(user.Email)

	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, userID int64, email, role string, clientID int64) (*models.TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(userID, email, role, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateToken(64)
	if err != nil {
		return nil, err
	}

	// Store refresh token in Redis (7 days)
	subject := fmt.Sprintf("%s:%d", role, userID)
	err = s.redis.Set(ctx, "refresh:"+refreshToken, subject, 7*24*time.Hour).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    900,
	}, nil
}

func generateToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func validatePassword(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("Password must be at least 8 characters")
	}
	hasNumber := false
	for _, ch := range pw {
		if unicode.IsDigit(ch) {
			hasNumber = true
			break
		}
	}
	if !hasNumber {
		return fmt.Errorf("Password must contain at least one number")
	}
	return nil
}

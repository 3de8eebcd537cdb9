package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/fondationhn/dossier-management/internal"
)

// UserRepository is the credential store surface the session issuer needs.
type UserRepository interface {
	GetCredentials(email string) (userID, passwordHash string, err error)
	GetByID(userID string) (*User, error)
	EmailExists(email string) (bool, error)
	Create(user *User, passwordHash string) error
}

// Service is the session issuer: it validates credentials and mints signed,
// time-limited tokens.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

// NewJWTTokenGenerator builds the HS256 generator. The 30-day default matches
// the session lifetime the clients were built against.
func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

// Authenticate validates credentials and returns the identity with a fresh
// token. Unknown email and wrong password fail identically.
func (s *Service) Authenticate(dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := NormalizedEmail(dto.Email)

	userID, storedHash, err := s.userRepo.GetCredentials(email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueFor(user)
}

// Register creates a new identity, hashing the secret exactly once at
// creation, and immediately issues a session token.
func (s *Service) Register(dto RegisterDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := NormalizedEmail(dto.Email)

	taken, err := s.userRepo.EmailExists(email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check email", err)
	}
	if taken {
		return nil, apperrors.ErrDuplicateEmail
	}

	role := DefaultRole
	if dto.Role != "" {
		role = Role(dto.Role)
		if !role.Valid() {
			return nil, apperrors.NewValidationError("unknown role", apperrors.ErrCodeInvalidRole)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := &User{
		ID:    uuid.NewString(),
		Name:  dto.Name,
		Email: email,
		Role:  role,
	}

	if err := s.userRepo.Create(user, string(hash)); err != nil {
		if appErr, ok := apperrors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	return s.issueFor(user)
}

func (s *Service) issueFor(user *User) (*AuthResult, error) {
	token, _, err := s.tokenGenerator.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	return &AuthResult{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Avatar: user.Avatar,
		Token:  token,
	}, nil
}

// ValidateAccessToken validates a session token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUserByID reloads the identity, including its current role, from the
// credential store. Used by the access guard on every request.
func (s *Service) GetUserByID(userID string) (*User, error) {
	return s.userRepo.GetByID(userID)
}

// HashPassword creates a bcrypt hash; used by the seeder and admin flows.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (j *JWTTokenGenerator) GenerateToken(userID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(j.TokenTTL)

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidToken
}

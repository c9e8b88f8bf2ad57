package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	autherrors "skybook/internal/auth/errors"
	"skybook/internal/auth/repository"
	"skybook/pkg/config"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/model"
	"skybook/pkg/sanitizer"
)

const (
	TokenIssuer = "skybook"

	invalidCredentials = "Invalid email or password"
)

// Identity is the authenticated caller extracted from a token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (string, *model.User, error)
	Authenticate(token string) (*Identity, error)
	Authorize(identity *Identity, requiredRole string) error
}

type authService struct {
	repo     repository.UserRepository
	validate *validator.Validate
	secret   []byte
	ttl      time.Duration
	cost     int
	now      func() time.Time
	cfg      *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &authService{
		repo:     repo,
		validate: v,
		secret:   []byte(cfg.JWTSecret),
		ttl:      cfg.JWTTTL,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	log := s.cfg.Log.WithRequest(ctx)

	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError("Registration validation failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, apperrors.Internal("Failed to register user", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrDuplicateEmail) {
			log.Warn("Registration with existing email", "email", req.Email)
			return nil, apperrors.Conflict("Email already registered")
		}
		log.Error("Failed to create user", "email", req.Email, "error", err)
		return nil, apperrors.Persistence("Failed to register user", err)
	}

	log.Info("User registered", "id", user.ID.Hex(), "email", user.Email)
	return user, nil
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (string, *model.User, error) {
	log := s.cfg.Log.WithRequest(ctx)

	req.Email = sanitizer.NormalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return "", nil, apperrors.Unauthorized(invalidCredentials)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			log.Warn("Login for unknown email", "email", req.Email)
			return "", nil, apperrors.Unauthorized(invalidCredentials)
		}
		log.Error("Failed to look up user", "email", req.Email, "error", err)
		return "", nil, apperrors.Persistence("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Login with wrong password", "email", req.Email)
		return "", nil, apperrors.Unauthorized(invalidCredentials)
	}

	token, err := s.issue(user)
	if err != nil {
		log.Error("Failed to sign token", "error", err)
		return "", nil, apperrors.Internal("Failed to log in", err)
	}

	log.Info("User logged in", "id", user.ID.Hex(), "role", user.Role)
	return token, user, nil
}

func (s *authService) issue(user *model.User) (string, error) {
	now := s.now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    TokenIssuer,
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) Authenticate(token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnauthorized, "Invalid or expired token", http.StatusUnauthorized)
	}

	if _, err := primitive.ObjectIDFromHex(claims.Subject); err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}

	return &Identity{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

func (s *authService) Authorize(identity *Identity, requiredRole string) error {
	if identity == nil {
		return apperrors.Unauthorized("Authentication required")
	}
	if identity.Role != requiredRole {
		return apperrors.Forbidden(fmt.Sprintf("Requires %s role", requiredRole))
	}
	return nil
}

// HashPassword is used by the admin seed, which runs outside the service.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation(message, map[string]any{"error": err.Error()})
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "is required"
		case "email":
			details[fe.Field()] = "must be a valid email address"
		case "min":
			details[fe.Field()] = fmt.Sprintf("must be at least %s characters", fe.Param())
		case "max":
			details[fe.Field()] = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			details[fe.Field()] = fmt.Sprintf("failed %q check", fe.Tag())
		}
	}
	return apperrors.Validation(message, details)
}

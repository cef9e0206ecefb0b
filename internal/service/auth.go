package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"time-clock/internal/config"
	"time-clock/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	CompanyID  string `json:"companyId"`
	Username   string `json:"username"`
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

// Claims is the session payload signed into the token.
type Claims struct {
	Username     string `json:"username"`
	Role         string `json:"role"`
	CompanyID    string `json:"companyId"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
	logger       *logrus.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	employeeRepo repository.EmployeeRepository,
	secret string,
	ttl time.Duration,
) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
		logger:       config.NewLogger(),
	}
}

func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// Login checks credentials. Managers sign in with a username, employees with
// their employee id; both belong to exactly one company.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*Actor, string, error) {
	companyID := strings.TrimSpace(req.CompanyID)
	if companyID == "" {
		return nil, "", validationErr("companyId is required")
	}
	if req.Password == "" {
		return nil, "", validationErr("Password is required")
	}

	actor := &Actor{CompanyID: companyID}
	var passwordHash string

	switch {
	case strings.TrimSpace(req.EmployeeID) != "":
		employee, err := s.employeeRepo.GetActiveByID(ctx, companyID, strings.TrimSpace(req.EmployeeID))
		if err != nil {
			return nil, "", err
		}
		if employee == nil {
			return nil, "", s.invalidCredentials(companyID, req.EmployeeID)
		}

		user, err := s.userRepo.GetEmployeeUser(ctx, companyID, employee.ID)
		if err != nil {
			return nil, "", err
		}
		if user == nil {
			return nil, "", s.invalidCredentials(companyID, req.EmployeeID)
		}

		actor.UserID = user.ID
		actor.Username = user.Username
		actor.Role = user.Role
		actor.EmployeeID = employee.ID
		actor.EmployeeName = employee.Name
		passwordHash = user.PasswordHash

	case strings.TrimSpace(req.Username) != "":
		user, err := s.userRepo.GetManager(ctx, companyID, strings.TrimSpace(req.Username))
		if err != nil {
			return nil, "", err
		}
		if user == nil {
			return nil, "", s.invalidCredentials(companyID, req.Username)
		}

		actor.UserID = user.ID
		actor.Username = user.Username
		actor.Role = user.Role
		if user.EmployeeID != nil {
			actor.EmployeeID = *user.EmployeeID
		}
		passwordHash = user.PasswordHash

	default:
		return nil, "", validationErr("Username or employee_id required")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return nil, "", s.invalidCredentials(companyID, actor.Username)
	}

	token, err := s.IssueToken(*actor)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"user_id":    actor.UserID,
		"role":       actor.Role,
	}).Info("User logged in")

	return actor, token, nil
}

func (s *AuthService) invalidCredentials(companyID, login string) error {
	s.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"login":      login,
	}).Warn("Login failed")
	return unauthorizedErr("Invalid credentials")
}

func (s *AuthService) IssueToken(actor Actor) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("JWT secret is not configured")
	}

	now := s.now()
	claims := Claims{
		Username:     actor.Username,
		Role:         actor.Role,
		CompanyID:    actor.CompanyID,
		EmployeeID:   actor.EmployeeID,
		EmployeeName: actor.EmployeeName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies the signature and expiry and returns the session actor.
func (s *AuthService) ParseToken(tokenString string) (*Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, unauthorizedErr("Unauthorized - Please log in")
	}
	if claims.Subject == "" || claims.CompanyID == "" {
		return nil, unauthorizedErr("Unauthorized - Please log in")
	}

	return &Actor{
		UserID:       claims.Subject,
		Username:     claims.Username,
		Role:         claims.Role,
		CompanyID:    claims.CompanyID,
		EmployeeID:   claims.EmployeeID,
		EmployeeName: claims.EmployeeName,
	}, nil
}

// HashPassword hashes with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

package service

import (
	"context"
	"strings"

	"time-clock/internal/config"
	"time-clock/internal/models"
	"time-clock/internal/repository"

	"github.com/sirupsen/logrus"
)

type SuperAdminSeed struct {
	CompanyID string
	Username  string
	Email     string
	Password  string
}

type SeedService struct {
	userRepo repository.UserRepository
	logger   *logrus.Logger
}

func NewSeedService(userRepo repository.UserRepository) *SeedService {
	return &SeedService{userRepo: userRepo, logger: config.NewLogger()}
}

// SeedSuperAdmin creates the landlord account unless a user with the same
// username or email exists. It reports whether a user was created.
func (s *SeedService) SeedSuperAdmin(ctx context.Context, seed SuperAdminSeed) (bool, error) {
	seed.CompanyID = strings.TrimSpace(seed.CompanyID)
	seed.Username = strings.TrimSpace(seed.Username)
	seed.Email = strings.TrimSpace(seed.Email)
	if seed.CompanyID == "" || seed.Username == "" || seed.Password == "" {
		return false, validationErr("SUPER_ADMIN_COMPANY_ID, SUPER_ADMIN_USERNAME and SUPER_ADMIN_PASSWORD are required")
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, seed.CompanyID, seed.Username, seed.Email)
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.WithField("username", seed.Username).Info("Super-admin already exists, skipping")
		return false, nil
	}

	hash, err := HashPassword(seed.Password)
	if err != nil {
		return false, err
	}

	user := &models.User{
		CompanyID:    seed.CompanyID,
		Username:     seed.Username,
		PasswordHash: hash,
		Role:         models.RoleSuperAdmin,
	}
	if seed.Email != "" {
		email := seed.Email
		user.Email = &email
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return false, err
	}

	s.logger.WithFields(logrus.Fields{
		"company_id": seed.CompanyID,
		"username":   seed.Username,
	}).Info("Super-admin created")
	return true, nil
}

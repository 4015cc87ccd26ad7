package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/internal/utils"
	"github.com/mkamel/corsite-backend/models"
)

// seeder creates the bootstrap super-admin account at startup so a fresh
// deployment has a way into the admin panel. Runs are idempotent: an
// existing account with the configured email is left untouched.
type seeder struct {
	userRepository store.UserRepository
	cfg            config.Seed
	logger         *logger.Logger
}

// NewSeeder constructs a Seeder from the bootstrap credentials.
func NewSeeder(userRepository store.UserRepository, cfg config.Seed, logger *logger.Logger) Seeder {
	return &seeder{
		userRepository: userRepository,
		cfg:            cfg,
		logger:         logger,
	}
}

// Seed creates the super-admin account when it does not exist yet. Missing
// seed configuration is not an error; the step is simply skipped.
func (s *seeder) Seed(ctx context.Context) error {
	if s.cfg.SuperAdminEmail == "" || s.cfg.SuperAdminPassword == "" {
		s.logger.Warn().Msg("seed credentials not configured, skipping super admin bootstrap")
		return nil
	}

	_, err := s.userRepository.FindUserByEmail(ctx, s.cfg.SuperAdminEmail)
	if err == nil {
		s.logger.Debug().Str("email", s.cfg.SuperAdminEmail).Msg("super admin already present")
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("looking up super admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing super admin password: %w", err)
	}

	user := models.User{
		ID:                 utils.NewUUID(),
		Email:              s.cfg.SuperAdminEmail,
		UserName:           "superadmin",
		FullName:           "Super Admin",
		PasswordHash:       string(hash),
		Role:               models.RoleSuperAdmin,
		IsProfileCompleted: true,
	}

	if _, err := s.userRepository.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("creating super admin: %w", err)
	}

	s.logger.Info().Str("email", s.cfg.SuperAdminEmail).Msg("super admin account created")
	return nil
}

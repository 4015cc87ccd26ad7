// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/mail"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/internal/utils"
	"github.com/mkamel/corsite-backend/models"
)

// userService implements the admin invite flow: a super admin invites an
// email address, the invitee receives a one-shot completion link, and
// claiming the link sets the profile fields and password.
type userService struct {
	userRepository store.UserRepository
	sender         mail.Sender

	// profileTokenDuration bounds invite link validity.
	profileTokenDuration time.Duration

	frontendURL string
	companyName string

	logger *logger.Logger
}

// NewUserService constructs a UserService wired to the given repository and
// mail sender.
func NewUserService(userRepository store.UserRepository, sender mail.Sender, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository:       userRepository,
		sender:               sender,
		profileTokenDuration: cfg.ProfileTokenDuration,
		frontendURL:          cfg.FrontendURL,
		companyName:          cfg.CompanyName,
		logger:               logger,
	}
}

// InviteAdmin creates a placeholder admin account for the given email and
// mails a profile-completion link. The account cannot log in until the
// invitee claims it through CompleteProfile.
//
// Returns store.ErrEmailAlreadyExists when the email is already registered.
func (u *userService) InviteAdmin(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		log.Error().Msg("empty email provided for invite")
		return models.User{}, ErrInvalidDataProvided
	}

	token, err := newInviteToken()
	if err != nil {
		return models.User{}, fmt.Errorf("generating invite token: %w", err)
	}
	expiresAt := time.Now().Add(u.profileTokenDuration)

	user := models.User{
		ID:                              utils.NewUUID(),
		Email:                           email,
		Role:                            models.RoleAdmin,
		IsProfileCompleted:              false,
		ProfileCompletionToken:          &token,
		ProfileCompletionTokenExpiresAt: &expiresAt,
	}

	created, err := u.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("invite account creation failed")
		return models.User{}, fmt.Errorf("invite account creation failed: %w", err)
	}

	if err := u.sendInviteEmail(ctx, created.Email, token); err != nil {
		log.Err(err).Str("email", email).Msg("sending invite email failed")
		return models.User{}, fmt.Errorf("sending invite email failed: %w", err)
	}

	return created, nil
}

// ResendInvite rotates the completion token of a pending invite and mails a
// fresh link. Completed accounts are rejected with ErrProfileAlreadyCompleted.
func (u *userService) ResendInvite(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := u.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}
	if user.IsProfileCompleted {
		return models.User{}, ErrProfileAlreadyCompleted
	}

	token, err := newInviteToken()
	if err != nil {
		return models.User{}, fmt.Errorf("generating invite token: %w", err)
	}
	expiresAt := time.Now().Add(u.profileTokenDuration)
	user.ProfileCompletionToken = &token
	user.ProfileCompletionTokenExpiresAt = &expiresAt

	updated, err := u.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("rotating invite token failed")
		return models.User{}, fmt.Errorf("rotating invite token failed: %w", err)
	}

	if err := u.sendInviteEmail(ctx, updated.Email, token); err != nil {
		log.Err(err).Str("email", email).Msg("sending invite email failed")
		return models.User{}, fmt.Errorf("sending invite email failed: %w", err)
	}

	return updated, nil
}

// CompleteProfile claims a pending invite: it verifies the completion token,
// sets the profile fields, hashes the password with bcrypt, and clears the
// token so the link cannot be replayed.
//
// Returns:
//   - ErrInvalidDataProvided when the token or any profile field is empty.
//   - store.ErrUserNotFound when no account holds the token.
//   - ErrInviteTokenExpired when the token is past its validity window.
//   - ErrProfileAlreadyCompleted when the account was already claimed.
func (u *userService) CompleteProfile(ctx context.Context, token string, input CompleteProfileInput) (models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" || input.UserName == "" || input.FullName == "" || input.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := u.userRepository.FindUserByCompletionToken(ctx, token)
	if err != nil {
		log.Err(err).Msg("user search by completion token failed")
		return models.User{}, fmt.Errorf("user search by completion token failed: %w", err)
	}
	if user.IsProfileCompleted {
		return models.User{}, ErrProfileAlreadyCompleted
	}
	if user.ProfileCompletionTokenExpiresAt == nil || time.Now().After(*user.ProfileCompletionTokenExpiresAt) {
		return models.User{}, ErrInviteTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user.UserName = input.UserName
	user.FullName = input.FullName
	user.PasswordHash = string(hash)
	user.IsProfileCompleted = true
	user.ProfileCompletionToken = nil
	user.ProfileCompletionTokenExpiresAt = nil

	updated, err := u.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("completing profile failed")
		return models.User{}, fmt.Errorf("completing profile failed: %w", err)
	}

	return updated, nil
}

// GetUser retrieves one account by its string id.
func (u *userService) GetUser(ctx context.Context, id string) (models.User, error) {
	log := logger.FromContext(ctx)

	userID, err := uuid.Parse(id)
	if err != nil {
		return models.User{}, ErrInvalidID
	}

	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("id", id).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

func (u *userService) sendInviteEmail(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/setup?token=%s", u.frontendURL, token)
	subject := fmt.Sprintf("You have been invited to administer %s", u.companyName)
	body := fmt.Sprintf(
		`<p>Hello,</p>
<p>You have been invited to join the %s admin panel.</p>
<p><a href="%s">Complete your profile</a> to activate your account. The link expires in %s.</p>
<p>If you were not expecting this invitation, you can ignore this email.</p>`,
		u.companyName, link, u.profileTokenDuration)

	err := u.sender.Send(ctx, to, subject, body)
	if errors.Is(err, mail.ErrNotConfigured) {
		// Local development runs without SMTP; the invite still exists and
		// the token can be read from the database.
		u.logger.Warn().Str("to", to).Msg("mail transport not configured, invite email skipped")
		return nil
	}
	return err
}

// newInviteToken returns a 64-character hex token from 32 random bytes.
func newInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/models"
	"github.com/sbilibin2017/gw-budget-manager/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists   = errors.New("username or email already exists")
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidRegistration = errors.New("invalid registration data")
	ErrEmailNotFound       = errors.New("email not found")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrInvalidPassword     = fmt.Errorf("password must be %d-%d characters", minPasswordLen, maxPasswordLen)
)

const resetMailSubject = "Password reset"

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, userID uuid.UUID, username, passwordHash, email string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, username string) (string, error)
}

// ResetTokenStore keeps single-use password reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID) error
	Pop(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// MessageSender delivers a message to an email address.
type MessageSender interface {
	Send(ctx context.Context, msg models.MailMessage) error
}

// AuthService handles registration, login and password recovery.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	jwt      JWTGenerator
	tokens   ResetTokenStore
	sender   MessageSender
	mailFrom string
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	jwt JWTGenerator,
	tokens ResetTokenStore,
	sender MessageSender,
	mailFrom string,
) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		jwt:      jwt,
		tokens:   tokens,
		sender:   sender,
		mailFrom: mailFrom,
	}
}

// Register registers a new user and returns a token for it.
func (svc *AuthService) Register(ctx context.Context, username, password, email string) (string, error) {
	log := logger.FromContext(ctx)

	if err := validateRegistration(username, password, email); err != nil {
		log.Warnw("invalid registration", "username", username, "err", err)
		return "", err
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		log.Errorw("failed to check user exists", "err", err)
		return "", err
	}
	if user != nil {
		log.Warnw("user already exists", "username", username, "email", email)
		return "", ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		return "", err
	}

	userID := uuid.New()
	if err := svc.writer.Save(ctx, userID, username, string(hashedPassword), email); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			log.Warnw("user registered concurrently", "username", username, "email", email)
			return "", ErrUserAlreadyExists
		}
		log.Errorw("failed to save user", "err", err)
		return "", err
	}

	token, err := svc.jwt.Generate(ctx, userID, username)
	if err != nil {
		log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContext(ctx)

	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		log.Warnw("user does not exist", "username", username)
		return "", ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warnw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Username)
	if err != nil {
		log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// VerifyUser checks that the user behind a token still exists.
func (svc *AuthService) VerifyUser(ctx context.Context, userID uuid.UUID) error {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserDoesNotExist
	}
	return nil
}

// RecoverPassword issues a single-use reset token and mails it to the owner of email.
func (svc *AuthService) RecoverPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	user, err := svc.reader.GetByUsernameOrEmail(ctx, nil, &email)
	if err != nil {
		log.Errorw("failed to get user by email", "err", err)
		return err
	}
	if user == nil {
		log.Warnw("email not found", "email", email)
		return ErrEmailNotFound
	}

	token := uuid.NewString()
	if err := svc.tokens.Save(ctx, token, user.UserID); err != nil {
		log.Errorw("failed to store reset token", "user_id", user.UserID, "err", err)
		return err
	}

	msg := models.MailMessage{
		From:      svc.mailFrom,
		To:        user.Email,
		Subject:   resetMailSubject,
		Body:      fmt.Sprintf("Hello %s,\n\nUse this token to reset your password: %s\n", user.Username, token),
		Timestamp: time.Now().UTC(),
	}
	if err := svc.sender.Send(ctx, msg); err != nil {
		log.Errorw("failed to send reset token", "user_id", user.UserID, "err", err)
		if delErr := svc.tokens.Delete(ctx, token); delErr != nil {
			log.Errorw("failed to discard reset token", "user_id", user.UserID, "err", delErr)
		}
		return err
	}

	log.Infow("reset token sent", "user_id", user.UserID)
	return nil
}

// ResetPassword consumes a reset token and replaces the password of its user.
// The password is checked before the token is consumed so a rejected password does not burn the token.
// A failed write puts the token back so the user can retry.
func (svc *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if !validatePassword(newPassword) {
		return ErrInvalidPassword
	}

	userID, err := svc.tokens.Pop(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		log.Errorw("failed to consume reset token", "err", err)
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		svc.restoreResetToken(ctx, token, userID)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserDoesNotExist
		}
		log.Errorw("failed to update password", "user_id", userID, "err", err)
		svc.restoreResetToken(ctx, token, userID)
		return err
	}

	log.Infow("password reset", "user_id", userID)
	return nil
}

// restoreResetToken re-issues a consumed token with a fresh lifetime.
func (svc *AuthService) restoreResetToken(ctx context.Context, token string, userID uuid.UUID) {
	if err := svc.tokens.Save(ctx, token, userID); err != nil {
		logger.FromContext(ctx).Errorw("failed to restore reset token", "user_id", userID, "err", err)
	}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/user-accounts/internal/jwt"
	"github.com/sbilibin2017/user-accounts/internal/logger"
	"github.com/sbilibin2017/user-accounts/internal/models"
	"github.com/sbilibin2017/user-accounts/internal/password"
	"github.com/sbilibin2017/user-accounts/internal/repositories"
	"github.com/segmentio/kafka-go"
)

// Error variables
var (
	ErrUserAlreadyExists   = errors.New("name or email already exists")
	ErrEmailNotFound       = errors.New("email not found")
	ErrWrongPassword       = errors.New("wrong password")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	ListActive(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, upd models.UserUpdate) (*models.UserDB, error)
}

// TokenGenerator defines an interface for issuing and verifying JWT tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID int64) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RefreshTokenStore keeps the currently valid refresh token per user.
type RefreshTokenStore interface {
	Save(ctx context.Context, userID int64, token string) error
	Get(ctx context.Context, userID int64) (string, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TokenPair bundles a freshly issued access/refresh token pair with the
// TTLs the login handler mirrors into cookie max-ages.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// AuthService handles registration, login, profile mutation, and the
// refresh-token exchange.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	accessJWT   TokenGenerator
	refreshJWT  TokenGenerator
	tokens      RefreshTokenStore
	kafkaWriter KafkaWriter
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	accessJWT TokenGenerator,
	refreshJWT TokenGenerator,
	tokens RefreshTokenStore,
	kafkaWriter KafkaWriter,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		accessJWT:   accessJWT,
		refreshJWT:  refreshJWT,
		tokens:      tokens,
		kafkaWriter: kafkaWriter,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

// Register creates a new active user with a hashed password. There is no
// pre-check for duplicates: the store's unique constraints reject them and
// surface here as ErrUserAlreadyExists.
func (svc *AuthService) Register(ctx context.Context, name, email, plaintext string) (*models.UserDB, error) {
	hashed, err := password.Hash(plaintext)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	status := true
	user, err := svc.writer.Save(ctx, models.UserUpdate{
		Name:         &name,
		Email:        &email,
		PasswordHash: &hashed,
		Status:       &status,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			logger.Log.Errorw("user already exists", "name", name, "email", email)
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	svc.publishEvent(ctx, user.ID, models.EventUserRegistered)
	return user, nil
}

// Login authenticates a user by email and password and issues a token pair.
func (svc *AuthService) Login(ctx context.Context, email, plaintext string) (*models.UserDB, *TokenPair, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, nil, err
	}
	if user == nil {
		logger.Log.Errorw("email not found", "email", email)
		return nil, nil, ErrEmailNotFound
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		logger.Log.Errorw("wrong password", "email", email)
		return nil, nil, ErrWrongPassword
	}

	pair, err := svc.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair. Only the
// most recently issued refresh token per user is accepted; the exchange
// rotates it.
func (svc *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := svc.refreshJWT.GetClaims(ctx, refreshToken)
	if err != nil {
		logger.Log.Errorw("refresh token rejected", "err", err)
		return nil, ErrInvalidRefreshToken
	}

	stored, err := svc.tokens.Get(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to load stored refresh token", "err", err)
		return nil, err
	}
	if stored == "" || stored != refreshToken {
		logger.Log.Errorw("refresh token revoked or superseded", "userID", claims.UserID)
		return nil, ErrInvalidRefreshToken
	}

	return svc.issueTokens(ctx, claims.UserID)
}

// GetProfile loads a user by the id carried in a verified access token.
func (svc *AuthService) GetProfile(ctx context.Context, userID int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update saves a user's name, email, and status.
func (svc *AuthService) Update(ctx context.Context, userID int64, name, email string, status bool) (*models.UserDB, error) {
	user, err := svc.writer.Save(ctx, models.UserUpdate{
		ID:     userID,
		Name:   &name,
		Email:  &email,
		Status: &status,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to update user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	svc.publishEvent(ctx, user.ID, models.EventUserUpdated)
	return user, nil
}

// ResetPassword hashes and stores a new password for the user and returns
// the pre-reset record.
func (svc *AuthService) ResetPassword(ctx context.Context, userID int64, newPassword string) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	if _, err := svc.writer.Save(ctx, models.UserUpdate{
		ID:           userID,
		PasswordHash: &hashed,
	}); err != nil {
		logger.Log.Errorw("failed to save password", "userID", userID, "err", err)
		return nil, err
	}

	svc.publishEvent(ctx, userID, models.EventPasswordReset)
	return user, nil
}

// ListActive returns all users with status=true.
func (svc *AuthService) ListActive(ctx context.Context) ([]models.UserDB, error) {
	return svc.reader.ListActive(ctx)
}

func (svc *AuthService) issueTokens(ctx context.Context, userID int64) (*TokenPair, error) {
	accessToken, err := svc.accessJWT.Generate(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "err", err)
		return nil, err
	}

	refreshToken, err := svc.refreshJWT.Generate(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return nil, err
	}

	if err := svc.tokens.Save(ctx, userID, refreshToken); err != nil {
		logger.Log.Errorw("failed to store refresh token", "err", err)
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    svc.accessTTL,
		RefreshTTL:   svc.refreshTTL,
	}, nil
}

// publishEvent publishes a user mutation event to Kafka. Publishing is
// fire-and-forget: a broker failure never fails the request.
func (svc *AuthService) publishEvent(ctx context.Context, userID int64, operation string) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "operation", operation)
		return
	}

	event := models.UserEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		UserID:    userID,
		Operation: operation,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal user event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish user event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("user event published", "event_id", event.EventID, "operation", operation)
	}
}

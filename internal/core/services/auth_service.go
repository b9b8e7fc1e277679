package services

import (
	"context"
	"errors"
	"log"

	"educenter/internal/adapters/persistence/models"
	"educenter/internal/adapters/persistence/repositories"
	"educenter/internal/config"
	"educenter/internal/pkg/jwt"
	"educenter/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrRegionNotFound  = errors.New("region not found")
	ErrInvalidOTP      = errors.New("invalid or expired otp")
	ErrAlreadyVerified = errors.New("account already verified")
	ErrWrongPassword   = errors.New("wrong password")
	ErrNotVerified     = errors.New("account is not verified")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenRevoked    = errors.New("token revoked")
)

// OTPNotifier delivers one-time passcodes out of band
type OTPNotifier interface {
	DispatchOTP(email, phone, code, purpose string)
}

// AuthService handles account lifecycle: register, verify, login, refresh,
// password reset
type AuthService struct {
	accountRepo      repositories.AccountRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	regionRepo       repositories.RegionRepository
	otp              *OTPService
	notifier         OTPNotifier
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo repositories.AccountRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	regionRepo repositories.RegionRepository,
	otp *OTPService,
	notifier OTPNotifier,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		accountRepo:      accountRepo,
		refreshTokenRepo: refreshTokenRepo,
		regionRepo:       regionRepo,
		otp:              otp,
		notifier:         notifier,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name      string `json:"name"`
	BirthYear int    `json:"year"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Image     string `json:"image"`
	Role      string `json:"role"`
	RegionID  uint   `json:"region_id"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Account      *models.AccountResponse `json:"account"`
	AccessToken  string                  `json:"access_token"`
	RefreshToken string                  `json:"refresh_token"`
}

// Register creates an INACTIVE account and dispatches a verification OTP
// to the given email (and phone, when present)
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.AccountResponse, error) {
	// 1. Referenced region must exist
	exists, err := s.regionRepo.Exists(ctx, input.RegionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRegionNotFound
	}

	// 2. Email must be free
	taken, err := s.accountRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	// 3. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	account := &models.Account{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  hashedPassword,
		Image:     input.Image,
		Role:      role,
		RegionID:  input.RegionID,
		Status:    models.StatusInactive,
		BirthYear: input.BirthYear,
	}

	// 4. Create; the unique index on email settles concurrent registrations
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// 5. Dispatch verification OTP (fire-and-forget)
	code, err := s.otp.Generate(account.Email, OTPPurposeEmail)
	if err != nil {
		return nil, err
	}
	s.notifier.DispatchOTP(account.Email, account.Phone, code, OTPPurposeEmail)

	log.Printf("account registered: %s (role=%s)", account.Email, account.Role)

	return account.ToResponse(), nil
}

// Verify activates the account when the OTP matches. Re-verifying an
// already active account is an explicit error, not a silent no-op.
func (s *AuthService) Verify(ctx context.Context, email, otp string) error {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if account.IsActive() {
		return ErrAlreadyVerified
	}

	if !s.otp.Verify(email, OTPPurposeEmail, otp) {
		return ErrInvalidOTP
	}

	account.Status = models.StatusActive
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return err
	}

	log.Printf("account verified: %s", email)
	return nil
}

// ResendOTP regenerates and redispatches the verification code. The response
// does not reveal whether the account was already active.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	code, err := s.otp.Generate(account.Email, OTPPurposeEmail)
	if err != nil {
		return err
	}
	s.notifier.DispatchOTP(account.Email, account.Phone, code, OTPPurposeEmail)
	return nil
}

// Login authenticates an account and issues a token pair
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*AuthResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if !password.Verify(plainPassword, account.Password) {
		return nil, ErrWrongPassword
	}

	if !account.IsActive() {
		return nil, ErrNotVerified
	}

	tokens, err := s.generateTokens(account)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, account.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("account logged in: %s", account.Email)

	return &AuthResponse{
		Account:      account.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The presented refresh token is revoked (rotation).
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	tokenHash := password.HashToken(refreshToken)

	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	account, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(account)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, account.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return tokens, nil
}

// RequestPasswordReset dispatches a reset OTP for an existing account
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	code, err := s.otp.Generate(account.Email, OTPPurposeResetPassword)
	if err != nil {
		return err
	}
	s.notifier.DispatchOTP(account.Email, account.Phone, code, OTPPurposeResetPassword)
	return nil
}

// ResetPassword sets a new password when the reset OTP matches. All active
// sessions are revoked afterwards.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword, otp string) error {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if !s.otp.Verify(email, OTPPurposeResetPassword, otp) {
		return ErrInvalidOTP
	}

	hashedPassword, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	account.Password = hashedPassword
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return err
	}

	if err := s.refreshTokenRepo.RevokeAllByAccountID(ctx, account.ID); err != nil {
		log.Printf("failed to revoke sessions for %s: %v", email, err)
	}

	log.Printf("password reset: %s", email)
	return nil
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	return s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash)
}

// LogoutAll revokes all refresh tokens for an account
func (s *AuthService) LogoutAll(ctx context.Context, accountID uint) error {
	return s.refreshTokenRepo.RevokeAllByAccountID(ctx, accountID)
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.AccessSecret)
}

// GetAccountByID gets an account by ID
func (s *AuthService) GetAccountByID(ctx context.Context, accountID uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// generateTokens generates access and refresh tokens with their own secrets
func (s *AuthService) generateTokens(account *models.Account) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		account.ID,
		account.Role,
		s.cfg.JWT.AccessSecret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		account.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token hash in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, accountID uint, refreshToken string) error {
	token := &models.RefreshToken{
		AccountID: accountID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}

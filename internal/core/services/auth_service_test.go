package services

import (
	"context"
	"testing"
	"time"

	"educenter/internal/adapters/persistence/models"
	"educenter/internal/config"
	"educenter/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeAccountRepo is an in-memory AccountRepository
type fakeAccountRepo struct {
	nextID    uint
	accounts  map[uint]*models.Account
	createErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uint]*models.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	account.ID = r.nextID
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id uint) (*models.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *account
	return &cp, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			cp := *account
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAccountRepo) Update(_ context.Context, account *models.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id uint) error {
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) List(_ context.Context, offset, limit int) ([]*models.Account, int64, error) {
	var all []*models.Account
	for _, account := range r.accounts {
		cp := *account
		all = append(all, &cp)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

// fakeRefreshTokenRepo is an in-memory RefreshTokenRepository
type fakeRefreshTokenRepo struct {
	nextID uint
	tokens map[uint]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uint]*models.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.nextID++
	token.ID = r.nextID
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash {
			cp := *token
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	token, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	token, err := r.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return err
	}
	return r.Revoke(ctx, token.ID)
}

func (r *fakeRefreshTokenRepo) RevokeAllByAccountID(_ context.Context, accountID uint) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.AccountID == accountID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for id, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) activeCount(accountID uint) int {
	n := 0
	for _, token := range r.tokens {
		if token.AccountID == accountID && token.RevokedAt == nil {
			n++
		}
	}
	return n
}

// fakeRegionRepo is an in-memory RegionRepository
type fakeRegionRepo struct {
	regions map[uint]*models.Region
}

func newFakeRegionRepo(ids ...uint) *fakeRegionRepo {
	r := &fakeRegionRepo{regions: make(map[uint]*models.Region)}
	for _, id := range ids {
		r.regions[id] = &models.Region{ID: id, Name: "Region"}
	}
	return r
}

func (r *fakeRegionRepo) Create(_ context.Context, region *models.Region) error {
	r.regions[region.ID] = region
	return nil
}

func (r *fakeRegionRepo) GetByID(_ context.Context, id uint) (*models.Region, error) {
	region, ok := r.regions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return region, nil
}

func (r *fakeRegionRepo) GetByName(_ context.Context, name string) (*models.Region, error) {
	for _, region := range r.regions {
		if region.Name == name {
			return region, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRegionRepo) List(_ context.Context) ([]*models.Region, error) {
	var all []*models.Region
	for _, region := range r.regions {
		all = append(all, region)
	}
	return all, nil
}

func (r *fakeRegionRepo) Update(_ context.Context, region *models.Region) error {
	r.regions[region.ID] = region
	return nil
}

func (r *fakeRegionRepo) Delete(_ context.Context, id uint) error {
	delete(r.regions, id)
	return nil
}

func (r *fakeRegionRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.regions[id]
	return ok, nil
}

// fakeNotifier records dispatched codes instead of sending them
type fakeNotifier struct {
	lastEmail   string
	lastCode    string
	lastPurpose string
	calls       int
}

func (n *fakeNotifier) DispatchOTP(email, _, code, purpose string) {
	n.lastEmail = email
	n.lastCode = code
	n.lastPurpose = purpose
	n.calls++
}

type authFixture struct {
	svc         *AuthService
	accounts    *fakeAccountRepo
	refreshRepo *fakeRefreshTokenRepo
	regions     *fakeRegionRepo
	notifier    *fakeNotifier
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	accounts := newFakeAccountRepo()
	refreshRepo := newFakeRefreshTokenRepo()
	regions := newFakeRegionRepo(1, 2)
	notifier := &fakeNotifier{}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 1,
		},
	}

	svc := NewAuthService(accounts, refreshRepo, regions, newTestOTPService(), notifier, cfg)

	return &authFixture{
		svc:         svc,
		accounts:    accounts,
		refreshRepo: refreshRepo,
		regions:     regions,
		notifier:    notifier,
	}
}

func validRegisterInput() *RegisterInput {
	return &RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "+998901234567",
		Password: "strongpassword",
		RegionID: 1,
	}
}

func TestRegisterCreatesInactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, models.StatusInactive, resp.Status)
	assert.Equal(t, models.RoleUser, resp.Role)

	stored := f.accounts.accounts[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "strongpassword", stored.Password)
	assert.True(t, password.Verify("strongpassword", stored.Password))

	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, "alice@example.com", f.notifier.lastEmail)
	assert.Equal(t, OTPPurposeEmail, f.notifier.lastPurpose)
	assert.Len(t, f.notifier.lastCode, 5)
}

func TestRegisterUnknownRegion(t *testing.T) {
	f := newAuthFixture(t)

	input := validRegisterInput()
	input.RegionID = 99
	_, err := f.svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrRegionNotFound)
	assert.Zero(t, f.notifier.calls)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, validRegisterInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDuplicateRaceResolvedByUniqueIndex(t *testing.T) {
	// The existence pre-check passed but another request committed first:
	// the database duplicate-key error maps to the same taken-email error.
	f := newAuthFixture(t)

	f.accounts.createErr = gorm.ErrDuplicatedKey
	_, err := f.svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func registerAndVerify(t *testing.T, f *authFixture) *models.AccountResponse {
	t.Helper()
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	require.NoError(t, f.svc.Verify(ctx, resp.Email, f.notifier.lastCode))
	return resp
}

func TestVerifyActivatesAccount(t *testing.T) {
	f := newAuthFixture(t)
	resp := registerAndVerify(t, f)

	stored := f.accounts.accounts[resp.ID]
	assert.Equal(t, models.StatusActive, stored.Status)
}

func TestVerifyWrongOTP(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	// Flip the first digit so the guess is guaranteed wrong
	code := []byte(f.notifier.lastCode)
	code[0] = '0' + ('9'-code[0])%10
	err = f.svc.Verify(ctx, resp.Email, string(code))
	assert.ErrorIs(t, err, ErrInvalidOTP)

	stored := f.accounts.accounts[resp.ID]
	assert.Equal(t, models.StatusInactive, stored.Status)
}

func TestVerifyAlreadyVerified(t *testing.T) {
	f := newAuthFixture(t)
	resp := registerAndVerify(t, f)

	err := f.svc.Verify(context.Background(), resp.Email, f.notifier.lastCode)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Verify(context.Background(), "ghost@example.com", "12345")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResendOTP(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.ResendOTP(ctx, resp.Email))
	assert.Equal(t, 2, f.notifier.calls)

	assert.ErrorIs(t, f.svc.ResendOTP(ctx, "ghost@example.com"), ErrAccountNotFound)
}

func TestLoginChecksPasswordBeforeStatus(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	// Wrong password on an unverified account reports the password problem
	_, err = f.svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	// Correct password on an unverified account reports verification
	_, err = f.svc.Login(ctx, "alice@example.com", "strongpassword")
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	resp := registerAndVerify(t, f)

	auth, err := f.svc.Login(context.Background(), resp.Email, "strongpassword")
	require.NoError(t, err)

	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, resp.ID, auth.Account.ID)
	assert.Equal(t, 1, f.refreshRepo.activeCount(resp.ID))

	// Only the hash of the refresh token is persisted
	stored, err := f.refreshRepo.GetByTokenHash(context.Background(), password.HashToken(auth.RefreshToken))
	require.NoError(t, err)
	assert.NotEqual(t, auth.RefreshToken, stored.TokenHash)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture(t)
	resp := registerAndVerify(t, f)
	ctx := context.Background()

	auth, err := f.svc.Login(ctx, resp.Email, "strongpassword")
	require.NoError(t, err)

	pair, err := f.svc.RefreshToken(ctx, auth.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, auth.RefreshToken, pair.RefreshToken)

	// The presented token was revoked by the exchange
	_, err = f.svc.RefreshToken(ctx, auth.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The replacement still works
	_, err = f.svc.RefreshToken(ctx, pair.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshTokenGarbage(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPasswordFlow(t *testing.T) {
	f := newAuthFixture(t)
	resp := registerAndVerify(t, f)
	ctx := context.Background()

	auth, err := f.svc.Login(ctx, resp.Email, "strongpassword")
	require.NoError(t, err)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, resp.Email))
	assert.Equal(t, OTPPurposeResetPassword, f.notifier.lastPurpose)

	require.NoError(t, f.svc.ResetPassword(ctx, resp.Email, "newpassword123", f.notifier.lastCode))

	// Old password dead, new password live
	_, err = f.svc.Login(ctx, resp.Email, "strongpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)
	_, err = f.svc.Login(ctx, resp.Email, "newpassword123")
	assert.NoError(t, err)

	// All sessions issued before the reset are revoked
	_, err = f.svc.RefreshToken(ctx, auth.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestResetPasswordRejectsEmailPurposeCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	verifyCode := f.notifier.lastCode

	err = f.svc.ResetPassword(ctx, resp.Email, "newpassword123", verifyCode)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)
	resp := registerAndVerify(t, f)
	ctx := context.Background()

	auth, err := f.svc.Login(ctx, resp.Email, "strongpassword")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, auth.RefreshToken))
	_, err = f.svc.RefreshToken(ctx, auth.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutAll(t *testing.T) {
	f := newAuthFixture(t)
	resp := registerAndVerify(t, f)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, resp.Email, "strongpassword")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, resp.Email, "strongpassword")
	require.NoError(t, err)
	require.Equal(t, 2, f.refreshRepo.activeCount(resp.ID))

	require.NoError(t, f.svc.LogoutAll(ctx, resp.ID))
	assert.Zero(t, f.refreshRepo.activeCount(resp.ID))
}

package service

import (
	"encoding/hex"
	"testing"
	"time"

	"rankboost/config"
	"rankboost/internal/crypto"
	"rankboost/internal/domain"
	"rankboost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type authFixture struct {
	svc    *AuthService
	users  *fakeUserStore
	codes  *fakeCodeStore
	orders *fakeOrderStore
	mail   *fakeSender
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	key, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	cipher, err := crypto.NewCipher(key)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpiry = time.Hour
	cfg.JWT.RefreshExpiry = 24 * time.Hour
	cfg.JWT.Issuer = "rankboost"

	users := newFakeUserStore()
	codes := &fakeCodeStore{}
	orders := newFakeOrderStore()
	mail := &fakeSender{}
	return &authFixture{
		svc:    NewAuthService(cfg, users, codes, orders, mail, cipher),
		users:  users,
		codes:  codes,
		orders: orders,
		mail:   mail,
	}
}

func (f *authFixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.svc.Register("Test User", email, "hunter2!")
	require.NoError(t, err)
	return u
}

func (f *authFixture) verify(t *testing.T, u *models.User) {
	t.Helper()
	code := f.codes.latestFor(u.ID, domain.CodePurposeVerifyEmail)
	require.NotNil(t, code)
	_, _, _, err := f.svc.Verify(u.Email, code.Code)
	require.NoError(t, err)
}

func TestRegisterIssuesCodeAndEmail(t *testing.T) {
	f := newAuthFixture(t)

	u := f.register(t, "a@example.com")
	assert.Equal(t, domain.RoleClient, u.Role)
	assert.False(t, u.Active)

	code := f.codes.latestFor(u.ID, domain.CodePurposeVerifyEmail)
	require.NotNil(t, code)
	assert.Len(t, code.Code, 6)
	assert.Equal(t, []string{"a@example.com"}, f.mail.sent)
}

func TestRegisterTakenEmailStaysSilent(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@example.com")
	first := f.codes.latestFor(u.ID, domain.CodePurposeVerifyEmail)
	require.NotNil(t, first)

	// A second registration succeeds without creating anything; the
	// unverified holder just gets a fresh code.
	_, err := f.svc.Register("Other", "a@example.com", "different-pass")
	require.NoError(t, err)
	_, err = f.users.GetByID(u.ID + 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	resent := f.codes.latestFor(u.ID, domain.CodePurposeVerifyEmail)
	require.NotNil(t, resent)
	assert.NotEqual(t, first.ID, resent.ID)
	assert.Equal(t, []string{"a@example.com", "a@example.com"}, f.mail.sent)

	// Once the account is verified no more codes go out.
	f.verify(t, u)
	_, err = f.svc.Register("Other", "a@example.com", "different-pass")
	require.NoError(t, err)
	assert.Len(t, f.mail.sent, 2)
}

func TestVerifyActivatesAndIssuesTokens(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@example.com")

	code := f.codes.latestFor(u.ID, domain.CodePurposeVerifyEmail)
	require.NotNil(t, code)

	verified, access, refresh, err := f.svc.Verify("a@example.com", code.Code)
	require.NoError(t, err)
	assert.True(t, verified.Active)
	require.NotNil(t, verified.VerifiedAt)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	// Codes are single use.
	_, _, _, err = f.svc.Verify("a@example.com", code.Code)
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestVerifyWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@example.com")

	_, _, _, err := f.svc.Verify("a@example.com", "000000")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	_, _, _, err = f.svc.Verify("nobody@example.com", "000000")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestResendExpiresPriorCode(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@example.com")
	first := f.codes.latestFor(u.ID, domain.CodePurposeVerifyEmail)
	require.NotNil(t, first)

	f.svc.ResendCode("a@example.com")
	second := f.codes.latestFor(u.ID, domain.CodePurposeVerifyEmail)
	require.NotNil(t, second)
	require.NotEqual(t, first.ID, second.ID)

	_, _, _, err := f.svc.Verify("a@example.com", first.Code)
	if first.Code != second.Code {
		assert.ErrorIs(t, err, domain.ErrInvalidCode)
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@example.com")

	// Not yet verified.
	_, _, _, err := f.svc.Login("a@example.com", "hunter2!")
	assert.ErrorIs(t, err, ErrNotVerified)

	f.verify(t, u)

	_, access, _, err := f.svc.Login("a@example.com", "hunter2!")
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, _, _, err = f.svc.Login("a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, _, _, err = f.svc.Login("nobody@example.com", "hunter2!")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@example.com")
	f.verify(t, u)

	_, _, refresh, err := f.svc.Login("a@example.com", "hunter2!")
	require.NoError(t, err)

	access, newRefresh, err := f.svc.RefreshToken(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)

	_, _, err = f.svc.RefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordReset(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@example.com")
	f.verify(t, u)

	f.svc.ForgotPassword("a@example.com")
	code := f.codes.latestFor(u.ID, domain.CodePurposeResetPassword)
	require.NotNil(t, code)

	require.NoError(t, f.svc.ResetPassword("a@example.com", code.Code, "newpass123"))

	_, _, _, err := f.svc.Login("a@example.com", "hunter2!")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = f.svc.Login("a@example.com", "newpass123")
	assert.NoError(t, err)

	// Unknown addresses are silently ignored.
	f.svc.ForgotPassword("nobody@example.com")
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@example.com")
	f.verify(t, u)

	assert.ErrorIs(t, f.svc.ChangePassword(u.ID, "wrong", "newpass123"), ErrInvalidCreds)
	require.NoError(t, f.svc.ChangePassword(u.ID, "hunter2!", "newpass123"))

	_, _, _, err := f.svc.Login("a@example.com", "newpass123")
	assert.NoError(t, err)
}

func TestDeleteAccountBlockedByActiveOrders(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@example.com")
	f.verify(t, u)

	require.NoError(t, f.orders.CreateIfNoActive(&models.Order{
		ClientID: u.ID,
		GameMode: "competitive",
		Status:   domain.OrderStatusInProgress,
	}))

	assert.ErrorIs(t, f.svc.DeleteAccount(u.ID), domain.ErrActiveOrders)

	o, err := f.orders.GetByID(1)
	require.NoError(t, err)
	o.Status = domain.OrderStatusCompleted
	require.NoError(t, f.orders.Update(o))

	require.NoError(t, f.svc.DeleteAccount(u.ID))
	deleted, err := f.users.GetByID(u.ID)
	require.NoError(t, err)
	assert.False(t, deleted.Active)
	assert.NotEqual(t, "a@example.com", deleted.Email)
}

func TestSetPayoutKeyEncrypted(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "a@example.com")

	require.NoError(t, f.svc.SetPayoutKey(u.ID, "iban:DE00 1234"))
	stored, err := f.users.GetByID(u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PayoutKey)
	assert.NotContains(t, stored.PayoutKey, "DE00")
}

package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"rankboost/config"
	"rankboost/internal/auth"
	"rankboost/internal/crypto"
	"rankboost/internal/domain"
	"rankboost/internal/logger"
	"rankboost/internal/models"
	"rankboost/pkg/email"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrNotVerified  = errors.New("account not verified")
)

const codeTTL = 15 * time.Minute

type UserStore interface {
	Create(u *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(u *models.User) error
	Anonymize(id uint) error
}

type CodeStore interface {
	Issue(code *models.VerificationCode) error
	FindLive(userID uint, code, purpose string) (*models.VerificationCode, error)
	MarkUsed(id uint) error
}

type ActiveOrderCounter interface {
	CountActiveByClient(clientID uint) (int64, error)
	CountActiveByBooster(boosterID uint) (int64, error)
}

type AuthService struct {
	cfg    *config.Config
	users  UserStore
	codes  CodeStore
	orders ActiveOrderCounter
	mail   email.Sender
	cipher *crypto.Cipher
}

func NewAuthService(cfg *config.Config, users UserStore, codes CodeStore, orders ActiveOrderCounter, mail email.Sender, cipher *crypto.Cipher) *AuthService {
	return &AuthService{cfg: cfg, users: users, codes: codes, orders: orders, mail: mail, cipher: cipher}
}

// Register creates an inactive CLIENT account and emails a verification
// code. A taken email succeeds without creating anything so the response
// cannot reveal whether the address exists; an unverified holder gets their
// code re-sent instead.
func (s *AuthService) Register(name, emailAddr, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(emailAddr)
	if err == nil {
		if !existing.Active {
			s.issueAndSend(existing, domain.CodePurposeVerifyEmail)
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:         name,
		Email:        emailAddr,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		Active:       false,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	s.issueAndSend(u, domain.CodePurposeVerifyEmail)
	return u, nil
}

// Verify consumes a live code, activates the account and returns a token
// pair. A consumed or expired code fails as invalid.
func (s *AuthService) Verify(emailAddr, code string) (*models.User, string, string, error) {
	u, err := s.users.GetByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", domain.ErrInvalidCode
		}
		return nil, "", "", err
	}
	vc, err := s.codes.FindLive(u.ID, code, domain.CodePurposeVerifyEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", domain.ErrInvalidCode
		}
		return nil, "", "", err
	}
	if err := s.codes.MarkUsed(vc.ID); err != nil {
		return nil, "", "", err
	}
	now := time.Now()
	u.Active = true
	u.VerifiedAt = &now
	if err := s.users.Update(u); err != nil {
		return nil, "", "", err
	}
	access, refresh, err := s.tokenPair(u)
	return u, access, refresh, err
}

// ResendCode issues a fresh verification code for an unverified account.
// Silent for unknown emails and already-active accounts.
func (s *AuthService) ResendCode(emailAddr string) {
	u, err := s.users.GetByEmail(emailAddr)
	if err != nil || u.Active {
		return
	}
	s.issueAndSend(u, domain.CodePurposeVerifyEmail)
}

func (s *AuthService) Login(emailAddr, password string) (*models.User, string, string, error) {
	u, err := s.users.GetByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	if !u.Active {
		return nil, "", "", ErrNotVerified
	}
	access, refresh, err := s.tokenPair(u)
	return u, access, refresh, err
}

func (s *AuthService) RefreshToken(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	u, err := s.users.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	if !u.Active {
		return "", "", auth.ErrInvalidToken
	}
	return s.tokenPair(u)
}

func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(u)
}

// ForgotPassword issues a reset code. Deliberately silent when the email is
// unknown so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(emailAddr string) {
	u, err := s.users.GetByEmail(emailAddr)
	if err != nil {
		return
	}
	s.issueAndSend(u, domain.CodePurposeResetPassword)
}

func (s *AuthService) ResetPassword(emailAddr, code, newPassword string) error {
	u, err := s.users.GetByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidCode
		}
		return err
	}
	vc, err := s.codes.FindLive(u.ID, code, domain.CodePurposeResetPassword)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidCode
		}
		return err
	}
	if err := s.codes.MarkUsed(vc.ID); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(u)
}

// DeleteAccount refuses while any order is still active; otherwise the row
// is anonymized in place so order history stays intact.
func (s *AuthService) DeleteAccount(userID uint) error {
	asClient, err := s.orders.CountActiveByClient(userID)
	if err != nil {
		return err
	}
	asBooster, err := s.orders.CountActiveByBooster(userID)
	if err != nil {
		return err
	}
	if asClient > 0 || asBooster > 0 {
		return domain.ErrActiveOrders
	}
	return s.users.Anonymize(userID)
}

// SetPayoutKey stores the booster's payout destination encrypted at rest.
func (s *AuthService) SetPayoutKey(userID uint, key string) error {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	enc, err := s.cipher.Encrypt(key)
	if err != nil {
		return err
	}
	u.PayoutKey = enc
	return s.users.Update(u)
}

func (s *AuthService) tokenPair(u *models.User) (string, string, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) issueAndSend(u *models.User, purpose string) {
	code, err := generateCode()
	if err != nil {
		logger.Log.Error("code generation failed", zap.Error(err))
		return
	}
	vc := &models.VerificationCode{
		UserID:    u.ID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(codeTTL),
	}
	if err := s.codes.Issue(vc); err != nil {
		logger.Log.Error("code issue failed", zap.Uint("user_id", u.ID), zap.Error(err))
		return
	}
	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", code)
	if purpose == domain.CodePurposeResetPassword {
		subject = "Your password reset code"
		body = fmt.Sprintf("Your password reset code is %s. It expires in 15 minutes.", code)
	}
	if err := s.mail.Send(u.Email, subject, body); err != nil {
		logger.Log.Warn("email send failed", zap.Uint("user_id", u.ID), zap.Error(err))
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

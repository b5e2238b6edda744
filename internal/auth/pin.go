package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"trip_ledger/internal/models"
)

var (
	ErrInvalidPIN  = errors.New("invalid PIN")
	ErrInvalidRole = errors.New("invalid role")
)

// TokenTimeLayout is the timestamp format embedded in verification tokens.
const TokenTimeLayout = "2006-01-02 15:04:05"

// PinVerifier unlocks the lock screen. It is a role check, not authentication:
// the token it hands out is unsigned and nothing ever validates it.
type PinVerifier struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPinVerifier(db *gorm.DB, now func() time.Time) *PinVerifier {
	if now == nil {
		now = time.Now
	}
	return &PinVerifier{db: db, now: now}
}

// Verification is a successful PIN check.
type Verification struct {
	Role  string
	Token string
}

// Verify matches pin against every account and returns the role it unlocks.
func (v *PinVerifier) Verify(ctx context.Context, pin string) (Verification, error) {
	if pin == "" {
		return Verification{}, ErrInvalidPIN
	}

	var accounts []models.Account
	if err := v.db.WithContext(ctx).Order("id").Find(&accounts).Error; err != nil {
		return Verification{}, fmt.Errorf("load accounts: %w", err)
	}

	for _, acc := range accounts {
		if bcrypt.CompareHashAndPassword([]byte(acc.Pin), []byte(pin)) != nil {
			continue
		}
		switch acc.Role {
		case models.RoleSuper, models.RoleAdmin:
			return Verification{Role: acc.Role, Token: v.token()}, nil
		default:
			return Verification{}, ErrInvalidRole
		}
	}
	return Verification{}, ErrInvalidPIN
}

func (v *PinVerifier) token() string {
	return base64.StdEncoding.EncodeToString([]byte("verified_" + v.now().Format(TokenTimeLayout)))
}

// SeedAccounts makes the accounts table match pins (role -> PIN).
// Existing hashes are kept when they still match; roles missing from pins are removed.
func SeedAccounts(ctx context.Context, db *gorm.DB, pins map[string]string) error {
	if len(pins) == 0 {
		logrus.Warn("no PIN configured; /pin-verify will reject every PIN")
	}
	roles := make([]string, 0, len(pins))
	for role, pin := range pins {
		roles = append(roles, role)
		var acc models.Account
		err := db.WithContext(ctx).Where("role = ?", role).First(&acc).Error
		switch {
		case err == nil:
			if bcrypt.CompareHashAndPassword([]byte(acc.Pin), []byte(pin)) == nil {
				continue
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			acc = models.Account{Role: role}
		default:
			return fmt.Errorf("load %s account: %w", role, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash %s PIN: %w", role, err)
		}
		acc.Pin = string(hash)
		if err := db.WithContext(ctx).Save(&acc).Error; err != nil {
			return fmt.Errorf("save %s account: %w", role, err)
		}
		logrus.WithField("role", role).Info("PIN account seeded")
	}

	// hard delete: role is unique and a soft-deleted row would block re-seeding it
	stale := db.WithContext(ctx).Unscoped()
	if len(roles) > 0 {
		stale = stale.Where("role NOT IN ?", roles)
	} else {
		stale = stale.Where("1 = 1")
	}
	res := stale.Delete(&models.Account{})
	if res.Error != nil {
		return fmt.Errorf("remove stale accounts: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		logrus.WithField("count", res.RowsAffected).Info("PIN accounts without a configured PIN removed")
	}
	return nil
}

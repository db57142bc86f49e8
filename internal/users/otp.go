package users

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/Thanajai/GrowFuse/internal/shared/storage/kv"
	"github.com/Thanajai/GrowFuse/internal/shared/telemetry"
	"github.com/Thanajai/GrowFuse/internal/shared/util"
)

const otpKeyPrefix = "growfuse_otp_"

var (
	ErrOTPNotFound = errors.New("users: no pending code for phone")
	ErrOTPMismatch = errors.New("users: code does not match")
	ErrOTPExpired  = errors.New("users: code expired")
)

type otpRecord struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// OTPService issues and verifies the mock login codes. Codes are never sent
// anywhere: they are logged for the operator, matching the original
// console-logged mock. Verification consumes the code.
type OTPService struct {
	Store kv.Store
	TTL   time.Duration

	now func() time.Time
}

func NewOTPService(store kv.Store, ttl time.Duration) *OTPService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OTPService{Store: store, TTL: ttl, now: time.Now}
}

// Request generates a fresh 6-digit code for phone, replacing any pending one.
func (s *OTPService) Request(ctx context.Context, phone string) error {
	if phone == "" {
		return ErrPhoneRequired
	}
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	record := otpRecord{
		ID:        uuid.NewString(),
		Code:      code,
		ExpiresAt: s.now().UTC().Add(s.TTL),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode otp record: %w", err)
	}
	if err := s.Store.Set(ctx, otpKeyPrefix+phone, string(data)); err != nil {
		return fmt.Errorf("store otp record: %w", err)
	}

	telemetry.Info("otp.issued", map[string]any{
		"otp_id": record.ID,
		"phone":  util.HashPhoneKey(phone),
		"code":   code, // mock delivery channel
	})
	return nil
}

// Verify checks code against the pending record for phone and consumes it on
// success. A wrong code leaves the record in place for another attempt.
func (s *OTPService) Verify(ctx context.Context, phone, code string) error {
	raw, ok, err := s.Store.Get(ctx, otpKeyPrefix+phone)
	if err != nil || !ok {
		return ErrOTPNotFound
	}

	var record otpRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		_ = s.Store.Delete(ctx, otpKeyPrefix+phone)
		return ErrOTPNotFound
	}

	if s.now().UTC().After(record.ExpiresAt) {
		_ = s.Store.Delete(ctx, otpKeyPrefix+phone)
		return ErrOTPExpired
	}
	if record.Code != code {
		return ErrOTPMismatch
	}

	if err := s.Store.Delete(ctx, otpKeyPrefix+phone); err != nil {
		telemetry.Error("otp.consume_failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

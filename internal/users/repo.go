package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Thanajai/GrowFuse/internal/shared/storage/kv"
	"github.com/Thanajai/GrowFuse/internal/shared/telemetry"
	"github.com/Thanajai/GrowFuse/internal/shared/util"
)

const (
	dbKey      = "agro_ai_users_db"
	sessionKey = "agro_ai_current_user_phone"
)

var ErrPhoneRequired = errors.New("users: phone is required")

// Repo persists per-phone profiles and the active session through the
// key-value storage port. Every read path passes through sanitizeUser so
// partially written or schema-drifted records never reach callers.
type Repo struct {
	Store kv.Store

	// now is swappable for deterministic ids in tests.
	now func() time.Time
}

func NewRepo(store kv.Store) *Repo {
	return &Repo{Store: store, now: time.Now}
}

// LoginWithPhone finds or creates the profile for phone, records it as the
// active session, and returns a sanitized copy.
func (r *Repo) LoginWithPhone(ctx context.Context, phone string) (User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return User{}, ErrPhoneRequired
	}

	db := r.loadDB(ctx)
	user, ok := r.decodeUser(db, phone)
	if !ok {
		user = r.newUser(phone)
		db[phone] = mustMarshal(user)
		r.saveDB(ctx, db)
	}

	if err := r.Store.Set(ctx, sessionKey, phone); err != nil {
		telemetry.Error("users.session_write_failed", map[string]any{
			"error": err.Error(),
			"phone": util.HashPhoneKey(phone),
		})
	}
	sanitized, _ := r.sanitizeUser(user)
	return sanitized, nil
}

// Logout clears the active session if it belongs to phone; the underlying
// profile is retained for the next login. A caller cannot end another
// phone's session.
func (r *Repo) Logout(ctx context.Context, phone string) {
	current, ok, err := r.Store.Get(ctx, sessionKey)
	if err != nil || !ok || current != phone {
		return
	}
	if err := r.Store.Delete(ctx, sessionKey); err != nil {
		telemetry.Error("users.session_clear_failed", map[string]any{"error": err.Error()})
	}
}

// ByPhone returns the profile stored for phone, or ok=false when none
// exists. Records repaired during sanitization are written back so the
// stored copy converges to a valid shape.
func (r *Repo) ByPhone(ctx context.Context, phone string) (User, bool) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return User{}, false
	}

	db := r.loadDB(ctx)
	raw, exists := db[phone]
	if !exists {
		return User{}, false
	}

	stored := decodeRaw(raw, phone)
	sanitized, valid := r.sanitizeUser(stored)
	if !valid {
		return User{}, false
	}

	if mustMarshal(sanitized) != raw {
		if err := r.Save(ctx, sanitized); err != nil {
			telemetry.Error("users.repair_write_failed", map[string]any{
				"error": err.Error(),
				"phone": util.HashPhoneKey(phone),
			})
		}
	}
	return sanitized, true
}

// Current returns the profile for the active session, or ok=false when
// logged out. The session key is a single-client convenience record; callers
// holding a verified identity should use ByPhone.
func (r *Repo) Current(ctx context.Context) (User, bool) {
	phone, ok, err := r.Store.Get(ctx, sessionKey)
	if err != nil || !ok || strings.TrimSpace(phone) == "" {
		return User{}, false
	}
	return r.ByPhone(ctx, phone)
}

// Save upserts the full profile into the phone-keyed map. The phone field is
// a precondition: a profile with no phone cannot be keyed.
func (r *Repo) Save(ctx context.Context, user User) error {
	if strings.TrimSpace(user.Phone) == "" {
		return ErrPhoneRequired
	}
	db := r.loadDB(ctx)
	db[user.Phone] = mustMarshal(user)
	r.saveDB(ctx, db)
	return nil
}

func (r *Repo) newUser(phone string) User {
	return User{
		ID:                   fmt.Sprintf("user_%d", r.now().UnixMilli()),
		Name:                 "+91 " + phone,
		Phone:                phone,
		Farms:                []Farm{},
		SavedRecommendations: []SavedRecommendation{},
	}
}

// loadDB parses the phone-keyed map, treating corruption as empty.
func (r *Repo) loadDB(ctx context.Context) map[string]string {
	raw, ok, err := r.Store.Get(ctx, dbKey)
	if err != nil {
		telemetry.Error("users.db_read_failed", map[string]any{"error": err.Error()})
		return map[string]string{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return map[string]string{}
	}

	var db map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &db); err != nil {
		telemetry.Error("users.db_corrupt", map[string]any{"error": err.Error()})
		return map[string]string{}
	}
	out := make(map[string]string, len(db))
	for phone, record := range db {
		out[phone] = string(record)
	}
	return out
}

func (r *Repo) saveDB(ctx context.Context, db map[string]string) {
	records := make(map[string]json.RawMessage, len(db))
	for phone, record := range db {
		records[phone] = json.RawMessage(record)
	}
	data, err := json.Marshal(records)
	if err != nil {
		telemetry.Error("users.db_encode_failed", map[string]any{"error": err.Error()})
		return
	}
	if err := r.Store.Set(ctx, dbKey, string(data)); err != nil {
		telemetry.Error("users.db_write_failed", map[string]any{"error": err.Error()})
	}
}

func (r *Repo) decodeUser(db map[string]string, phone string) (User, bool) {
	raw, ok := db[phone]
	if !ok {
		return User{}, false
	}
	return decodeRaw(raw, phone), true
}

// decodeRaw parses a single stored record. A record that does not even parse
// is reduced to its phone key so sanitizeUser can rebuild it.
func decodeRaw(raw, phone string) User {
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return User{Phone: phone}
	}
	if strings.TrimSpace(user.Phone) == "" {
		user.Phone = phone
	}
	return user
}

// sanitizeUser reconstructs a valid profile from possibly malformed data. It
// never fails for input carrying a phone number: absent fields are replaced
// with safe defaults. ok=false only when no phone is present at all.
func (r *Repo) sanitizeUser(user User) (User, bool) {
	if strings.TrimSpace(user.Phone) == "" {
		return User{}, false
	}
	if strings.TrimSpace(user.ID) == "" {
		user.ID = fmt.Sprintf("user_%d", r.now().UnixMilli())
	}
	if strings.TrimSpace(user.Name) == "" {
		user.Name = "+91 " + user.Phone
	}
	if user.Farms == nil {
		user.Farms = []Farm{}
	}
	if user.SavedRecommendations == nil {
		user.SavedRecommendations = []SavedRecommendation{}
	}
	return user, true
}

func mustMarshal(user User) string {
	data, err := json.Marshal(user)
	if err != nil {
		// Profiles carry only strings, numbers, and slices of the same.
		telemetry.Error("users.encode_failed", map[string]any{"error": err.Error()})
		return "{}"
	}
	return string(data)
}

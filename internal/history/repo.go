package history

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Thanajai/GrowFuse/internal/shared/storage/kv"
	"github.com/Thanajai/GrowFuse/internal/shared/telemetry"
	"github.com/Thanajai/GrowFuse/internal/shared/util"
)

const (
	storageKey = "growfuse_history"
	// MaxEntries caps the retained history; insertion evicts the oldest
	// entries beyond the cap.
	MaxEntries = 50
)

// Repo reads and writes the bounded recommendation history through the
// key-value storage port. Storage failures never propagate to callers: reads
// of corrupt data self-heal to an empty history, and failed writes leave the
// prior state in place.
type Repo struct {
	Store kv.Store
}

func NewRepo(store kv.Store) *Repo {
	return &Repo{Store: store}
}

// List returns the stored history, most recent first. A corrupted record is
// dropped and its key cleared so the next write starts clean.
func (r *Repo) List(ctx context.Context) []Entry {
	raw, ok, err := r.Store.Get(ctx, storageKey)
	if err != nil {
		telemetry.Error("history.read_failed", map[string]any{"error": err.Error()})
		return []Entry{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		telemetry.Error("history.corrupt", map[string]any{"error": err.Error()})
		if err := r.Store.Delete(ctx, storageKey); err != nil {
			telemetry.Error("history.clear_failed", map[string]any{"error": err.Error()})
		}
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// Add prepends entry to the history and persists the result, evicting the
// oldest entries beyond MaxEntries. Inline-encoded images are rewritten to
// compact external references before the entry is durably stored. On write
// failure the pre-add history is returned unchanged.
func (r *Repo) Add(ctx context.Context, entry Entry) []Entry {
	existing := r.List(ctx)

	sanitized := entry.clone()
	for i := range sanitized.Recommendations {
		rec := &sanitized.Recommendations[i]
		if strings.HasPrefix(rec.ImageURL, "data:") {
			rec.ImageURL = util.CropImageFallbackURL(rec.EnglishCropName)
		}
	}

	updated := append([]Entry{sanitized}, existing...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		telemetry.Error("history.encode_failed", map[string]any{"error": err.Error()})
		return existing
	}
	if err := r.Store.Set(ctx, storageKey, string(data)); err != nil {
		// The caller's in-memory view may briefly diverge from storage here;
		// the next successful Add resynchronizes.
		telemetry.Error("history.write_failed", map[string]any{
			"error":   err.Error(),
			"entries": len(updated),
		})
		return existing
	}
	return updated
}

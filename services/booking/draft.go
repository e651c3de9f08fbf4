package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"medibook/models"
)

const sessionKeyPrefix = "booking:session:"

// DraftStore persists booking sessions (step cursor plus draft) in Redis so
// an in-progress booking survives reloads. Reads are resilient: a corrupted
// payload is treated as an empty session rather than an error, because a
// broken draft must never crash the flow. Every writer goes through
// read-merge-write (MergeDraft) so one step never clobbers fields another
// step just wrote.
type DraftStore struct {
	cache *redis.Client
	ttl   time.Duration
}

// NewDraftStore wraps a Redis client with the session TTL.
func NewDraftStore(cache *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{cache: cache, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Load fetches a session. found is false only when the key is absent or
// expired; a present-but-corrupt payload loads as an empty session carrying
// the requested id.
func (s *DraftStore) Load(ctx context.Context, sessionID string) (models.BookingSession, bool) {
	data, err := s.cache.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return models.BookingSession{}, false
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return models.BookingSession{SessionID: sessionID, Step: models.StepAppointment}, true
	}
	if !session.Step.Valid() {
		session.Step = models.StepAppointment
	}
	return session, true
}

// Save writes the session back with a refreshed TTL (write-through: callers
// invoke this on the same call that mutated the draft).
func (s *DraftStore) Save(ctx context.Context, session models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session %s: %w", session.SessionID, err)
	}
	if err := s.cache.Set(ctx, sessionKey(session.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session %s: %w", session.SessionID, err)
	}
	return nil
}

// Delete removes the session, ending the draft lifecycle.
func (s *DraftStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session %s: %w", sessionID, err)
	}
	return nil
}

// MergeDraft shallow-merges partial over prev, preferring non-empty new
// values. The one asymmetry is the service field: a rich Detailed value
// already in the store is never replaced by a merely Named one, so catalog
// detail (price, duration) cannot be clobbered by a bare name arriving from
// a later step.
func MergeDraft(prev, partial models.BookingDraft) models.BookingDraft {
	merged := prev

	if partial.Provider.ID != "" {
		merged.Provider = partial.Provider
	}
	if !partial.Service.IsZero() {
		if partial.Service.IsDetailed() || !prev.Service.IsDetailed() {
			merged.Service = partial.Service
		}
	}
	if partial.Date != "" {
		merged.Date = partial.Date
	}
	if partial.Time != "" {
		merged.Time = partial.Time
	}
	if partial.Appointment != nil {
		merged.Appointment = partial.Appointment
	}
	return merged
}

// ReconcileDraft resolves the stored draft against navigation-provided
// state on mount. Navigation state wins outright only when the stored draft
// belongs to a different provider (or there is no stored draft); otherwise
// the store's richer fields win and navigation only fills gaps.
func ReconcileDraft(stored, nav models.BookingDraft) models.BookingDraft {
	if nav.Provider.ID != "" && stored.Provider.ID != nav.Provider.ID {
		return nav
	}
	return MergeDraft(nav, stored)
}

package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
)

func newTestStore(t *testing.T) (*DraftStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewDraftStore(client, 30*time.Minute), mr
}

func TestDraftStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := models.BookingSession{
		SessionID: "sess-1",
		Step:      models.StepPatientDetails,
		Draft: models.BookingDraft{
			Provider: models.ProviderSummary{ID: "prov-1", Name: "City Clinic"},
			Service:  models.DetailedService(models.ServiceDetail{ID: "svc-1", Name: "Consultation", Price: 10000}),
			Date:     "2025-06-16",
			Time:     "9:00 AM",
		},
		PatientID: "pat-1",
		CreatedAt: time.Now().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, session))

	got, found := store.Load(ctx, "sess-1")
	require.True(t, found)
	assert.Equal(t, models.StepPatientDetails, got.Step)
	assert.Equal(t, "prov-1", got.Draft.Provider.ID)
	assert.True(t, got.Draft.Service.IsDetailed())
	assert.Equal(t, 10000.0, got.Draft.Service.Price())
	assert.Equal(t, "9:00 AM", got.Draft.Time)
	assert.Equal(t, "pat-1", got.PatientID)
}

func TestDraftStoreMissingSession(t *testing.T) {
	store, _ := newTestStore(t)
	_, found := store.Load(context.Background(), "nope")
	assert.False(t, found)
}

func TestDraftStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.BookingSession{SessionID: "sess-1"}))
	_, found := store.Load(ctx, "sess-1")
	require.True(t, found)

	mr.FastForward(31 * time.Minute)
	_, found = store.Load(ctx, "sess-1")
	assert.False(t, found)
}

func TestDraftStoreCorruptPayloadLoadsEmpty(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(sessionKey("sess-1"), "{not json"))

	got, found := store.Load(ctx, "sess-1")
	require.True(t, found)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, models.StepAppointment, got.Step)
	assert.True(t, got.Draft.Service.IsZero())
}

func TestDraftStoreUnknownStepResetsToFirst(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(sessionKey("sess-1"), `{"sessionId":"sess-1","step":"checkout"}`))

	got, found := store.Load(ctx, "sess-1")
	require.True(t, found)
	assert.Equal(t, models.StepAppointment, got.Step)
}

func TestDraftStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.BookingSession{SessionID: "sess-1"}))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, found := store.Load(ctx, "sess-1")
	assert.False(t, found)
}

func TestMergeDraftNonEmptyWins(t *testing.T) {
	prev := models.BookingDraft{
		Provider: models.ProviderSummary{ID: "prov-1"},
		Date:     "2025-06-16",
		Time:     "9:00 AM",
	}
	merged := MergeDraft(prev, models.BookingDraft{Date: "2025-06-17"})

	assert.Equal(t, "prov-1", merged.Provider.ID)
	assert.Equal(t, "2025-06-17", merged.Date)
	assert.Equal(t, "9:00 AM", merged.Time)
}

func TestMergeDraftDetailedServiceNotClobbered(t *testing.T) {
	prev := models.BookingDraft{
		Service: models.DetailedService(models.ServiceDetail{ID: "svc-1", Name: "Consultation", Price: 10000}),
	}

	// A bare name must not replace the catalog record.
	merged := MergeDraft(prev, models.BookingDraft{Service: models.NamedService("Consultation")})
	assert.True(t, merged.Service.IsDetailed())
	assert.Equal(t, 10000.0, merged.Service.Price())

	// A detailed value does replace a detailed one.
	merged = MergeDraft(prev, models.BookingDraft{
		Service: models.DetailedService(models.ServiceDetail{ID: "svc-2", Name: "Dental", Price: 15000}),
	})
	assert.Equal(t, "svc-2", merged.Service.Detail.ID)

	// And a named value upgrades an empty or named one.
	merged = MergeDraft(models.BookingDraft{}, models.BookingDraft{Service: models.NamedService("Dental")})
	assert.Equal(t, "Dental", merged.Service.Name)
}

func TestMergeDraftAppointment(t *testing.T) {
	appt := &models.Appointment{ID: "appt-1"}
	merged := MergeDraft(models.BookingDraft{}, models.BookingDraft{Appointment: appt})
	assert.True(t, merged.Committed())

	// An empty partial keeps the committed appointment.
	merged = MergeDraft(merged, models.BookingDraft{Date: "2025-06-18"})
	assert.True(t, merged.Committed())
}

func TestReconcileDraft(t *testing.T) {
	stored := models.BookingDraft{
		Provider: models.ProviderSummary{ID: "prov-1"},
		Service:  models.DetailedService(models.ServiceDetail{ID: "svc-1", Name: "Consultation", Price: 10000}),
		Date:     "2025-06-16",
		Time:     "10:00 AM",
	}

	// Same provider: the stored richer fields survive, navigation only
	// fills gaps.
	nav := models.BookingDraft{
		Provider: models.ProviderSummary{ID: "prov-1"},
		Service:  models.NamedService("Consultation"),
	}
	got := ReconcileDraft(stored, nav)
	assert.True(t, got.Service.IsDetailed())
	assert.Equal(t, "2025-06-16", got.Date)
	assert.Equal(t, "10:00 AM", got.Time)

	// Different provider: navigation state wins outright.
	nav = models.BookingDraft{Provider: models.ProviderSummary{ID: "prov-2"}}
	got = ReconcileDraft(stored, nav)
	assert.Equal(t, "prov-2", got.Provider.ID)
	assert.True(t, got.Service.IsZero())
	assert.Equal(t, "", got.Date)

	// No stored draft at all: navigation passes through.
	got = ReconcileDraft(models.BookingDraft{}, nav)
	assert.Equal(t, "prov-2", got.Provider.ID)
}

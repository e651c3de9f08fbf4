package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
	"medibook/utils"
)

type stubProviderRepo struct {
	provider *models.Provider
	err      error
}

func (r *stubProviderRepo) GetByID(id string) (*models.Provider, error) {
	if r.err != nil {
		return nil, r.err
	}
	p := *r.provider
	return &p, nil
}

func (r *stubProviderRepo) GetAll() ([]models.Provider, error) {
	return []models.Provider{*r.provider}, nil
}

type stubAppointmentRepo struct {
	mu        sync.Mutex
	created   []*models.Appointment
	createErr error

	// When set, Create signals entered and blocks until release closes,
	// so tests can hold a submission in flight.
	entered chan struct{}
	release chan struct{}
}

func (r *stubAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	if r.entered != nil {
		r.entered <- struct{}{}
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, appt)
	return nil
}

func (r *stubAppointmentRepo) createdCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func (r *stubAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (r *stubAppointmentRepo) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return nil
}

func (r *stubAppointmentRepo) EnsureIndexes(ctx context.Context) error { return nil }

type stubProfileService struct {
	profile *models.PatientProfile
}

func (s *stubProfileService) GetCurrentPatientProfile(ctx context.Context, patientID string) (*models.PatientProfile, error) {
	if s.profile == nil {
		return nil, errors.New("profile not found")
	}
	return s.profile, nil
}

type stubGateway struct {
	calls int
	last  models.PaymentInitRequest
	err   error
}

func (g *stubGateway) InitializePayment(ctx context.Context, req models.PaymentInitRequest) (*models.PaymentInit, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return nil, g.err
	}
	return &models.PaymentInit{AuthorizationURL: "https://checkout.example/cs_test_1", Reference: "cs_test_1"}, nil
}

func testProvider() *models.Provider {
	return &models.Provider{
		ID:   "prov-1",
		Name: "City Clinic",
		Services: []models.ServiceDetail{
			{ID: "svc-1", Name: "Consultation", Price: 10000, Duration: 30},
			{ID: "svc-2", Name: "Dental Checkup", Price: 15000, Duration: 30},
		},
		WorkingHours: []models.WorkingHoursEntry{
			{Weekday: "Monday", IsAvailable: true, StartTime: "9:00 AM", EndTime: "11:00 AM"},
			{Weekday: "Tuesday", IsAvailable: false},
		},
	}
}

type testFlow struct {
	svc      *DefaultBookingFlowService
	provRepo *stubProviderRepo
	apptRepo *stubAppointmentRepo
	profiles *stubProfileService
	gateway  *stubGateway
	mr       *miniredis.Miniredis
	cache    *redis.Client
}

func newTestFlow(t *testing.T) *testFlow {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &testFlow{
		provRepo: &stubProviderRepo{provider: testProvider()},
		apptRepo: &stubAppointmentRepo{},
		profiles: &stubProfileService{},
		gateway:  &stubGateway{},
		mr:       mr,
		cache:    client,
	}
	f.svc = NewBookingFlowService(
		f.provRepo, f.apptRepo, f.profiles, f.gateway,
		NewDraftStore(client, utils.BookingSessionTTL), client,
	)
	return f
}

// startSubmittable walks a session to patient-details with a complete draft.
func (f *testFlow) startSubmittable(t *testing.T, ctx context.Context) *models.BookingSession {
	t.Helper()
	session, err := f.svc.StartSession(ctx, StartSessionInput{
		ProviderID: "prov-1",
		Service:    models.NamedService("Consultation"),
		Date:       "2025-06-16",
		Time:       "9:00 AM",
	})
	require.NoError(t, err)
	session, err = f.svc.Advance(ctx, session.SessionID, false)
	require.NoError(t, err)
	require.Equal(t, models.StepPatientDetails, session.Step)
	return session
}

func TestStartSessionNew(t *testing.T) {
	f := newTestFlow(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, StartSessionInput{
		ProviderID: "prov-1",
		Service:    models.NamedService("Consultation"),
		Date:       "2025-06-16",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, models.StepAppointment, session.Step)
	assert.Equal(t, "City Clinic", session.Draft.Provider.Name)
	// The bare name resolved against the catalog.
	assert.True(t, session.Draft.Service.IsDetailed())
	assert.Equal(t, 10000.0, session.Draft.Service.Price())

	// And the session is durable.
	got, err := f.svc.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, got.SessionID)
}

func TestStartSessionRequiresProvider(t *testing.T) {
	f := newTestFlow(t)
	_, err := f.svc.StartSession(context.Background(), StartSessionInput{})
	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "providerRequired", flowErr.Code)
}

func TestStartSessionResumeKeepsStoredDraft(t *testing.T) {
	f := newTestFlow(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, StartSessionInput{
		ProviderID: "prov-1",
		Service:    models.NamedService("Consultation"),
		Date:       "2025-06-16",
		Time:       "10:00 AM",
	})
	require.NoError(t, err)
	session, err = f.svc.Advance(ctx, session.SessionID, false)
	require.NoError(t, err)

	// A reload re-enters with a thinner navigation payload. The stored
	// step and richer fields must survive.
	resumed, err := f.svc.StartSession(ctx, StartSessionInput{
		SessionID:  session.SessionID,
		ProviderID: "prov-1",
		Service:    models.NamedService("Consultation"),
	})
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, resumed.SessionID)
	assert.Equal(t, models.StepPatientDetails, resumed.Step)
	assert.Equal(t, "2025-06-16", resumed.Draft.Date)
	assert.Equal(t, "10:00 AM", resumed.Draft.Time)
	assert.True(t, resumed.Draft.Service.IsDetailed())
}

func TestStartSessionResumeUnknownIDStartsFresh(t *testing.T) {
	f := newTestFlow(t)
	session, err := f.svc.StartSession(context.Background(), StartSessionInput{
		SessionID:  "expired-session",
		ProviderID: "prov-1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "expired-session", session.SessionID)
	assert.Equal(t, models.StepAppointment, session.Step)
}

func TestGetSessionNotFound(t *testing.T) {
	f := newTestFlow(t)
	_, err := f.svc.GetSession(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateDraftUpgradesNamedService(t *testing.T) {
	f := newTestFlow(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, StartSessionInput{ProviderID: "prov-1"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateDraft(ctx, session.SessionID, models.BookingDraft{
		Service: models.NamedService("Dental Checkup"),
		Date:    "2025-06-16",
	})
	require.NoError(t, err)
	require.True(t, updated.Draft.Service.IsDetailed())
	assert.Equal(t, "svc-2", updated.Draft.Service.Detail.ID)
	assert.Equal(t, "2025-06-16", updated.Draft.Date)
}

func TestAvailability(t *testing.T) {
	f := newTestFlow(t)
	ctx := context.Background()

	// 2025-06-02 is a Monday; before opening both slots are bookable.
	now := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)
	result, err := f.svc.Availability(ctx, "prov-1", "2025-06-02", now)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "10:00 AM"}, result.Slots)
	assert.Empty(t, result.NextAvailable)

	// Mid-morning the 9:00 slot has passed.
	now = time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC)
	result, err = f.svc.Availability(ctx, "prov-1", "2025-06-02", now)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, result.Slots)
}

func TestAvailabilityClosedDaySuggestsNext(t *testing.T) {
	f := newTestFlow(t)
	now := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

	// Tuesday is flagged closed; the next open weekday is the following
	// Monday.
	result, err := f.svc.Availability(context.Background(), "prov-1", "2025-06-03", now)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Equal(t, "2025-06-09", result.NextAvailable)
}

func TestAvailabilityRejectsBadDate(t *testing.T) {
	f := newTestFlow(t)
	_, err := f.svc.Availability(context.Background(), "prov-1", "03/06/2025", time.Now())
	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "invalidDate", flowErr.Code)
}

func TestAdvanceAndGoBack(t *testing.T) {
	f := newTestFlow(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, StartSessionInput{ProviderID: "prov-1"})
	require.NoError(t, err)

	session, err = f.svc.Advance(ctx, session.SessionID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StepPatientDetails, session.Step)

	session, err = f.svc.Advance(ctx, session.SessionID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StepLogin, session.Step)

	session, exits, err := f.svc.GoBack(ctx, session.SessionID, false)
	require.NoError(t, err)
	assert.False(t, exits)
	assert.Equal(t, models.StepPatientDetails, session.Step)

	session, exits, err = f.svc.GoBack(ctx, session.SessionID, false)
	require.NoError(t, err)
	assert.False(t, exits)
	assert.Equal(t, models.StepAppointment, session.Step)

	// Back from the first step leaves the flow.
	_, exits, err = f.svc.GoBack(ctx, session.SessionID, false)
	require.NoError(t, err)
	assert.True(t, exits)
}

func TestAttachPatientSnapsLoginBack(t *testing.T) {
	f := newTestFlow(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, StartSessionInput{ProviderID: "prov-1"})
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, session.SessionID, false)
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, session.SessionID, false)
	require.NoError(t, err)

	got, err := f.svc.AttachPatient(ctx, session.SessionID, "pat-1")
	require.NoError(t, err)
	assert.Equal(t, "pat-1", got.PatientID)
	assert.Equal(t, models.StepPatientDetails, got.Step)
}

func TestCancelSession(t *testing.T) {
	f := newTestFlow(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, StartSessionInput{ProviderID: "prov-1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelSession(ctx, session.SessionID))
	_, err = f.svc.GetSession(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitalwatch/internal/client"
	"vitalwatch/internal/mockdata"
	"vitalwatch/internal/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestBackend(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	gen := mockdata.New(rand.New(rand.NewSource(1)))
	store := NewStore()
	store.Seed(gen, 3)

	srv := NewServer(store, gen, logger)
	ts := httptest.NewServer(srv.Router("/api"))
	t.Cleanup(ts.Close)
	return srv, ts
}

func doJSON(t *testing.T, method, url string, payload, out any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func firstPatientID(t *testing.T, baseURL string) string {
	t.Helper()
	var env models.PatientListEnvelope
	doJSON(t, http.MethodGet, baseURL+"/patients", nil, &env)
	require.NotEmpty(t, env.Patients)
	return env.Patients[0].ID
}

func TestHealth(t *testing.T) {
	_, ts := newTestBackend(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPatientLifecycle(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"

	var created models.PatientCreatedEnvelope
	resp := doJSON(t, http.MethodPost, base+"/patients", models.PatientCreate{
		Name: "Jane Doe", Age: 52, Gender: "Female", BloodType: "A+", Region: "North",
	}, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, created.Success)
	require.NotEmpty(t, created.PatientID)

	var got models.PatientEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+created.PatientID, nil, &got)
	require.True(t, got.Success)
	assert.Equal(t, "Jane Doe", got.Patient.Name)
	assert.Equal(t, 52, got.Patient.Age)

	age := 53
	var updated models.Envelope
	resp = doJSON(t, http.MethodPut, base+"/patients/"+created.PatientID, models.PatientUpdate{Age: &age}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, updated.Success)

	doJSON(t, http.MethodGet, base+"/patients/"+created.PatientID, nil, &got)
	assert.Equal(t, 53, got.Patient.Age)
	assert.Equal(t, "Jane Doe", got.Patient.Name, "unset update fields are untouched")
}

func TestGetPatientNotFound(t *testing.T) {
	_, ts := newTestBackend(t)
	var env models.Envelope
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/patients/nope", nil, &env)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Patient not found", env.Error)
}

func TestRecordAbnormalVitalsCreatesAlert(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	var before models.AlertsEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/alerts", nil, &before)

	hr := 135.0
	oxy := 88.0
	resp := doJSON(t, http.MethodPost, base+"/patients/"+pid+"/vitals", models.VitalSign{
		Timestamp:   time.Now().UTC(),
		HeartRate:   &hr,
		OxygenLevel: &oxy,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var after models.AlertsEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/alerts", nil, &after)
	require.Len(t, after.Alerts, len(before.Alerts)+1)

	newest := after.Alerts[len(after.Alerts)-1]
	assert.Equal(t, models.AlertStatusNew, newest.Status)
	require.Len(t, newest.Entries, 2, "one alert batches all abnormal readings")
	assert.Equal(t, models.VitalHeartRate, newest.Entries[0].Vital)
	assert.Equal(t, models.VitalOxygenLevel, newest.Entries[1].Vital)
}

func TestRecordNormalVitalsNoAlert(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	var before models.AlertsEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/alerts", nil, &before)

	hr := 72.0
	temp := 36.8
	doJSON(t, http.MethodPost, base+"/patients/"+pid+"/vitals", models.VitalSign{
		Timestamp:   time.Now().UTC(),
		HeartRate:   &hr,
		Temperature: &temp,
	}, nil)

	var after models.AlertsEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/alerts", nil, &after)
	assert.Len(t, after.Alerts, len(before.Alerts))
}

func TestResolveAlertFlow(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	// Seeding opens one alert for the first patient.
	var open models.AlertsEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/alerts", nil, &open)
	require.Len(t, open.Alerts, 1)
	alertID := open.Alerts[0].ID

	var env models.Envelope
	resp := doJSON(t, http.MethodPost, base+"/alerts/"+alertID+"/resolve", nil, &env)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	// Resolving again succeeds without effect.
	resp = doJSON(t, http.MethodPost, base+"/alerts/"+alertID+"/resolve", nil, &env)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/alerts", nil, &open)
	assert.Empty(t, open.Alerts, "resolved alerts leave the active list")

	resp = doJSON(t, http.MethodPost, base+"/alerts/missing/resolve", nil, &env)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestSimulateFailureToggle(t *testing.T) {
	srv, ts := newTestBackend(t)
	base := ts.URL + "/api"

	var env models.Envelope
	doJSON(t, http.MethodPost, base+"/simulate/failure", nil, &env)
	require.True(t, env.Success)
	assert.True(t, srv.Failing())

	// Every data endpoint fails while the node failure is active.
	var failed models.Envelope
	resp := doJSON(t, http.MethodGet, base+"/patients", nil, &failed)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, failed.Success)
	assert.Equal(t, "simulated node failure", failed.Error)

	// The simulate endpoints stay reachable so the mode can be turned off.
	resp = doJSON(t, http.MethodPost, base+"/simulate/data", nil, &env)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	doJSON(t, http.MethodPost, base+"/simulate/failure", nil, &env)
	assert.False(t, srv.Failing())

	resp = doJSON(t, http.MethodGet, base+"/patients", nil, &models.PatientListEnvelope{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSimulateFailureConcurrentToggles(t *testing.T) {
	srv, ts := newTestBackend(t)
	base := ts.URL + "/api"

	// An even number of concurrent toggles must net out to off; a lost
	// toggle would leave the failure mode on.
	const toggles = 8
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(base+"/simulate/failure", "application/json", nil)
			assert.NoError(t, err)
			if resp != nil {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()
	assert.False(t, srv.Failing())
}

func TestFacadeFallbackDuringSimulatedFailure(t *testing.T) {
	// Through the facade: toggling the node failure makes reads fall back to
	// generated data with no visible error, and recovery restores live data.
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	gen := mockdata.New(rand.New(rand.NewSource(2)))
	c := client.New(client.Config{BaseURL: base, MockFallback: true, Timeout: 2 * time.Second}, logger, gen, nil)

	ctx := context.Background()
	live, err := c.ListPatients(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, live)

	require.True(t, c.SimulateFailure(ctx))

	p, err := c.GetPatient(ctx, live[0].ID)
	require.NoError(t, err)
	assert.Equal(t, live[0].ID, p.ID)
	assert.NotEmpty(t, p.Name)

	require.True(t, c.SimulateFailure(ctx))

	back, err := c.GetPatient(ctx, live[0].ID)
	require.NoError(t, err)
	assert.Equal(t, live[0].Name, back.Name)
}

func TestAssignmentOverwritesRole(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	var created models.DoctorCreatedEnvelope
	doJSON(t, http.MethodPost, base+"/doctors", models.DoctorCreate{
		Name: "Dr. Gray", Specialization: "Cardiology", Region: "North",
	}, &created)
	require.NotEmpty(t, created.DoctorID)

	assign := func(role string) *http.Response {
		var env models.Envelope
		return doJSON(t, http.MethodPost, base+"/doctors/"+created.DoctorID+"/patients/"+pid,
			map[string]string{"relationship_type": role}, &env)
	}
	assert.Equal(t, http.StatusOK, assign(models.RelationshipPrimaryCare).StatusCode)
	assert.Equal(t, http.StatusOK, assign(models.RelationshipSpecialist).StatusCode)

	var docs models.PatientDoctorsEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/doctors", nil, &docs)

	var found []models.PatientDoctorRelationship
	for _, d := range docs.Doctors {
		if d.DoctorID == created.DoctorID {
			found = append(found, d)
		}
	}
	require.Len(t, found, 1, "a pair holds one role at a time")
	assert.Equal(t, models.RelationshipSpecialist, found[0].RelationshipType)

	var roster models.DoctorPatientsEnvelope
	doJSON(t, http.MethodGet, base+"/doctors/"+created.DoctorID+"/patients", nil, &roster)
	require.Len(t, roster.Patients, 1)
	assert.Equal(t, pid, roster.Patients[0].PatientID)
}

func TestAssignPatientRejectsUnknownRole(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	var created models.DoctorCreatedEnvelope
	doJSON(t, http.MethodPost, base+"/doctors", models.DoctorCreate{Name: "Dr. Gray", Specialization: "Cardiology"}, &created)

	var env models.Envelope
	resp := doJSON(t, http.MethodPost, base+"/doctors/"+created.DoctorID+"/patients/"+pid,
		map[string]string{"relationship_type": "BEST_FRIEND"}, &env)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestGetDoctorPatientsUnknownDoctor(t *testing.T) {
	_, ts := newTestBackend(t)
	var env models.Envelope
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/doctors/nope/patients", nil, &env)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestVitalsWindowFilter(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	var all models.VitalsEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/vitals", nil, &all)
	require.Len(t, all.Vitals, 24)

	// Newest first.
	for i := 1; i < len(all.Vitals); i++ {
		assert.True(t, !all.Vitals[i-1].Timestamp.Before(all.Vitals[i].Timestamp))
	}

	newest := all.Vitals[0].Timestamp
	start := newest.Add(-2 * time.Hour)
	url := base + "/patients/" + pid + "/vitals?start_time=" + start.Format(time.RFC3339Nano) +
		"&end_time=" + newest.Format(time.RFC3339Nano)

	var window models.VitalsEnvelope
	doJSON(t, http.MethodGet, url, nil, &window)
	assert.Len(t, window.Vitals, 3, "window bounds are inclusive")
}

func TestVitalsRejectsBadTimestamp(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	var env models.Envelope
	resp := doJSON(t, http.MethodGet, base+"/patients/"+pid+"/vitals?start_time=yesterday", nil, &env)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestAnalyticsLimitAndPeriod(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	var hourly models.AnalyticsEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/analytics?limit=5", nil, &hourly)
	require.Len(t, hourly.Analytics, 5)
	assert.Equal(t, "hourly", hourly.Analytics[0].AnalysisPeriod)
	require.NotNil(t, hourly.Analytics[0].HeartRateAvg)
	assert.True(t, hourly.Analytics[0].Timestamp.After(hourly.Analytics[1].Timestamp))

	var daily models.AnalyticsEnvelope
	doJSON(t, http.MethodGet, base+"/patients/"+pid+"/analytics?period=daily", nil, &daily)
	require.NotEmpty(t, daily.Analytics)
	assert.Equal(t, "daily", daily.Analytics[0].AnalysisPeriod)
	assert.LessOrEqual(t, len(daily.Analytics), 2, "a day of hourly samples spans at most two daily buckets")
}

func TestSimulateDataReseeds(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"

	var created models.PatientCreatedEnvelope
	doJSON(t, http.MethodPost, base+"/patients", models.PatientCreate{Name: "Temp", Age: 30, Gender: "Other"}, &created)

	var env models.Envelope
	doJSON(t, http.MethodPost, base+"/simulate/data", nil, &env)
	require.True(t, env.Success)

	// Reseeding replaces the whole data set, manual records included.
	var gone models.Envelope
	resp := doJSON(t, http.MethodGet, base+"/patients/"+created.PatientID, nil, &gone)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var list models.PatientListEnvelope
	doJSON(t, http.MethodGet, base+"/patients", nil, &list)
	assert.Len(t, list.Patients, 5)
}

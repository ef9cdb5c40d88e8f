package simulator

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitalwatch/internal/models"
)

func TestStreamVitalsPushesReadings(t *testing.T) {
	srv, ts := newTestBackend(t)
	srv.SetStreamInterval(20 * time.Millisecond)

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/ws/patients/p1/vitals"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < 3; i++ {
		var v models.VitalSign
		require.NoError(t, conn.ReadJSON(&v))
		assert.Equal(t, "p1", v.PatientID)
		require.NotNil(t, v.HeartRate)
		require.NotNil(t, v.OxygenLevel)
	}
}

func TestStreamVitalsEvictsClosedPeer(t *testing.T) {
	srv, ts := newTestBackend(t)
	srv.SetStreamInterval(20 * time.Millisecond)

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/ws/patients/p2/vitals"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return srv.hub.Count("p2") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return srv.hub.Count("p2") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStalledSubscriberDoesNotBlockIngestion(t *testing.T) {
	srv, ts := newTestBackend(t)
	srv.SetStreamInterval(time.Millisecond)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	// A subscriber that never reads: the ticker keeps pushing readings at it
	// until its socket buffer and send queue fill up.
	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/ws/patients/" + pid + "/vitals"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	hr := 135.0
	httpClient := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < 50; i++ {
		raw, err := json.Marshal(models.VitalSign{Timestamp: time.Now().UTC(), HeartRate: &hr})
		require.NoError(t, err)
		req, err := http.NewRequest(http.MethodPost, base+"/patients/"+pid+"/vitals", bytes.NewReader(raw))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := httpClient.Do(req)
		require.NoError(t, err, "ingestion must not wait on a subscriber")
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// The stalled peer is evicted once it falls behind.
	require.Eventually(t, func() bool { return srv.hub.Count(pid) == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestRecordVitalsBroadcastsToSubscribers(t *testing.T) {
	_, ts := newTestBackend(t)
	base := ts.URL + "/api"
	pid := firstPatientID(t, base)

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/ws/patients/" + pid + "/vitals"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	hr := 77.0
	at := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	doJSON(t, http.MethodPost, base+"/patients/"+pid+"/vitals", models.VitalSign{
		Timestamp: at,
		HeartRate: &hr,
	}, nil)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.VitalSign
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, pid, got.PatientID)
	require.NotNil(t, got.HeartRate)
	assert.Equal(t, 77.0, *got.HeartRate)
	assert.True(t, got.Timestamp.Equal(at))
}

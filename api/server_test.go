package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andycking/turtlego/api"
)

func newTestServer() *api.Server {
	return api.NewServer(0, 1024, 4, 1, 256, 0)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateSessionAndGetStatus(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created api.SessionCreateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.SessionID)

	statusResp, err := http.Get(srv.URL + "/sessions/" + created.SessionID)
	require.NoError(t, err)
	defer statusResp.Body.Close()
	assert.Equal(t, http.StatusOK, statusResp.StatusCode)

	var status api.SessionStatusResponse
	require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&status))
	assert.Equal(t, created.SessionID, status.SessionID)
	assert.False(t, status.Running)
}

func TestGetStatusUnknownSessionIs404(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sessions/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRunSchedulesAndCompletes(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	var created api.SessionCreateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	body, _ := json.Marshal(api.RunRequest{Source: "repeat 4 { fd 10 rt 90 }"})
	runResp, err := http.Post(srv.URL+"/sessions/"+created.SessionID+"/run", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer runResp.Body.Close()
	assert.Equal(t, http.StatusAccepted, runResp.StatusCode)

	var run api.RunResponse
	require.NoError(t, json.NewDecoder(runResp.Body).Decode(&run))
	assert.True(t, run.Scheduled)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		statusResp, err := http.Get(srv.URL + "/sessions/" + created.SessionID)
		require.NoError(t, err)
		var status api.SessionStatusResponse
		require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&status))
		statusResp.Body.Close()
		if !status.Running {
			// A repeat evaluates to Void, whose string form is empty.
			assert.Equal(t, "", status.Output)
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("run did not complete in time")
}

func TestDestroySessionRemovesIt(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	var created api.SessionCreateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/"+created.SessionID, nil)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	statusResp, err := http.Get(srv.URL + "/sessions/" + created.SessionID)
	require.NoError(t, err)
	defer statusResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, statusResp.StatusCode)
}

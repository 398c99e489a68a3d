package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `00008000: 00150513 	addi	a0, a0, 1
00008004: 00a50533 	add	a0, a0, a0
00008008: 00000013 	nop
0000800c: 00000013 	nop
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := t.TempDir() + "/program.dis"
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0644))
	return path
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func createTestSession(t *testing.T, s *Server) string {
	t.Helper()
	path := writeFixture(t)

	reqBody, err := json.Marshal(SessionCreateRequest{Path: path})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(reqBody))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equalf(t, http.StatusCreated, rec.Code, "body = %s", rec.Body.String())
	var resp SessionCreateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestCreateSessionAndGetStatus(t *testing.T) {
	s := NewServer(0)
	sessionID := createTestSession(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/"+sessionID, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equalf(t, http.StatusOK, rec.Code, "body = %s", rec.Body.String())
	var status SessionStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, sessionID, status.SessionID)
	assert.Equal(t, 1, status.OriginalBundleCount)
}

func TestGetBundlesOriginalAndOptimized(t *testing.T) {
	s := NewServer(0)
	sessionID := createTestSession(t, s)

	for _, which := range []string{"original", "optimized"} {
		t.Run(which, func(t *testing.T) {
			url := "/api/v1/session/" + sessionID + "/bundles"
			if which == "original" {
				url += "?which=original"
			}
			req := httptest.NewRequest(http.MethodGet, url, nil)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			require.Equalf(t, http.StatusOK, rec.Code, "body = %s", rec.Body.String())
			var resp BundlesResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Bundles)
		})
	}
}

func TestGetReportFormats(t *testing.T) {
	s := NewServer(0)
	sessionID := createTestSession(t, s)

	for _, format := range []string{"json", "text", "csv"} {
		t.Run(format, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/session/"+sessionID+"/report?format="+format, nil)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			require.Equalf(t, http.StatusOK, rec.Code, "body = %s", rec.Body.String())
			assert.NotZero(t, rec.Body.Len())
		})
	}
}

func TestDestroySessionThenNotFound(t *testing.T) {
	s := NewServer(0)
	sessionID := createTestSession(t, s)

	delReq := httptest.NewRequest(http.MethodDelete, "/api/v1/session/"+sessionID, nil)
	delRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(delRec, delReq)
	require.Equal(t, http.StatusOK, delRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/session/"+sessionID, nil)
	getRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusNotFound, getRec.Code)
}

func TestCreateSessionMissingPath(t *testing.T) {
	s := NewServer(0)
	reqBody, err := json.Marshal(SessionCreateRequest{})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(reqBody))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndUpdateConfig(t *testing.T) {
	s := NewServer(0)

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	getRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	body, err := json.Marshal(map[string]interface{}{
		"report": map[string]interface{}{"format": "csv"},
	})
	require.NoError(t, err)
	putReq := httptest.NewRequest(http.MethodPut, "/api/v1/config", bytes.NewReader(body))
	putRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(putRec, putReq)
	assert.Equalf(t, http.StatusOK, putRec.Code, "body = %s", putRec.Body.String())
}

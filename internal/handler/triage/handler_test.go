package triage_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	triageHandler "github.com/davemont/deskpilot/internal/handler/triage"
	"github.com/davemont/deskpilot/internal/model/conversation"
	"github.com/davemont/deskpilot/internal/model/customer"
	"github.com/davemont/deskpilot/internal/service/analytics"
	triageService "github.com/davemont/deskpilot/internal/service/triage"
)

func newTestRouter(t *testing.T) (chi.Router, *triageService.Service) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	agg := analytics.New(prometheus.NewRegistry())
	store := customer.NewMemoryStore(customer.Seed())
	svc := triageService.NewService(store, agg, logger)

	r := chi.NewRouter()
	triageHandler.New(svc, store, logger).RegisterRoutes(r)
	return r, svc
}

func createSession(t *testing.T, r chi.Router, customerID string) conversation.Session {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"customerId": customerID})
	req := httptest.NewRequest(http.MethodPost, "/session", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var session conversation.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.ID)
	return session
}

func TestHandleCreateSession(t *testing.T) {
	r, _ := newTestRouter(t)

	session := createSession(t, r, "user123")
	assert.Equal(t, "user123", session.CustomerID)
}

func TestHandleCreateSession_InvalidBody(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/session", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMessage(t *testing.T) {
	r, _ := newTestRouter(t)
	session := createSession(t, r, "user123")

	body, _ := json.Marshal(map[string]string{
		"sessionId": session.ID,
		"content":   "I want to cancel my subscription.",
	})
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var turn conversation.Turn
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	assert.Equal(t, conversation.IntentCancellation, turn.Intent)
	assert.True(t, turn.Verdict.Escalate)
	assert.NotEmpty(t, turn.Reply)
}

func TestHandleMessage_Errors(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing session id", `{"content":"hi"}`, http.StatusBadRequest},
		{"unknown session", `{"sessionId":"nope","content":"hi"}`, http.StatusNotFound},
		{"invalid body", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleTranscript(t *testing.T) {
	r, _ := newTestRouter(t)
	session := createSession(t, r, "user456")

	body, _ := json.Marshal(map[string]string{"sessionId": session.ID, "content": "thanks, great"})
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/session/"+session.ID+"/transcript", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var transcript []conversation.Turn
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &transcript))
	require.Len(t, transcript, 1)
	assert.Equal(t, conversation.SentimentSatisfied, transcript[0].Sentiment)
}

func TestHandleTranscript_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/session/unknown/transcript", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleEscalations(t *testing.T) {
	r, _ := newTestRouter(t)
	session := createSession(t, r, "user123")

	body, _ := json.Marshal(map[string]string{"sessionId": session.ID, "content": "cancel my plan"})
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/session/"+session.ID+"/escalations", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var log []conversation.Escalation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &log))
	require.Len(t, log, 1)
	assert.NotEmpty(t, log[0].Reason)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkrish/concept-engine/pkg/types"
)

type fakeEngine struct {
	result  types.Explanation
	err     error
	topic   string
	minutes int
}

func (f *fakeEngine) Explain(_ context.Context, query string, timeMinutes int) (types.Explanation, error) {
	f.topic = query
	f.minutes = timeMinutes
	if f.err != nil {
		return types.Explanation{}, f.err
	}
	return f.result, nil
}

func doRequest(t *testing.T, engine *fakeEngine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := New(engine, types.ServerConfig{})
	w := httptest.NewRecorder()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doRequest(t, &fakeEngine{}, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRecommendSuccess(t *testing.T) {
	engine := &fakeEngine{result: types.Explanation{
		Topic:         "diode",
		TimeMinutes:   5,
		Explanation:   "Definition:\n\na two terminal device",
		RelatedTopics: []string{"Rectifier", "Zener Diode"},
	}}

	w := doRequest(t, engine, http.MethodPost, "/recommend",
		`{"topic":"diode","time_minutes":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got types.Explanation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, engine.result, got)
	assert.Equal(t, "diode", engine.topic)
	assert.Equal(t, 5, engine.minutes)
}

func TestRecommendTrimsTopic(t *testing.T) {
	engine := &fakeEngine{}
	w := doRequest(t, engine, http.MethodPost, "/recommend",
		`{"topic":"  diode  ","time_minutes":3}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "diode", engine.topic)
}

func TestRecommendMissingTopic(t *testing.T) {
	w := doRequest(t, &fakeEngine{}, http.MethodPost, "/recommend",
		`{"topic":"   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Topic is required", body["error"])
	assert.Equal(t, "", body["explanation"])
	assert.Equal(t, []any{}, body["related_topics"])
}

func TestRecommendInvalidBody(t *testing.T) {
	w := doRequest(t, &fakeEngine{}, http.MethodPost, "/recommend", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendDefaultsMinutes(t *testing.T) {
	engine := &fakeEngine{}

	w := doRequest(t, engine, http.MethodPost, "/recommend", `{"topic":"diode"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultTimeMinutes, engine.minutes)

	w = doRequest(t, engine, http.MethodPost, "/recommend",
		`{"topic":"diode","time_minutes":-3}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultTimeMinutes, engine.minutes)
}

func TestRecommendUpstreamFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("index unavailable")}
	w := doRequest(t, engine, http.MethodPost, "/recommend",
		`{"topic":"diode","time_minutes":5}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// A generic failure body, never partial output.
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "", body["explanation"])
	assert.NotContains(t, w.Body.String(), "index unavailable")
}

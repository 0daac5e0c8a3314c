package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complianceworks/geogate/internal/domain/glossary"
)

func emptyGlossary(t *testing.T) *glossary.Glossary {
	t.Helper()
	return glossary.New(filepath.Join(t.TempDir(), "absent.csv"), zap.NewNop())
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(Config{}, emptyGlossary(t))
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	var captured struct {
		Model          string `json:"model"`
		ResponseFormat struct {
			Type string `json:"type"`
		} `json:"response_format"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"is_geo_compliance_needed\":true,\"reasoning\":\"mandated\",\"relevant_regulation\":\"NetzDG\"}"}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, emptyGlossary(t))
	require.NoError(t, err)

	reply, err := c.Classify(context.Background(), "Require age verification for users in Germany per NetzDG")
	require.NoError(t, err)
	assert.Contains(t, reply, `"relevant_regulation":"NetzDG"`)

	assert.Equal(t, "gpt-4-turbo", captured.Model)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, "Require age verification for users in Germany per NetzDG")
}

func TestClassify_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, emptyGlossary(t))
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), "anything")
	require.Error(t, err)
}

func TestClassify_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, emptyGlossary(t))
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), "anything")
	require.Error(t, err)
}

package mrgitlab

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("PRIVATE-TOKEN"))
		if !strings.HasSuffix(r.URL.Path, "/projects/123/merge_requests/12") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"404 Not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"iid":12,"title":"my MR","web_url":"https://gitlab.example.com/foo/bar/-/merge_requests/12","labels":["bumpMajor","foo"]}`))
	}))
}

func TestNewAdapterWithoutToken(t *testing.T) {
	_, err := NewAdapter("123", 12, AdapterOptions{})
	assert.ErrorIs(t, err, ErrTokenRequired)
}

func TestGetMergeRequest(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	adapter, err := NewAdapter("123", 12, AdapterOptions{Token: "secret", BaseURL: server.URL})
	assert.Nil(t, err)
	m, err := adapter.GetMergeRequest()
	assert.Nil(t, err)
	assert.Equal(t, 12, m.IID)
	assert.Equal(t, "my MR", m.Title)
	assert.Equal(t, "bumpMajor,foo", m.RawLabels)
	assert.Equal(t, "https://gitlab.example.com/foo/bar/-/merge_requests/12", m.WebURL)
}

func TestGetMergeRequestNotFound(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	adapter, err := NewAdapter("123", 13, AdapterOptions{Token: "secret", BaseURL: server.URL})
	assert.Nil(t, err)
	_, err = adapter.GetMergeRequest()
	assert.NotNil(t, err)
}

func TestGetMergeRequestWithoutIID(t *testing.T) {
	adapter, err := NewAdapter("123", 0, AdapterOptions{Token: "secret"})
	assert.Nil(t, err)
	m, err := adapter.GetMergeRequest()
	assert.Nil(t, err)
	assert.Nil(t, m)
	assert.Equal(t, "gitlab--123-0", adapter.Key())
}

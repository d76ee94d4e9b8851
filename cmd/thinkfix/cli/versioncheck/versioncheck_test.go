package versioncheck

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitHubRelease(t *testing.T) {
	version, err := parseGitHubRelease([]byte(`{"tag_name": "v1.2.3", "prerelease": false}`))
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", version)
}

func TestParseGitHubRelease_Prerelease(t *testing.T) {
	_, err := parseGitHubRelease([]byte(`{"tag_name": "v2.0.0-rc.1", "prerelease": true}`))
	assert.Error(t, err)
}

func TestParseGitHubRelease_EmptyTag(t *testing.T) {
	_, err := parseGitHubRelease([]byte(`{"tag_name": "", "prerelease": false}`))
	assert.Error(t, err)
}

func TestParseGitHubRelease_InvalidJSON(t *testing.T) {
	_, err := parseGitHubRelease([]byte("not json"))
	assert.Error(t, err)
}

func TestIsOutdated(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"v1.0.0", "v1.0.1", true},
		{"v1.0.0", "v1.0.0", false},
		{"v1.1.0", "v1.0.9", false},
		{"1.0.0", "v1.1.0", true}, // missing v prefix is tolerated
		{"v0.9.0", "1.0.0", true},
	}

	for _, tt := range tests {
		if got := isOutdated(tt.current, tt.latest); got != tt.want {
			t.Errorf("isOutdated(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
		}
	}
}

func TestFetchLatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name": "v1.4.0", "prerelease": false}`))
	}))
	defer server.Close()

	oldURL := githubAPIURL
	githubAPIURL = server.URL
	defer func() { githubAPIURL = oldURL }()

	version, err := fetchLatestVersion()
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", version)
}

func TestFetchLatestVersion_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	oldURL := githubAPIURL
	githubAPIURL = server.URL
	defer func() { githubAPIURL = oldURL }()

	_, err := fetchLatestVersion()
	assert.Error(t, err)
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cache := &VersionCache{}
	require.NoError(t, saveCache(dir, cache))

	loaded, err := loadCache(dir)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}

package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"api": map[string]any{
			"baseUrl": "http://localhost:8000",
			"timeout": "30s",
		},
		"poll": map[string]any{
			"profileInterval": "5m",
			"dealsInterval":   "30s",
		},
		"session": map[string]any{
			"customerAddressSync": "local",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "API_BASEURL", want: "api.baseUrl"},
		{envKey: "API_TIMEOUT", want: "api.timeout"},
		{envKey: "POLL_PROFILEINTERVAL", want: "poll.profileInterval"},
		{envKey: "SESSION_CUSTOMERADDRESSSYNC", want: "session.customerAddressSync"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

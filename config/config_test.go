package config

import (
	"reflect"
	"testing"
)

func TestParseAllowedOrigins(t *testing.T) {
	tests := []struct {
		name    string
		origins string
		want    []string
	}{
		{"single", "http://localhost:3000", []string{"http://localhost:3000"}},
		{"multiple", "https://app.retailpulse.io,https://staging.retailpulse.io",
			[]string{"https://app.retailpulse.io", "https://staging.retailpulse.io"}},
		{"spaces and empties", " https://app.retailpulse.io , ,https://ops.retailpulse.io",
			[]string{"https://app.retailpulse.io", "https://ops.retailpulse.io"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAllowedOrigins(tt.origins); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAllowedOrigins() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInitConf(t *testing.T) {
	t.Setenv("RP_REDIS_HOST", "cache.internal")
	t.Setenv("RP_REDIS_PORT", "6380")

	config := &Configuration{
		AppName:   "retailpulse_test",
		Env:       DEVELOPMENT,
		Port:      8080,
		RedisHost: "localhost",
		RedisPort: 6379,
	}
	if err := InitConf(config); err != nil {
		t.Fatalf("InitConf() error = %v", err)
	}

	if got := GetConfig().RedisHost; got != "cache.internal" {
		t.Errorf("RedisHost = %v, want env override", got)
	}
	if got := GetConfig().RedisPort; got != 6380 {
		t.Errorf("RedisPort = %v, want 6380", got)
	}
	if !IsDevelopment() {
		t.Errorf("IsDevelopment() = false, want true")
	}
	if IsProduction() {
		t.Errorf("IsProduction() = true, want false")
	}

	if err := InitConf(config); err == nil {
		t.Errorf("second InitConf() should fail")
	}
}

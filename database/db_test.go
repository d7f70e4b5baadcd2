package database

import (
	"strings"
	"testing"
)

func TestDSNParams_AddsDefaults(t *testing.T) {
	t.Setenv("DB_TLS", "false")

	got := dsnParams("charset=utf8mb4&parseTime=True&loc=Local")
	for _, want := range []string{"timeout=10s", "readTimeout=10s", "writeTimeout=10s", "clientFoundRows=true"} {
		if !strings.Contains(got, want) {
			t.Errorf("dsnParams missing %q in %q", want, got)
		}
	}
}

func TestDSNParams_KeepsExplicitValues(t *testing.T) {
	t.Setenv("DB_TLS", "false")

	in := "charset=utf8mb4&timeout=3s&readTimeout=3s&writeTimeout=3s&clientFoundRows=false"
	got := dsnParams(in)
	if got != in {
		t.Errorf("dsnParams rewrote explicit params: %q -> %q", in, got)
	}
}

func TestDSNParams_TLSModes(t *testing.T) {
	t.Setenv("DB_TLS", "true")
	t.Setenv("DB_TLS_VERIFY", "true")
	if got := dsnParams("charset=utf8mb4"); !strings.Contains(got, "tls=custom") {
		t.Errorf("expected tls=custom, got %q", got)
	}

	t.Setenv("DB_TLS_VERIFY", "false")
	if got := dsnParams("charset=utf8mb4"); !strings.Contains(got, "tls=true") {
		t.Errorf("expected tls=true, got %q", got)
	}
}

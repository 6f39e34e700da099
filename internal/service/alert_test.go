package service

import (
	"os"
	"path/filepath"
	"testing"

	"sentinel/internal/model"
)

func writeClips(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("mp3"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestAlertKind(t *testing.T) {
	tests := []struct {
		status model.Status
		kind   string
		ok     bool
	}{
		{model.StatusSafe, "safe", true},
		{model.StatusUnsafe, "danger", true},
		{model.StatusCaution, "caution", true},
		{model.StatusUnknown, "", false},
		{model.StatusIdle, "", false},
		{model.StatusScanning, "", false},
	}
	for _, tt := range tests {
		kind, ok := AlertKind(tt.status)
		if kind != tt.kind || ok != tt.ok {
			t.Errorf("AlertKind(%s) = %q,%v; want %q,%v", tt.status, kind, ok, tt.kind, tt.ok)
		}
	}
}

func TestAlertService_Select(t *testing.T) {
	dir := writeClips(t, "hausa_danger.mp3", "english_safe.mp3", "english_caution.mp3")
	a := NewAlertService(dir, "english")

	tests := []struct {
		name     string
		status   model.Status
		language string
		want     string
		ok       bool
	}{
		{"Hausa danger", model.StatusUnsafe, "hausa", "/audio/hausa_danger.mp3", true},
		{"Mixed case language", model.StatusUnsafe, " HAUSA ", "/audio/hausa_danger.mp3", true},
		{"Unknown language falls back", model.StatusSafe, "klingon", "/audio/english_safe.mp3", true},
		{"Missing clip", model.StatusSafe, "yoruba", "", false},
		{"No clip for unknown", model.StatusUnknown, "english", "", false},
		{"No clip for scanning", model.StatusScanning, "english", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := a.Select(tt.status, tt.language)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Select() = %q,%v; want %q,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNewAlertService_InvalidDefault(t *testing.T) {
	a := NewAlertService(t.TempDir(), "latin")
	if a.DefaultLanguage != "english" {
		t.Errorf("Expected english fallback, got %s", a.DefaultLanguage)
	}
}

func TestAlertService_MissingDir(t *testing.T) {
	a := NewAlertService(filepath.Join(t.TempDir(), "nope"), "igbo")
	if _, ok := a.Select(model.StatusCaution, "igbo"); ok {
		t.Error("Expected missing directory to fail silently")
	}
}

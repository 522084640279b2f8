package internal

import (
	"strings"
	"testing"
)

func TestPrintBanner(t *testing.T) {
	cfg := NewDefaultConfig()
	var buf strings.Builder
	printBanner(&buf, cfg, "/tmp/notes")
	out := buf.String()
	for _, want := range []string{
		"viewmd v" + Version,
		"Serving: /tmp/notes",
		"Server:  http://localhost:8000",
		"Live reload (on)",
		"Press Ctrl+C to stop",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q", want)
		}
	}
}

func TestPrintBanner_ReloadOff(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Reload.Enabled = false
	var buf strings.Builder
	printBanner(&buf, cfg, "/tmp/notes")
	if !strings.Contains(buf.String(), "Live reload (off)") {
		t.Error("banner should say reload is off")
	}
}

func TestBannerURL_ExplicitHost(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Host = "192.168.1.5"
	cfg.App.HTTP.Port = 9000
	if got := bannerURL(cfg); got != "http://192.168.1.5:9000" {
		t.Errorf("url = %q", got)
	}
}

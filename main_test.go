package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_ytprocessor/internal/engine"
	"gopkg.in/yaml.v3"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"go_ytprocessor"}, args...))
	return out.String(), err
}

func TestSanitizeCommand(t *testing.T) {
	out, err := runApp(t, "sanitize", "--ext", "txt", "Video: Intro [HD]")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}

	var report engine.SanitizeReport
	if err := yaml.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("yaml: %v\n%s", err, out)
	}
	if report.Sanitized != "Video- Intro HD" {
		t.Errorf("sanitized = %q", report.Sanitized)
	}
	if report.Filename != "Video- Intro HD.txt" {
		t.Errorf("filename = %q", report.Filename)
	}
	if !report.Safe {
		t.Error("expected safe = true")
	}
}

func TestSanitizeCommandDefaultExt(t *testing.T) {
	out, err := runApp(t, "sanitize", "Plain title")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if !strings.Contains(out, "Plain title.md") {
		t.Errorf("output missing default filename:\n%s", out)
	}
}

func TestSanitizeCommandNoArgs(t *testing.T) {
	_, err := runApp(t, "sanitize")
	if err == nil || !strings.Contains(err.Error(), "title argument is required") {
		t.Errorf("err = %v", err)
	}
}

func TestTranscriptCommandWithoutKey(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	os.Unsetenv("YOUTUBE_API_KEY")

	_, err := runApp(t, "transcript", "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("expected error without YOUTUBE_API_KEY")
	}
	want := "YouTube tool failed: YOUTUBE_API_KEY environment variable not set"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

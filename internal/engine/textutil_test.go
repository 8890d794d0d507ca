package engine

import (
	"testing"
	"unicode/utf8"
)

func TestCleanCaptionText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"  padded\n  text ", "padded text"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"it&#39;s &quot;fine&quot;", `it's "fine"`},
		{`<font color="#E5E5E5">hello</font> world`, "hello world"},
		{"line one<br>line two", "line one line two"},
		{"<i>only markup</i>", "only markup"},
		{"", ""},
		{"<b></b>", ""},
	}
	for _, tt := range tests {
		if got := CleanCaptionText(tt.in); got != tt.want {
			t.Errorf("CleanCaptionText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinSegments(t *testing.T) {
	tests := []struct {
		name string
		segs []Segment
		want string
	}{
		{"nil", nil, ""},
		{"single", []Segment{{Text: "one"}}, "one"},
		{"ordered", []Segment{{Text: "Hello world"}, {Text: "This is a test"}}, "Hello world This is a test"},
		{"trimmed ends", []Segment{{Text: " a"}, {Text: "b "}}, "a b"},
		{"blank only", []Segment{{Text: ""}, {Text: " "}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinSegments(tt.segs); got != tt.want {
				t.Errorf("JoinSegments() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("short", 10, ""); got != "short" {
		t.Errorf("got %q", got)
	}
	got := TruncateRunes("привет мир", 6, "")
	if got != "привет" {
		t.Errorf("got %q, want %q", got, "привет")
	}
	if !utf8.ValidString(got) {
		t.Error("invalid UTF-8")
	}
}

package engine

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"brackets", "Never Gonna Give You Up [Official Video]", "Never Gonna Give You Up Official Video"},
		{"colon and angle brackets", "Video: With Special <Characters>", "Video- With Special Characters"},
		{"multiple colons", "Video: With Multiple: Colons", "Video- With Multiple- Colons"},
		{"illegal chars", `Video <With> Special "Characters" /\|?*`, "Video With Special Characters"},
		{"emoji", "Video with emojis \U0001F60A\U0001F389\U0001F680", "Video with emojis"},
		{"flags", "Trip \U0001F1EF\U0001F1F5 vlog", "Trip vlog"},
		{"misc symbols", "Sunny \u2600 day \u26a1", "Sunny day"},
		{"general punctuation", "Part 1 \u2014 Intro\u2026", "Part 1 Intro"},
		{"whitespace runs", "Video    with     multiple    spaces", "Video with multiple spaces"},
		{"controls removed before collapse", "\tLine one\n\nLine two  ", "Line oneLine two"},
		{"unicode spaces", "Wide\u3000gap\u00a0here", "Wide gap here"},
		{"empty", "", ""},
		{"only brackets", "[[Test]]", "Test"},
		{"unbalanced brackets", "]a[b]]c[", "abc"},
		{"control chars", "Video\x00with\x1fcontrol\x7fcharacters", "Videowithcontrolcharacters"},
		{"c1 control", "A\u0085B\u009fC", "ABC"},
		{"nfc", "Video with cafe\u0301 and re\u0301sume\u0301", "Video with caf\u00e9 and r\u00e9sum\u00e9"},
		{"cjk kept", "日本語のタイトル: テスト", "日本語のタイトル- テスト"},
		{"only illegal", `<>"/\|?*`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.in); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitleLength(t *testing.T) {
	t.Run("ascii", func(t *testing.T) {
		got := SanitizeTitle(strings.Repeat("A", 150))
		if len(got) != MaxTitleRunes {
			t.Errorf("len = %d, want %d", len(got), MaxTitleRunes)
		}
	})

	t.Run("multibyte counted in runes", func(t *testing.T) {
		got := SanitizeTitle(strings.Repeat("\u00e9", 150))
		if n := utf8.RuneCountInString(got); n != MaxTitleRunes {
			t.Errorf("rune count = %d, want %d", n, MaxTitleRunes)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncation produced invalid UTF-8: %q", got)
		}
	})

	t.Run("short title untouched", func(t *testing.T) {
		in := strings.Repeat("ab ", 30)
		got := SanitizeTitle(in)
		if got != strings.TrimSpace(in) {
			t.Errorf("got %q", got)
		}
	})
}

var propertyInputs = []string{
	"",
	"plain title",
	`a<b>c:d"e/f\g|h?i*j`,
	"ctrl\x01\x02\x1b\x7f\u0080\u009fend",
	"Mixed [Tags] : and | pipes * stars ? marks",
	strings.Repeat("x:y<z ", 40),
	strings.Repeat("日本", 80),
	"emoji 😀 party 🎉 rocket 🚀 flag 🇫🇷",
	"  lots   of\t\twhitespace \n here  ",
	"‘quoted’ “double”",
}

func TestSanitizeTitleProperties(t *testing.T) {
	for _, in := range propertyInputs {
		got := SanitizeTitle(in)
		if strings.ContainsAny(got, `<>:"/\|?*`) {
			t.Errorf("SanitizeTitle(%q) = %q still has illegal characters", in, got)
		}
		for _, r := range got {
			if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
				t.Errorf("SanitizeTitle(%q) = %q still has control %U", in, got, r)
			}
		}
		if n := utf8.RuneCountInString(got); n > MaxTitleRunes {
			t.Errorf("SanitizeTitle(%q) has %d runes", in, n)
		}
	}
}

func TestSanitizeTitleIdempotent(t *testing.T) {
	inputs := []string{
		"Never Gonna Give You Up Official Video",
		"Video- With Special Characters",
		"café résumé",
		"already clean title",
		strings.Repeat("B", 120),
	}
	for _, in := range inputs {
		once := SanitizeTitle(in)
		twice := SanitizeTitle(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsSafeFilename(t *testing.T) {
	safe := []string{"normal_filename", "file-with-hyphens", "file_with_underscores", "File123", "CONSOLE", "com10", "my con"}
	for _, name := range safe {
		if !IsSafeFilename(name) {
			t.Errorf("IsSafeFilename(%q) = false, want true", name)
		}
	}

	unsafe := []string{
		"file<with>brackets",
		"file:with:colons",
		"file/with/slashes",
		`file\with\backslashes`,
		"file|with|pipes",
		"file?with?questions",
		"file*with*asterisks",
		`file"with"quotes`,
		"tab\there",
		"del\x7f",
	}
	for _, name := range unsafe {
		if IsSafeFilename(name) {
			t.Errorf("IsSafeFilename(%q) = true, want false", name)
		}
	}
}

func TestIsSafeFilenameReservedNames(t *testing.T) {
	for name := range reservedNames {
		lower := strings.ToLower(name)
		title := name[:1] + strings.ToLower(name[1:])
		mixed := strings.ToLower(name[:1]) + name[1:]
		for _, variant := range []string{name, lower, title, mixed} {
			if IsSafeFilename(variant) {
				t.Errorf("IsSafeFilename(%q) = true, want false (reserved)", variant)
			}
		}
	}
	if len(reservedNames) != 22 {
		t.Errorf("reserved names = %d, want 22", len(reservedNames))
	}
}

func TestCreateSafeFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		ext   string
		want  string
	}{
		{"default extension", "Test Video", "", "Test Video.md"},
		{"custom extension", "Test Video", ".txt", "Test Video.txt"},
		{"extension without dot", "Test Video", "txt", "Test Video.txt"},
		{"empty after sanitizing", `[]<>:"/\|?*`, "", "untitled.md"},
		{"special characters", "Video: With <Special> Characters", "", "Video- With Special Characters.md"},
		{"emoji only", "\U0001F389\U0001F680", ".txt", "untitled.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CreateSafeFilename(tt.title, tt.ext); got != tt.want {
				t.Errorf("CreateSafeFilename(%q, %q) = %q, want %q", tt.title, tt.ext, got, tt.want)
			}
		})
	}
}

func TestCreateSafeFilenameUntitled(t *testing.T) {
	for _, title := range []string{"", " ", "-", "_", "- _ -", "___", "--  --", ":::"} {
		if got := CreateSafeFilename(title, ".md"); got != "untitled.md" {
			t.Errorf("CreateSafeFilename(%q) = %q, want untitled.md", title, got)
		}
	}
}

func TestCreateSafeFilenameLong(t *testing.T) {
	got := CreateSafeFilename(strings.Repeat("A", 150), "")
	if len(got) > MaxTitleRunes+len(DefaultExtension) {
		t.Errorf("len = %d, want <= %d", len(got), MaxTitleRunes+len(DefaultExtension))
	}
}

func TestBuildSanitizeReport(t *testing.T) {
	r := BuildSanitizeReport("Video: Intro [HD]", "txt")
	if r.Original != "Video: Intro [HD]" {
		t.Errorf("Original = %q", r.Original)
	}
	if r.Sanitized != "Video- Intro HD" {
		t.Errorf("Sanitized = %q", r.Sanitized)
	}
	if r.Filename != "Video- Intro HD.txt" {
		t.Errorf("Filename = %q", r.Filename)
	}
	if !r.Safe {
		t.Error("expected sanitized title to be safe")
	}
}

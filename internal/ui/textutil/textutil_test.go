package textutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"report.pdf", 20, "report.pdf"},
		{"report.pdf", 7, "report…"},
		{"report.pdf", 1, "…"},
		{"report.pdf", 0, ""},
		{"日本語ファイル", 7, "日本語…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if w := Width(Truncate(tt.in, tt.max)); w > tt.max {
			t.Errorf("Truncate(%q, %d) is %d columns wide", tt.in, tt.max, w)
		}
	}
}

func TestTruncateLeft(t *testing.T) {
	if got := TruncateLeft("/home/user/projects/app", 12); got != "…rojects/app" {
		t.Errorf("got %q", got)
	}
	if got := TruncateLeft("/tmp", 12); got != "/tmp" {
		t.Errorf("got %q", got)
	}
}

func TestFit(t *testing.T) {
	if got := Fit("ab", 4); got != "ab  " {
		t.Errorf("Fit pad: %q", got)
	}
	if got := FitLeft("12", 4); got != "  12" {
		t.Errorf("FitLeft pad: %q", got)
	}
	if got := Fit("abcdef", 4); got != "abc…" {
		t.Errorf("Fit cut: %q", got)
	}
}

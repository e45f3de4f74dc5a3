package uploads

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "photo.jpg", "photo.jpg"},
		{"spaces", "my photo.jpg", "my_photo.jpg"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"unicode replaced", "फोटो.png", strings.Repeat("_", len("फोटो")) + ".png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.in); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_LongNameKeepsExtension(t *testing.T) {
	long := strings.Repeat("a", 150) + ".pdf"
	got := sanitizeFilename(long)
	if len(got) > 100 {
		t.Errorf("expected at most 100 chars, got %d", len(got))
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Errorf("expected .pdf suffix preserved, got %q", got)
	}
}

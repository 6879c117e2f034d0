package sanitize_test

import (
	"testing"

	"github.com/dalemusser/freighthub/internal/app/system/sanitize"
)

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"rates too high", "rates too high"},
		{"  padded  ", "padded"},
		{"<b>too costly</b>", "too costly"},
		{"<script>alert(1)</script>", ""},
		{"<a href=\"http://x\">link</a> text", "link text"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := sanitize.Text(tc.in); got != tc.want {
			t.Errorf("Text(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

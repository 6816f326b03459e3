package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain Text", "routine checkup notes", "routine checkup notes"},
		{"Strips Script", `before<script>alert("x")</script>after`, "beforeafter"},
		{"Keeps Formatting", "<p>case <strong>report</strong></p>", "<p>case <strong>report</strong></p>"},
		{"Strips Event Handlers", `<a href="https://example.com" onclick="steal()">link</a>`, `<a href="https://example.com" rel="nofollow">link</a>`},
		{"Strips Iframe", `<iframe src="https://evil.example"></iframe>ok`, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeHTML(tt.input))
		})
	}
}

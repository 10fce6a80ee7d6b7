package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Forward a message to log it",
			expected: "Forward a message to log it\n",
		},
		{
			name:     "bold title",
			input:    "**How to use Butler**",
			expected: "<strong>How to use Butler</strong>\n",
		},
		{
			name:     "command as inline code",
			input:    "`/generatecsv` exports your data",
			expected: "<code>/generatecsv</code> exports your data\n",
		},
		{
			name:     "header tags stripped",
			input:    "# Commands",
			expected: "Commands\n",
		},
		{
			name:     "script tags sanitized",
			input:    "<script>alert('xss')</script>",
			expected: "\n",
		},
		{
			name:     "link keeps href only",
			input:    "[docs](https://core.telegram.org/bots)",
			expected: "<a href=\"https://core.telegram.org/bots\">docs</a>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MarkdownToTelegramHTML([]byte(tt.input)))
		})
	}
}

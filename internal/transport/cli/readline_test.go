package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/butler/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		line    string
		text    string
		forward *core.ForwardOrigin
	}{
		{line: "Acme", text: "Acme"},
		{line: "/manual", text: "/manual"},
		{line: "/fwdx", text: "/fwdx"},
		{
			line:    "/fwd Alpha Summit|@alice",
			forward: &core.ForwardOrigin{Time: now, FromChat: true, ChatTitle: "Alpha Summit", Username: "alice"},
		},
		{
			line:    "/fwd |bob",
			forward: &core.ForwardOrigin{Time: now, Username: "bob"},
		},
		{
			line:    "/fwd",
			forward: &core.ForwardOrigin{Time: now},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ev := ParseLine(tt.line, ConsoleUser, now)
			assert.Equal(t, ConsoleUser, ev.User)
			assert.Equal(t, tt.text, ev.Text)
			assert.Equal(t, tt.forward, ev.Forward)
		})
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := Render(&out, []core.Response{
		core.TextResponse("Logged successfully!"),
		core.HTMLResponse("<strong>How to Use This Bot</strong>"),
		{Text: "| a |", Format: core.FormatPre},
		{Document: &core.Document{Name: "1_logs.csv", MIME: "text/csv", Data: []byte("date\r\n")}},
	}, dir)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Logged successfully!\n")
	assert.Contains(t, got, "How to Use This Bot")
	assert.NotContains(t, got, "<strong>")
	assert.Contains(t, got, "| a |\n")
	assert.Contains(t, got, "1_logs.csv saved to")

	data, err := os.ReadFile(filepath.Join(dir, "1_logs.csv"))
	require.NoError(t, err)
	assert.Equal(t, "date\r\n", string(data))
}

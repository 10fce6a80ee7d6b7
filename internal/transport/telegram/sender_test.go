package telegram

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sandevgo/butler/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type sent struct {
	what interface{}
	opts []interface{}
}

type fakeAPI struct {
	calls []sent
	err   error
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, sent{what: what, opts: opts})
	return &tele.Message{}, nil
}

func TestSender_Formats(t *testing.T) {
	api := &fakeAPI{}
	s := newSender(api)

	err := s.send(context.Background(), tele.ChatID(1), []core.Response{
		core.TextResponse("plain"),
		core.HTMLResponse("<b>bold</b>"),
		{Text: "| a<b |", Format: core.FormatPre},
		core.TextResponse("   "),
	})
	require.NoError(t, err)
	require.Len(t, api.calls, 3)

	assert.Equal(t, "plain", api.calls[0].what)
	assert.Empty(t, api.calls[0].opts)

	assert.Equal(t, "<b>bold</b>", api.calls[1].what)
	assert.Equal(t, []interface{}{tele.ModeHTML}, api.calls[1].opts)

	assert.Equal(t, "<pre>| a&lt;b |</pre>", api.calls[2].what)
	assert.Equal(t, []interface{}{tele.ModeHTML}, api.calls[2].opts)
}

func TestSender_Document(t *testing.T) {
	api := &fakeAPI{}
	s := newSender(api)

	err := s.send(context.Background(), tele.ChatID(1), []core.Response{{
		Document: &core.Document{Name: "1_logs.csv", MIME: "text/csv", Data: []byte("date\r\n")},
	}})
	require.NoError(t, err)
	require.Len(t, api.calls, 1)

	doc, ok := api.calls[0].what.(*tele.Document)
	require.True(t, ok)
	assert.Equal(t, "1_logs.csv", doc.FileName)
	assert.Equal(t, "text/csv", doc.MIME)
	data, err := io.ReadAll(doc.File.FileReader)
	require.NoError(t, err)
	assert.Equal(t, "date\r\n", string(data))
}

func TestSender_StopsOnError(t *testing.T) {
	api := &fakeAPI{err: errors.New("forbidden")}
	err := newSender(api).send(context.Background(), tele.ChatID(1), []core.Response{core.TextResponse("x")})
	assert.Error(t, err)
}

func TestSplitText(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitText("short", 10))

	lines := strings.Repeat("0123456789\n", 10)
	chunks := splitText(strings.TrimSpace(lines), 35)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 35)
		assert.False(t, strings.HasPrefix(c, "\n"))
	}
	assert.Equal(t, strings.Count(lines, "0123456789"), strings.Count(strings.Join(chunks, "\n"), "0123456789"))

	// never cuts a rune in half
	for _, c := range splitText(strings.Repeat("é", 20), 7) {
		assert.True(t, strings.ToValidUTF8(c, "?") == c)
	}
}

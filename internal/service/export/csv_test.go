package export

import (
	"context"
	"testing"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = core.Interaction{
	Date:         "2024-03-01",
	ChatName:     "Alpha Summit",
	Username:     "alice",
	Description:  "met at booth",
	Company:      "Acme",
	MeetingPlace: "",
	Priority:     "1",
}

func TestExporter_NoRecords(t *testing.T) {
	t.Parallel()
	e := NewExporter(memory.NewStore())

	doc, err := e.Export(context.Background(), 1)
	assert.ErrorIs(t, err, core.ErrNoRecords)
	assert.Nil(t, doc)
}

func TestExporter_Scenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Append(ctx, 42, alice))

	doc, err := NewExporter(store).Export(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, "42_logs.csv", doc.Name)
	assert.Equal(t, MIME, doc.MIME)
	assert.Equal(t,
		"date,chat_name,username,description,company,meeting_place,priority\r\n"+
			"2024-03-01,Alpha Summit,alice,met at booth,Acme,,1\r\n",
		string(doc.Data))
}

func TestExporter_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Append(ctx, 1, alice))
	require.NoError(t, store.Append(ctx, 1, core.Interaction{Date: "2024-03-02", Username: "bob"}))

	e := NewExporter(store)
	first, err := e.Export(ctx, 1)
	require.NoError(t, err)
	second, err := e.Export(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestExporter_UserIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Append(ctx, 1, alice))
	require.NoError(t, store.Append(ctx, 2, core.Interaction{Company: "Globex"}))

	doc, err := NewExporter(store).Export(ctx, 2)
	require.NoError(t, err)
	assert.NotContains(t, string(doc.Data), "Acme")
	assert.NotEqual(t, FileName(1), doc.Name)
}

func TestEncode_Quoting(t *testing.T) {
	t.Parallel()
	data, err := Encode([]core.Interaction{{
		Date:        "2024-03-01",
		ChatName:    "Team, Inc",
		Username:    "eve",
		Description: "said \"hi\"\nthen left",
	}})
	require.NoError(t, err)

	assert.Equal(t,
		"date,chat_name,username,description,company,meeting_place,priority\r\n"+
			"2024-03-01,\"Team, Inc\",eve,\"said \"\"hi\"\"\r\nthen left\",,,\r\n",
		string(data))
}

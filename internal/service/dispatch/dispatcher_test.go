package dispatch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/internal/service/command"
	"github.com/sandevgo/butler/internal/service/conversation"
	"github.com/sandevgo/butler/internal/service/display"
	"github.com/sandevgo/butler/internal/service/export"
	"github.com/sandevgo/butler/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exportCounter struct {
	mu sync.Mutex
	n  map[string]int
}

func (c *exportCounter) ExportServed(trigger string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n[trigger]++
}

type harness struct {
	d      *Dispatcher
	engine *conversation.Engine
	store  *memory.Store
	stats  *exportCounter
}

func newHarness() *harness {
	store := memory.NewStore()
	engine := conversation.NewEngine(store, conversation.NewSessions())
	exporter := export.NewExporter(store)
	router := command.New(command.NewCommands(engine, store, exporter, display.NewRenderer(store), nil))
	stats := &exportCounter{n: map[string]int{}}
	return &harness{
		d:      New(engine, router, exporter, stats),
		engine: engine,
		store:  store,
		stats:  stats,
	}
}

func (h *harness) say(user core.UserID, text string) []core.Response {
	return h.d.Handle(context.Background(), core.Event{User: user, Text: text, ReceivedAt: time.Now()})
}

func (h *harness) forward(user core.UserID, origin core.ForwardOrigin) []core.Response {
	return h.d.Handle(context.Background(), core.Event{User: user, Forward: &origin, ReceivedAt: time.Now()})
}

func TestDispatcher_ForwardScenario(t *testing.T) {
	h := newHarness()

	res := h.forward(7, core.ForwardOrigin{
		Time:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		FromChat:  true,
		ChatTitle: "Alpha Summit",
		Username:  "alice",
	})
	require.Len(t, res, 1)
	assert.Equal(t, conversation.Prompt(conversation.StateForwardCompany), res[0].Text)

	h.say(7, "Acme")
	h.say(7, "s")
	h.say(7, "met at booth")
	res = h.say(7, "1")

	require.Len(t, res, 2)
	assert.Contains(t, res[0].Text, "Logged successfully!")
	require.NotNil(t, res[1].Document)
	assert.Equal(t, "7_logs.csv", res[1].Document.Name)
	assert.Equal(t,
		"date,chat_name,username,description,company,meeting_place,priority\r\n"+
			"2024-03-01,Alpha Summit,alice,met at booth,Acme,,1\r\n",
		string(res[1].Document.Data))
	assert.Equal(t, 1, h.stats.n["commit"])
}

func TestDispatcher_ManualScenario(t *testing.T) {
	h := newHarness()

	h.say(9, "/manual")
	for _, in := range []string{"bob", "s", "s", "s"} {
		res := h.say(9, in)
		require.Len(t, res, 1)
	}
	res := h.say(9, "2")
	require.Len(t, res, 2)
	assert.Equal(t, "Data manually logged successfully!", res[0].Text)

	got, err := h.store.Get(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Now().UTC().Format(core.DateLayout), got[0].Date)
	assert.Equal(t, core.Interaction{
		Date:     got[0].Date,
		Username: "bob",
		Priority: "2",
	}, got[0])
}

func TestDispatcher_CommandMidFlowAbandons(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	h.say(1, "/manual")
	h.say(1, "carol")

	res := h.say(1, "/display")
	require.Len(t, res, 1)
	assert.Equal(t, abandonText, res[0].Text)
	assert.False(t, h.engine.Active(1))
	assert.Zero(t, h.store.Count(ctx, 1))

	// the command was not executed, the next one is
	res = h.say(1, "/display")
	assert.Equal(t, "You don't have any logged data to display.", res[0].Text)

	h.forward(1, core.ForwardOrigin{Time: time.Now()})
	res = h.say(1, "/unknown")
	assert.Equal(t, abandonText, res[0].Text)
	assert.Zero(t, h.store.Count(ctx, 1))
}

func TestDispatcher_CancelMidFlow(t *testing.T) {
	h := newHarness()

	h.forward(1, core.ForwardOrigin{Time: time.Now()})
	h.say(1, "Acme")
	res := h.say(1, "/cancel")
	assert.Equal(t, "Action cancelled.", res[0].Text)
	assert.Zero(t, h.store.Count(context.Background(), 1))

	res = h.say(1, "Acme")
	assert.Equal(t, command.StartText, res[0].Text)
}

func TestDispatcher_OutsideFlow(t *testing.T) {
	h := newHarness()

	res := h.say(1, "hello")
	assert.Equal(t, command.StartText, res[0].Text)

	res = h.say(1, "/nope")
	assert.Equal(t, "Unknown command: /nope", res[0].Text)

	res = h.say(1, "   ")
	assert.Equal(t, command.StartText, res[0].Text)

	assert.Nil(t, h.say(1, ""))
}

func TestDispatcher_BlankAnswerStoresEmpty(t *testing.T) {
	h := newHarness()

	h.forward(2, core.ForwardOrigin{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	res := h.say(2, "   ")
	require.Len(t, res, 1)
	assert.Equal(t, conversation.Prompt(conversation.StateForwardMeetingPlace), res[0].Text)

	s, ok := h.engine.Sessions().Get(2)
	require.True(t, ok)
	assert.Equal(t, conversation.StateForwardMeetingPlace, s.State)
	assert.Empty(t, s.Draft.Company)
}

func TestDispatcher_ManualDatedByReceipt(t *testing.T) {
	h := newHarness()
	at := time.Date(2023, 12, 31, 22, 0, 0, 0, time.FixedZone("UTC-3", -3*3600))

	h.d.Handle(context.Background(), core.Event{User: 4, Text: "/manual", ReceivedAt: at})
	for _, in := range []string{"s", "s", "s", "s", "s"} {
		h.say(4, in)
	}

	got, err := h.store.Get(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-01", got[0].Date)
}

func TestDispatcher_ConcurrentForwardedFlows(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	const users = 10
	var wg sync.WaitGroup
	for i := 1; i <= users; i++ {
		wg.Add(1)
		go func(user core.UserID) {
			defer wg.Done()
			h.forward(user, core.ForwardOrigin{Time: time.Now(), FromChat: true, ChatTitle: "Expo"})
			h.say(user, fmt.Sprintf("company-%d", user))
			h.say(user, "s")
			h.say(user, "s")
			h.say(user, "1")
		}(core.UserID(i))
	}
	wg.Wait()

	for i := 1; i <= users; i++ {
		got, err := h.store.Get(ctx, core.UserID(i))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, fmt.Sprintf("company-%d", i), got[0].Company)
	}
	assert.Equal(t, users, h.stats.n["commit"])
}

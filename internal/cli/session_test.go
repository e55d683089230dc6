package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/skyscout"
	"github.com/aretw0/skyscout/internal/presentation/tui"
	"github.com/aretw0/skyscout/pkg/adapters/skyscrapper"
	"github.com/aretw0/skyscout/pkg/adapters/skyscrapper/skyscrappertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)

type harness struct {
	app      *skyscout.App
	renderer *tui.Renderer
	out      *bytes.Buffer
	notes    *bytes.Buffer
}

func newHarness(t *testing.T, opts ...skyscout.Option) *harness {
	t.Helper()
	srv := skyscrappertest.NewServer()
	t.Cleanup(srv.Close)

	notes := &bytes.Buffer{}
	app, err := skyscout.New(append([]skyscout.Option{
		skyscout.WithAPIKey("demo"),
		skyscout.WithClientOptions(skyscrapper.WithBaseURL(srv.BaseURL())),
		skyscout.WithDebounce(time.Millisecond),
		skyscout.WithClock(func() time.Time { return now }),
		skyscout.WithNotifier(NewNotifier(notes)),
	}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	r, err := tui.NewRenderer(tui.Plain, 0)
	require.NoError(t, err)
	return &harness{app: app, renderer: r, out: &bytes.Buffer{}, notes: notes}
}

func (h *harness) session() *Session {
	return NewSession(h.app, h.renderer, h.out, WithSessionClock(func() time.Time { return now }), WithSuggestionWait(2*time.Second))
}

func (h *harness) exec(t *testing.T, s *Session, line string) string {
	t.Helper()
	h.out.Reset()
	require.NoError(t, s.Exec(context.Background(), line), line)
	return h.out.String()
}

func TestSession_FullFlow(t *testing.T) {
	h := newHarness(t)
	s := h.session()

	assert.Contains(t, h.exec(t, s, "from Lon"), "London (LON)")
	assert.Contains(t, h.exec(t, s, "pick from 0"), "origin set to London (LON)")
	assert.Contains(t, h.exec(t, s, "to Par"), "Paris (CDG)")
	assert.Contains(t, h.exec(t, s, "pick to 0"), "destination set to Paris (CDG)")

	h.exec(t, s, "oneway")
	h.exec(t, s, "depart 2026-11-20")

	out := h.exec(t, s, "search")
	assert.Contains(t, out, "British Airways")
	assert.Contains(t, out, "3 result(s)")

	out = h.exec(t, s, "filter stops 0")
	assert.Contains(t, out, "2 result(s)")
	assert.NotContains(t, out, "Lufthansa")

	out = h.exec(t, s, "filter clear")
	assert.Contains(t, out, "3 result(s)")
	assert.Empty(t, h.notes.String())
}

func TestSession_ShowAndSwap(t *testing.T) {
	h := newHarness(t)
	s := h.session()

	h.exec(t, s, "from Lon")
	h.exec(t, s, "pick from 0")
	h.exec(t, s, "to Par")
	h.exec(t, s, "pick to 0")

	out := h.exec(t, s, "swap")
	assert.Contains(t, out, "From: Paris (CDG)")
	assert.Contains(t, out, "To: London (LON)")

	assert.Contains(t, h.exec(t, s, "pax children +"), "2 Passengers (1 Adult, 1 Child)")
	out = h.exec(t, s, "show")
	assert.Contains(t, out, "Trip: round_trip")
	assert.Contains(t, out, "Depart: -")
}

func TestSession_ShortQuery(t *testing.T) {
	h := newHarness(t)
	s := h.session()
	assert.Contains(t, h.exec(t, s, "from L"), "at least 2 characters")
}

func TestSession_ShortQueryUsesConfiguredMinimum(t *testing.T) {
	h := newHarness(t, skyscout.WithMinQueryLength(4))
	s := h.session()
	assert.Contains(t, h.exec(t, s, "from Lon"), "at least 4 characters")
	assert.Contains(t, h.exec(t, s, "from Lond"), "London (LON)")
}

func TestSession_ValidationGoesToNotifier(t *testing.T) {
	h := newHarness(t)
	s := h.session()

	out := h.exec(t, s, "search")
	assert.Empty(t, out)
	assert.True(t, strings.HasPrefix(h.notes.String(), "!!! "))
}

func TestSession_Errors(t *testing.T) {
	h := newHarness(t)
	s := h.session()
	ctx := context.Background()

	assert.Error(t, s.Exec(ctx, "teleport"))
	assert.Error(t, s.Exec(ctx, "pick from 0"))
	assert.Error(t, s.Exec(ctx, "pick from x"))
	assert.Error(t, s.Exec(ctx, "depart tomorrow"))
	assert.Error(t, s.Exec(ctx, "depart 2026-10-01"))
	assert.Error(t, s.Exec(ctx, "pax adults 0"))
	assert.Error(t, s.Exec(ctx, "cabin premium"))
	assert.Error(t, s.Exec(ctx, "sort random"))
	assert.Error(t, s.Exec(ctx, "filter colour red"))
}

func TestSession_Run(t *testing.T) {
	h := newHarness(t)
	s := h.session()

	err := s.Run(context.Background(), strings.NewReader("help\nbogus\nquit\nshow\n"))
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, `Error: unknown command "bogus"`)
	assert.NotContains(t, out, "From:")
}

func TestSession_RunStopsOnCancel(t *testing.T) {
	h := newHarness(t)
	s := h.session()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pr, pw := io.Pipe()
	defer pw.Close()

	err := s.Run(ctx, pr)
	assert.ErrorIs(t, err, context.Canceled)
}

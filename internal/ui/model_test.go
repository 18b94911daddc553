package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userexplorer/internal/cache"
	"userexplorer/internal/clock"
	"userexplorer/internal/config"
	"userexplorer/internal/directory"
	"userexplorer/internal/domain"
)

var fixture = []domain.Record{
	{ID: 1, Name: "John Doe", Email: "john@x.com", Company: domain.Company{Name: "Acme"}},
	{ID: 2, Name: "Jane Roe", Email: "jane@y.com", Company: domain.Company{Name: "Beta"}},
	{ID: 3, Name: "Bob Lee", Email: "bob@z.com", Company: domain.Company{Name: "Acme"}},
}

type scriptedSource struct {
	results []error
	calls   int
}

func (s *scriptedSource) Fetch(ctx context.Context) ([]domain.Record, error) {
	i := s.calls
	s.calls++
	if i < len(s.results) && s.results[i] != nil {
		return nil, s.results[i]
	}
	return fixture, nil
}

type harness struct {
	t     *testing.T
	model *Model
	clock *clock.FakeClock
	msgs  []tea.Msg
}

func newHarness(t *testing.T, failures ...error) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		clock: clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	h.model = NewModel(context.Background(), Deps{
		Config: config.DefaultConfig(),
		Cache:  cache.New(&scriptedSource{results: failures}),
		Clock:  h.clock,
	})
	h.model.send = func(msg tea.Msg) { h.msgs = append(h.msgs, msg) }
	h.model.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	t.Cleanup(h.model.Close)
	return h
}

// load runs one fetch to completion on the loop
func (h *harness) load() {
	cmd := h.model.load()
	require.NotNil(h.t, cmd)
	h.model.Update(cmd())
}

func (h *harness) typeKeys(keys ...tea.KeyMsg) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		_, last = h.model.Update(k)
	}
	return last
}

// settle advances past the debounce delay and delivers what fired
func (h *harness) settle() {
	h.clock.Advance(config.DefaultConfig().DebounceDelay.Std())
	msgs := h.msgs
	h.msgs = nil
	for _, msg := range msgs {
		h.model.Update(msg)
	}
}

func keyPress(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestLoadingStateShowsSkeleton(t *testing.T) {
	h := newHarness(t)
	h.model.load()

	view := h.model.View()
	assert.Contains(t, view, "Loading users...")
	assert.Contains(t, view, "░")
}

func TestReadyStateListsUsers(t *testing.T) {
	h := newHarness(t)
	h.load()

	view := h.model.View()
	for _, record := range fixture {
		assert.Contains(t, view, record.Name)
	}
	assert.Contains(t, view, "Search by name or email...")
	assert.NotContains(t, view, "found")
}

func TestSearchFiltersAfterQuietPeriod(t *testing.T) {
	h := newHarness(t)
	h.load()

	h.typeKeys(keyPress("/"), keyPress("j"), keyPress("o"))
	assert.Equal(t, "jo", h.model.Controller().RawQuery())

	// Still unfiltered before the delay elapses
	assert.Contains(t, h.model.View(), "Bob Lee")

	h.settle()
	view := h.model.View()
	assert.Contains(t, view, "1 user found")
	assert.Contains(t, view, "John Doe")
	assert.NotContains(t, view, "Bob Lee")
	assert.NotContains(t, view, "Jane Roe")
}

func TestClearingBeforeDelayKeepsFullList(t *testing.T) {
	h := newHarness(t)
	h.load()

	h.typeKeys(keyPress("/"), keyPress("z"))
	h.clock.Advance(100 * time.Millisecond)
	h.typeKeys(tea.KeyMsg{Type: tea.KeyBackspace})
	h.settle()

	assert.Equal(t, "", h.model.Controller().EffectiveQuery())
	assert.EqualValues(t, 1, h.model.Controller().Recomputations(), "the filter never ran for z")
	assert.Contains(t, h.model.View(), "Bob Lee")
}

func TestEscClearsQuery(t *testing.T) {
	h := newHarness(t)
	h.load()

	h.typeKeys(keyPress("/"), keyPress("b"), keyPress("o"), keyPress("b"))
	h.settle()
	require.Equal(t, 1, h.model.Controller().ResultCount())

	h.typeKeys(esc)
	h.settle()
	assert.Equal(t, "", h.model.Controller().RawQuery())
	assert.Equal(t, 3, h.model.Controller().ResultCount())
}

func TestEnterKeepsQueryInNormalMode(t *testing.T) {
	h := newHarness(t)
	h.load()

	h.typeKeys(keyPress("/"), keyPress("e"), enter)
	h.settle()

	assert.Equal(t, "e", h.model.Controller().EffectiveQuery())
	require.Equal(t, 3, h.model.Controller().ResultCount())
	// j navigates again instead of typing
	h.typeKeys(keyPress("j"))
	assert.Equal(t, "e", h.model.Controller().RawQuery())
	assert.Equal(t, 1, h.model.CurrentIndex())
}

func TestEmptyResultMessage(t *testing.T) {
	h := newHarness(t)
	h.load()

	h.typeKeys(keyPress("/"), keyPress("z"), keyPress("z"), keyPress("z"))
	h.settle()

	view := h.model.View()
	assert.Contains(t, view, "0 users found")
	assert.Contains(t, view, "No users found matching your search.")
}

func TestNavigationResetsWhenResultsChange(t *testing.T) {
	h := newHarness(t)
	h.load()

	h.typeKeys(down, down)
	assert.Equal(t, 2, h.model.CurrentIndex())

	h.typeKeys(keyPress("/"), keyPress("e"))
	h.settle()
	assert.Equal(t, 0, h.model.CurrentIndex())
}

func TestFailureThenRetry(t *testing.T) {
	h := newHarness(t, &directory.ProtocolError{StatusCode: 500})
	h.load()

	view := h.model.View()
	assert.Contains(t, view, "Server responded with status 500")
	assert.Contains(t, view, "retry")
	assert.Nil(t, h.model.Controller().Filtered())

	_, cmd := h.model.Update(keyPress("r"))
	require.NotNil(t, cmd)
	assert.True(t, h.model.cache.State().IsPending())

	h.load()
	assert.Contains(t, h.model.View(), "John Doe")
}

func TestRetryIgnoredWhenNotFailed(t *testing.T) {
	h := newHarness(t)
	h.load()

	h.model.Update(keyPress("r"))
	assert.True(t, h.model.cache.State().IsReady())
}

func TestNetworkFailureMessage(t *testing.T) {
	h := newHarness(t, &directory.NetworkError{Err: errors.New("dial tcp: refused")})
	h.load()
	assert.Contains(t, h.model.View(), "Could not reach the user directory")
}

func TestQuitClosesPipeline(t *testing.T) {
	h := newHarness(t)
	h.load()
	h.typeKeys(keyPress("/"), keyPress("j"))

	_, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.Zero(t, h.clock.Pending(), "debounce timer stopped")
	assert.Nil(t, h.model.cache.Load(context.Background()), "cache closed")
}

func TestLateFetchAfterQuitIsIgnored(t *testing.T) {
	h := newHarness(t)
	cmd := h.model.load()

	h.model.Close()
	h.model.Update(cmd())
	assert.True(t, h.model.cache.State().IsPending())
}

func TestPagerPausesRendering(t *testing.T) {
	h := newHarness(t)
	h.load()

	// Without a program the pager fails, but rendering is still paused and resumed
	msg := h.model.showInPager("content")()
	require.Len(t, h.msgs, 2)
	assert.IsType(t, pauseRenderingMsg{}, h.msgs[0])
	assert.IsType(t, resumeRenderingMsg{}, h.msgs[1])

	h.model.Update(pauseRenderingMsg{})
	assert.Empty(t, h.model.View())
	h.model.Update(resumeRenderingMsg{})

	_, cmd := h.model.Update(msg)
	assert.NotNil(t, cmd)
	assert.Contains(t, h.model.View(), "Pager failed")

	h.model.Update(clearNoticeMsg{})
	assert.NotContains(t, h.model.View(), "Pager failed")
}

func TestKeysIgnoredWhilePaging(t *testing.T) {
	h := newHarness(t)
	h.load()

	h.model.Update(pauseRenderingMsg{})
	h.model.Update(keyPress("/"))
	h.model.Update(keyPress("x"))
	assert.Equal(t, "", h.model.Controller().RawQuery())
}

package debounce_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aretw0/skyscout/pkg/debounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects emitted values.
type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) emit(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_LastWriteWins(t *testing.T) {
	rec := &recorder{}
	d, err := debounce.New(30*time.Millisecond, rec.emit)
	require.NoError(t, err)
	defer d.Close()

	for _, v := range []string{"L", "Lo", "Lon"} {
		d.Push(v)
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"Lon"}, rec.snapshot(), "only the final value is emitted, once")
}

func TestDebouncer_SeparateBurstsEmitSeparately(t *testing.T) {
	rec := &recorder{}
	d, err := debounce.New(10*time.Millisecond, rec.emit)
	require.NoError(t, err)
	defer d.Close()

	d.Push("Par")
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 2*time.Millisecond)
	d.Push("Paris")
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, []string{"Par", "Paris"}, rec.snapshot())
}

func TestDebouncer_CloseSuppressesPending(t *testing.T) {
	rec := &recorder{}
	d, err := debounce.New(20*time.Millisecond, rec.emit)
	require.NoError(t, err)

	d.Push("Lon")
	assert.True(t, d.Pending())
	d.Close()
	assert.False(t, d.Pending())

	d.Push("ignored")
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_CancelKeepsDebouncerUsable(t *testing.T) {
	rec := &recorder{}
	d, err := debounce.New(10*time.Millisecond, rec.emit)
	require.NoError(t, err)
	defer d.Close()

	d.Push("a")
	d.Cancel()
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	d.Push("b")
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, []string{"b"}, rec.snapshot())
}

func TestDebouncer_ZeroDelayPassesThrough(t *testing.T) {
	rec := &recorder{}
	d, err := debounce.New(0, rec.emit)
	require.NoError(t, err)

	d.Push("x")
	d.Push("y")
	assert.Equal(t, []string{"x", "y"}, rec.snapshot(), "emission is synchronous")
	assert.False(t, d.Pending())
}

func TestDebouncer_InvalidArguments(t *testing.T) {
	_, err := debounce.New(-time.Millisecond, func(string) {})
	assert.ErrorIs(t, err, debounce.ErrInvalidDelay)

	_, err = debounce.New[string](time.Millisecond, nil)
	assert.Error(t, err)
}

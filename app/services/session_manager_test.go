package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSessionManagerGetCreatesOnce(t *testing.T) {
	m := NewSessionManager(time.Hour)

	a := m.Get("s1")
	b := m.Get("s1")

	assert.Same(t, a, b)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, a.Cart.TotalItems())
}

func TestSessionManagerIsolatesCarts(t *testing.T) {
	m := NewSessionManager(time.Hour)

	m.Get("s1").Cart.AddItem(classicWhite(2))

	assert.Equal(t, 2, m.Get("s1").Cart.TotalItems())
	assert.Equal(t, 0, m.Get("s2").Cart.TotalItems())
}

func TestSessionCustomizerSharesSessionCart(t *testing.T) {
	m := NewSessionManager(time.Hour)
	s := m.Get("s1")

	_, err := s.Customizer.ConfirmOrder("add_to_cart")
	require.NoError(t, err)

	assert.Equal(t, 1, s.Cart.TotalItems())
}

func TestSessionManagerCustomizerOptions(t *testing.T) {
	m := NewSessionManager(time.Hour, WithCustomizerOptions(WithUnitPrice(decimal.RequireFromString("19.99"))))

	assert.Equal(t, "19.99", m.Get("s1").Customizer.Draft().UnitPrice.StringFixed(2))
}

func TestSessionManagerLookupAndEnd(t *testing.T) {
	m := NewSessionManager(time.Hour)

	_, ok := m.Lookup("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())

	m.Get("s1")
	_, ok = m.Lookup("s1")
	assert.True(t, ok)

	m.End("s1")
	_, ok = m.Lookup("s1")
	assert.False(t, ok)
}

func TestSessionManagerSweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewSessionManager(time.Hour, WithClock(clock.Now))

	m.Get("idle")
	clock.Advance(30 * time.Minute)
	m.Get("active")
	clock.Advance(45 * time.Minute)

	assert.Equal(t, 1, m.Sweep())
	_, ok := m.Lookup("idle")
	assert.False(t, ok)
	_, ok = m.Lookup("active")
	assert.True(t, ok)
}

func TestSessionManagerRunSweeperStops(t *testing.T) {
	m := NewSessionManager(time.Hour)
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		m.RunSweeper(time.Millisecond, stop)
		close(done)
	}()
	close(stop)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSessionManagerCapEndsLeastRecent(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewSessionManager(time.Hour, WithClock(clock.Now), WithMaxSessions(2))

	m.Get("a")
	clock.Advance(time.Minute)
	m.Get("b")
	clock.Advance(time.Minute)
	m.Get("a")
	clock.Advance(time.Minute)
	m.Get("c")

	assert.Equal(t, 2, m.Len())
	_, ok := m.Lookup("b")
	assert.False(t, ok)
	_, ok = m.Lookup("a")
	assert.True(t, ok)
	_, ok = m.Lookup("c")
	assert.True(t, ok)
}

func TestSessionManagerSweepsOneShotSessionsSooner(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewSessionManager(7*24*time.Hour, WithClock(clock.Now), WithFreshTTL(30*time.Minute))

	m.Get("drive-by")
	m.Get("shopper")
	m.Get("shopper")
	clock.Advance(time.Hour)

	assert.Equal(t, 1, m.Sweep())
	_, ok := m.Lookup("drive-by")
	assert.False(t, ok)
	_, ok = m.Lookup("shopper")
	assert.True(t, ok)
}

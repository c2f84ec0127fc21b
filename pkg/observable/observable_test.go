package observable_test

import (
	"testing"

	"github.com/arthur-debert/prefsync/pkg/observable"
	"github.com/stretchr/testify/assert"
)

func TestSetNotifiesSubscribers(t *testing.T) {
	p := observable.New(1)

	var got []observable.Change[int]
	p.Subscribe(func(c observable.Change[int]) {
		got = append(got, c)
	})

	notified := p.Set(2)

	assert.True(t, notified)
	assert.Equal(t, 2, p.Get())
	assert.Equal(t, []observable.Change[int]{{Old: 1, New: 2}}, got)
}

func TestComparableSuppressesNoOpSet(t *testing.T) {
	p := observable.NewComparable("Deutsch")

	calls := 0
	p.Subscribe(func(observable.Change[string]) { calls++ })

	assert.False(t, p.Set("Deutsch"), "equal value must not notify")
	assert.True(t, p.Set("English"))
	assert.Equal(t, 1, calls)
}

func TestPlainPropertyAlwaysNotifies(t *testing.T) {
	p := observable.New([]string{"Deutsch"})

	calls := 0
	p.Subscribe(func(observable.Change[[]string]) { calls++ })

	p.Set([]string{"Deutsch"})
	p.Set([]string{"Deutsch", "English"})

	assert.Equal(t, 2, calls)
}

func TestUnsubscribe(t *testing.T) {
	p := observable.NewComparable(false)

	calls := 0
	sub := p.Subscribe(func(observable.Change[bool]) { calls++ })

	p.Set(true)
	sub.Unsubscribe()
	sub.Unsubscribe() // second call is a no-op
	p.Set(false)

	assert.Equal(t, 1, calls)
}

func TestMultipleSubscribers(t *testing.T) {
	p := observable.NewComparable(0)

	a, b := 0, 0
	p.Subscribe(func(observable.Change[int]) { a++ })
	p.Subscribe(func(observable.Change[int]) { b++ })

	p.Set(1)

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestObserverMayReadProperty(t *testing.T) {
	p := observable.NewComparable(0)

	var seen int
	p.Subscribe(func(c observable.Change[int]) {
		// Observers run outside the lock, so Get must not deadlock.
		seen = p.Get()
	})

	p.Set(7)
	assert.Equal(t, 7, seen)
}

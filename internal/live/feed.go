// Package live is the in-process change feed behind the repository's watch
// operations. Services publish a topic after every committed mutation and
// watchers re-query the collection they care about.
package live

import "sync"

// Topic names one watched collection.
type Topic string

const (
	Subscriptions Topic = "subscriptions"
	Assets        Topic = "assets"
	Warranties    Topic = "warranties"
)

// AllTopics lists every collection topic.
var AllTopics = []Topic{Subscriptions, Assets, Warranties}

// Feed is a registry of change listeners keyed by topic. The zero value is
// not usable; call NewFeed.
type Feed struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[Topic]map[uint64]func()
}

// NewFeed creates an empty Feed.
func NewFeed() *Feed {
	return &Feed{listeners: make(map[Topic]map[uint64]func())}
}

// Subscribe registers fn for topic and returns a function that removes it.
// The returned function is safe to call more than once.
func (f *Feed) Subscribe(topic Topic, fn func()) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	if f.listeners[topic] == nil {
		f.listeners[topic] = make(map[uint64]func())
	}
	f.listeners[topic][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.listeners[topic], id)
			f.mu.Unlock()
		})
	}
}

// Publish notifies every listener of the given topics. Listeners run on the
// caller's goroutine after the registry lock is released, so a listener may
// subscribe or cancel without deadlocking.
func (f *Feed) Publish(topics ...Topic) {
	var fns []func()
	f.mu.Lock()
	for _, topic := range topics {
		for _, fn := range f.listeners[topic] {
			fns = append(fns, fn)
		}
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of listeners registered for topic.
func (f *Feed) Len(topic Topic) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners[topic])
}

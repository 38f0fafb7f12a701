package services

import (
	"sync"

	"relaybot/domain/entities"
)

// channelLocks hands out one mutex per channel.
// Entries are reference counted and dropped once nobody holds or waits on them.
type channelLocks struct {
	mu    sync.Mutex
	locks map[entities.ChannelKey]*channelLock
}

type channelLock struct {
	mu   sync.Mutex
	refs int
}

func newChannelLocks() *channelLocks {
	return &channelLocks{locks: make(map[entities.ChannelKey]*channelLock)}
}

// Lock acquires the channel's mutex and returns the matching unlock function
func (l *channelLocks) Lock(key entities.ChannelKey) func() {
	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &channelLock{}
		l.locks[key] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// size returns the number of live entries
func (l *channelLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

package bot

import (
	"context"
	"sync"
	"time"

	"relaybot/domain/entities"
	"relaybot/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// messageDeleter is the subset of the Discord session used to remove relayed messages
type messageDeleter interface {
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// DeletionScheduler deletes relayed messages after a channel's auto-delete delay.
// Pending deletions are tracked per channel so reconfiguring or disabling a channel cancels them.
type DeletionScheduler struct {
	deleter messageDeleter
	mu      sync.Mutex
	pending map[entities.ChannelKey]map[string]*time.Timer // messageID -> timer
	closed  bool
}

// NewDeletionScheduler creates a scheduler with no pending deletions
func NewDeletionScheduler(deleter messageDeleter) *DeletionScheduler {
	return &DeletionScheduler{
		deleter: deleter,
		pending: make(map[entities.ChannelKey]map[string]*time.Timer),
	}
}

// Schedule deletes messageID from the channel once delay has passed
func (d *DeletionScheduler) Schedule(key entities.ChannelKey, messageID string, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if d.pending[key] == nil {
		d.pending[key] = make(map[string]*time.Timer)
	}
	if existing, ok := d.pending[key][messageID]; ok {
		existing.Stop()
	}
	d.pending[key][messageID] = time.AfterFunc(delay, func() {
		d.fire(key, messageID)
	})
}

// CancelChannel stops every pending deletion for the channel and returns how many were stopped
func (d *DeletionScheduler) CancelChannel(key entities.ChannelKey) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	timers := d.pending[key]
	for _, timer := range timers {
		timer.Stop()
	}
	delete(d.pending, key)

	if len(timers) > 0 {
		log.WithFields(log.Fields{
			"channel":   key.String(),
			"cancelled": len(timers),
		}).Info("Cancelled pending deletions")
	}
	return len(timers)
}

// Pending returns the number of deletions that have not run yet
func (d *DeletionScheduler) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := 0
	for _, timers := range d.pending {
		count += len(timers)
	}
	return count
}

// Close stops all pending deletions; later calls to Schedule are ignored
func (d *DeletionScheduler) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, timers := range d.pending {
		for _, timer := range timers {
			timer.Stop()
		}
	}
	d.pending = make(map[entities.ChannelKey]map[string]*time.Timer)
	d.closed = true
}

// Subscribe cancels pending deletions when a channel is disabled, its languages are replaced
// or auto-delete is switched off
func (d *DeletionScheduler) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeChannelDisabled, func(_ context.Context, event events.Event) {
		if e, ok := event.(events.ChannelDisabledEvent); ok {
			d.CancelChannel(entities.ChannelKey{GuildID: e.GuildID, ChannelID: e.ChannelID})
		}
	})
	bus.Subscribe(events.EventTypeChannelEnabled, func(_ context.Context, event events.Event) {
		if e, ok := event.(events.ChannelEnabledEvent); ok && e.Replaced {
			d.CancelChannel(entities.ChannelKey{GuildID: e.GuildID, ChannelID: e.ChannelID})
		}
	})
	bus.Subscribe(events.EventTypeChannelSettingsUpdated, func(_ context.Context, event events.Event) {
		if e, ok := event.(events.ChannelSettingsUpdatedEvent); ok && !e.AutoDelete {
			d.CancelChannel(entities.ChannelKey{GuildID: e.GuildID, ChannelID: e.ChannelID})
		}
	})
}

// fire runs on the timer goroutine; a deletion cancelled in the meantime is skipped
func (d *DeletionScheduler) fire(key entities.ChannelKey, messageID string) {
	d.mu.Lock()
	if _, ok := d.pending[key][messageID]; !ok {
		d.mu.Unlock()
		return
	}
	delete(d.pending[key], messageID)
	if len(d.pending[key]) == 0 {
		delete(d.pending, key)
	}
	d.mu.Unlock()

	if err := d.deleter.ChannelMessageDelete(key.ChannelID, messageID); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"channel":    key.String(),
			"message_id": messageID,
		}).Debug("Failed to auto-delete relayed message")
	}
}

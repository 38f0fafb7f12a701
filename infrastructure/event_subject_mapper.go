package infrastructure

import (
	"fmt"

	"relaybot/events"
)

// DomainEventStream is the JetStream stream holding all published domain events
const DomainEventStream = "translation_events"

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeChannelEnabled:
		return "translation.channel.enabled"
	case events.EventTypeChannelDisabled:
		return "translation.channel.disabled"
	case events.EventTypeChannelSettingsUpdated:
		return "translation.channel.settings_updated"
	case events.EventTypeMessageRelayed:
		return "translation.message.relayed"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "translation.channel.enabled":
		return events.EventTypeChannelEnabled
	case "translation.channel.disabled":
		return events.EventTypeChannelDisabled
	case "translation.channel.settings_updated":
		return events.EventTypeChannelSettingsUpdated
	case "translation.message.relayed":
		return events.EventTypeMessageRelayed
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"translation.channel.enabled",
		"translation.channel.disabled",
		"translation.channel.settings_updated",
		"translation.message.relayed",
	}
}

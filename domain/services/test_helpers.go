package services

import (
	"relaybot/domain/entities"
	"relaybot/domain/testhelpers"

	"github.com/stretchr/testify/mock"
)

// Test constants for consistent test data
const (
	TestGuildID   = "555555555"
	TestChannelID = "987654321"
	TestUserID    = "100"
)

// TestKey is the channel key used across service tests
var TestKey = entities.ChannelKey{GuildID: TestGuildID, ChannelID: TestChannelID}

// TestMocks aggregates all mocks for testing
type TestMocks struct {
	Store          *testhelpers.MockStore
	EventPublisher *testhelpers.MockEventPublisher
	Translator     *testhelpers.MockTranslator
	Summarizer     *testhelpers.MockSummarizer
}

// NewTestMocks creates a new set of mocks
func NewTestMocks() *TestMocks {
	return &TestMocks{
		Store:          &testhelpers.MockStore{},
		EventPublisher: &testhelpers.MockEventPublisher{},
		Translator:     &testhelpers.MockTranslator{},
		Summarizer:     &testhelpers.MockSummarizer{},
	}
}

// AssertAllExpectations verifies all mock expectations were met
func (m *TestMocks) AssertAllExpectations(t mock.TestingT) {
	m.Store.AssertExpectations(t)
	m.EventPublisher.AssertExpectations(t)
	m.Translator.AssertExpectations(t)
	m.Summarizer.AssertExpectations(t)
}

// configWith builds a channel config for TestKey
func configWith(languages []string, settings entities.Settings) *entities.ChannelConfig {
	return &entities.ChannelConfig{
		Key:       TestKey,
		Languages: languages,
		Settings:  settings,
	}
}

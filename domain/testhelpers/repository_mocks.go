package testhelpers

import (
	"context"

	"relaybot/domain/entities"
	"relaybot/events"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetChannelConfig(ctx context.Context, key entities.ChannelKey) (*entities.ChannelConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ChannelConfig), args.Error(1)
}

func (m *MockStore) SaveChannelConfig(ctx context.Context, config *entities.ChannelConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockStore) DeleteChannelConfig(ctx context.Context, key entities.ChannelKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ListChannelConfigs(ctx context.Context) ([]*entities.ChannelConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ChannelConfig), args.Error(1)
}

func (m *MockStore) GetUserLanguage(ctx context.Context, userID string) (string, bool, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) SetUserLanguage(ctx context.Context, userID, language string) error {
	args := m.Called(ctx, userID, language)
	return args.Error(0)
}

func (m *MockStore) IncrementRelayed(ctx context.Context, key entities.ChannelKey) (*entities.ChannelStats, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ChannelStats), args.Error(1)
}

func (m *MockStore) GetChannelStats(ctx context.Context, key entities.ChannelKey) (*entities.ChannelStats, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ChannelStats), args.Error(1)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

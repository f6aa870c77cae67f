package email_processor

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/releasewatch/mailparser/internal/models"
)

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorageService) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, key, data, contentType)
	return args.Error(0)
}

type MockReleaseRepository struct {
	mock.Mock
}

func (m *MockReleaseRepository) Upsert(ctx context.Context, record *models.ReleaseRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockReleaseRepository) ListByRecipient(ctx context.Context, recipient string) ([]*models.ReleaseRecord, error) {
	args := m.Called(ctx, recipient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ReleaseRecord), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, message string, attributes map[string]string) error {
	args := m.Called(ctx, message, attributes)
	return args.Error(0)
}

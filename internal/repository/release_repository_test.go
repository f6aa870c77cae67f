package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/releasewatch/mailparser/internal/models"
)

type MockDynamoDB struct {
	dynamodbiface.DynamoDBAPI
	mock.Mock
}

func (m *MockDynamoDB) PutItemWithContext(ctx aws.Context, input *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.PutItemOutput), args.Error(1)
}

func (m *MockDynamoDB) QueryPagesWithContext(ctx aws.Context, input *dynamodb.QueryInput, fn func(*dynamodb.QueryOutput, bool) bool, _ ...request.Option) error {
	args := m.Called(ctx, input)
	pages, _ := args.Get(0).([]*dynamodb.QueryOutput)
	for i, page := range pages {
		if !fn(page, i == len(pages)-1) {
			break
		}
	}
	return args.Error(1)
}

func release(date, title string, artist *string) *models.ReleaseRecord {
	return &models.ReleaseRecord{
		Recipient: "fan@example.com",
		Date:      date,
		Label:     "Night Label",
		Title:     title,
		Artist:    artist,
		Link:      "https://label.example/" + title,
		CoverLink: "https://img.example/" + title + ".jpg",
	}
}

func page(t *testing.T, records ...*models.ReleaseRecord) *dynamodb.QueryOutput {
	items := make([]map[string]*dynamodb.AttributeValue, 0, len(records))
	for _, record := range records {
		item, err := dynamodbattribute.MarshalMap(record)
		require.NoError(t, err)
		items = append(items, item)
	}
	return &dynamodb.QueryOutput{Items: items}
}

func TestReleaseRepository_UpsertStoresNullArtist(t *testing.T) {
	client := new(MockDynamoDB)
	client.On("PutItemWithContext", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

	repo := NewReleaseRepository(client, "releases")
	err := repo.Upsert(context.Background(), release("2022-03-04T05:06:07+09:00", "deep", nil))
	require.NoError(t, err)

	input := client.Calls[0].Arguments.Get(1).(*dynamodb.PutItemInput)
	assert.Equal(t, "releases", aws.StringValue(input.TableName))
	assert.Equal(t, "fan@example.com", aws.StringValue(input.Item["to"].S))
	assert.Equal(t, "2022-03-04T05:06:07+09:00", aws.StringValue(input.Item["date"].S))
	assert.Equal(t, "https://img.example/deep.jpg", aws.StringValue(input.Item["cover_link"].S))
	require.Contains(t, input.Item, "artist")
	assert.True(t, aws.BoolValue(input.Item["artist"].NULL))
}

func TestReleaseRepository_UpsertStoresArtist(t *testing.T) {
	client := new(MockDynamoDB)
	client.On("PutItemWithContext", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

	artist := "Some Artist"
	err := NewReleaseRepository(client, "releases").Upsert(context.Background(), release("2022-03-04T05:06:07+09:00", "deep", &artist))
	require.NoError(t, err)

	input := client.Calls[0].Arguments.Get(1).(*dynamodb.PutItemInput)
	assert.Equal(t, "Some Artist", aws.StringValue(input.Item["artist"].S))
}

func TestReleaseRepository_UpsertErrors(t *testing.T) {
	client := new(MockDynamoDB)
	client.On("PutItemWithContext", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))
	repo := NewReleaseRepository(client, "releases")

	err := repo.Upsert(context.Background(), release("2022-03-04T05:06:07+09:00", "deep", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")

	err = repo.Upsert(context.Background(), nil)
	require.Error(t, err)
	client.AssertNumberOfCalls(t, "PutItemWithContext", 1)
}

func TestReleaseRepository_ListByRecipient(t *testing.T) {
	artist := "Some Artist"
	client := new(MockDynamoDB)
	client.On("QueryPagesWithContext", mock.Anything, mock.Anything).Return([]*dynamodb.QueryOutput{
		page(t, release("2021-01-01T00:00:00Z", "old", nil), release("2023-06-01T12:00:00+09:00", "new", &artist)),
		page(t, release("2022-03-04T05:06:07+09:00", "middle", nil)),
	}, nil)

	records, err := NewReleaseRepository(client, "releases").ListByRecipient(context.Background(), "fan@example.com")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "new", records[0].Title)
	require.NotNil(t, records[0].Artist)
	assert.Equal(t, "Some Artist", *records[0].Artist)
	assert.Equal(t, "middle", records[1].Title)
	assert.Equal(t, "old", records[2].Title)
	assert.Nil(t, records[2].Artist)

	input := client.Calls[0].Arguments.Get(1).(*dynamodb.QueryInput)
	assert.Equal(t, "releases", aws.StringValue(input.TableName))
	require.NotNil(t, input.KeyConditionExpression)

	var names []string
	for _, name := range input.ExpressionAttributeNames {
		names = append(names, aws.StringValue(name))
	}
	assert.Contains(t, names, "to")

	var values []string
	for _, value := range input.ExpressionAttributeValues {
		values = append(values, aws.StringValue(value.S))
	}
	assert.Contains(t, values, "fan@example.com")
}

func TestReleaseRepository_ListByRecipientEmpty(t *testing.T) {
	client := new(MockDynamoDB)
	client.On("QueryPagesWithContext", mock.Anything, mock.Anything).Return(nil, nil)

	records, err := NewReleaseRepository(client, "releases").ListByRecipient(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReleaseRepository_ListByRecipientError(t *testing.T) {
	client := new(MockDynamoDB)
	client.On("QueryPagesWithContext", mock.Anything, mock.Anything).Return(nil, errors.New("table missing"))

	records, err := NewReleaseRepository(client, "releases").ListByRecipient(context.Background(), "fan@example.com")
	require.Error(t, err)
	assert.Nil(t, records)
}

func TestSortNewestFirst(t *testing.T) {
	records := []*models.ReleaseRecord{
		release("not a date", "broken-a", nil),
		release("2020-01-01T00:00:00Z", "2020", nil),
		release("garbage", "broken-b", nil),
		release("2024-05-05T00:00:00+09:00", "2024", nil),
	}

	SortNewestFirst(records)

	titles := make([]string, 0, len(records))
	for _, record := range records {
		titles = append(titles, record.Title)
	}
	assert.Equal(t, []string{"2024", "2020", "broken-a", "broken-b"}, titles)
}

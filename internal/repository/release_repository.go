package repository

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/models"
	"github.com/releasewatch/mailparser/internal/tracing"
)

const attributeRecipient = "to"

type releaseRepository struct {
	client    dynamodbiface.DynamoDBAPI
	tableName string
}

func NewReleaseRepository(client dynamodbiface.DynamoDBAPI, tableName string) interfaces.ReleaseRepository {
	return &releaseRepository{
		client:    client,
		tableName: tableName,
	}
}

// Upsert writes the record, replacing any item with the same key. A missing
// artist is stored as an explicit NULL attribute.
func (r *releaseRepository) Upsert(ctx context.Context, record *models.ReleaseRecord) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "releaseRepository.Upsert")
	defer span.Finish()
	tracing.SetDefaultDynamoRepositorySpanTags(ctx, span)
	span.SetTag("table", r.tableName)

	if record == nil {
		err := errors.New("release record is nil")
		tracing.TraceErr(span, err)
		return err
	}

	item, err := dynamodbattribute.MarshalMap(record)
	if err != nil {
		err = errors.Wrap(err, "marshal release record")
		tracing.TraceErr(span, err)
		return err
	}

	_, err = r.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		err = errors.Wrapf(err, "put release into %s", r.tableName)
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

// ListByRecipient returns every release stored for the recipient, newest first.
func (r *releaseRepository) ListByRecipient(ctx context.Context, recipient string) ([]*models.ReleaseRecord, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "releaseRepository.ListByRecipient")
	defer span.Finish()
	tracing.SetDefaultDynamoRepositorySpanTags(ctx, span)
	span.SetTag("table", r.tableName)

	keyCondition := expression.Key(attributeRecipient).Equal(expression.Value(recipient))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	records := []*models.ReleaseRecord{}
	var unmarshalErr error
	err = r.client.QueryPagesWithContext(ctx, input, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		var items []*models.ReleaseRecord
		if unmarshalErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &items); unmarshalErr != nil {
			return false
		}
		records = append(records, items...)
		return true
	})
	if err == nil {
		err = unmarshalErr
	}
	if err != nil {
		err = errors.Wrapf(err, "query releases from %s", r.tableName)
		tracing.TraceErr(span, err)
		return nil, err
	}

	SortNewestFirst(records)
	span.SetTag("count", len(records))
	return records, nil
}

// SortNewestFirst orders records by date descending. Records whose date does not
// parse keep their relative order after all dated ones.
func SortNewestFirst(records []*models.ReleaseRecord) {
	parsed := make(map[*models.ReleaseRecord]time.Time, len(records))
	for _, record := range records {
		if t, err := time.Parse(time.RFC3339, record.Date); err == nil {
			parsed[record] = t
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		ti, okI := parsed[records[i]]
		tj, okJ := parsed[records[j]]
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		default:
			return false
		}
	})
}

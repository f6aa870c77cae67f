package events

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/tracing"
)

const (
	AttributeBucket = "bucket"
	AttributeKey    = "key"

	snsDataTypeString = "String"
)

var ErrTopicNotConfigured = errors.New("forward topic arn is not configured")

type SNSPublisher struct {
	client   snsiface.SNSAPI
	topicArn string
	logger   logger.Logger
}

func NewSNSPublisher(client snsiface.SNSAPI, topicArn string, logger logger.Logger) interfaces.NotificationPublisher {
	return &SNSPublisher{
		client:   client,
		topicArn: topicArn,
		logger:   logger,
	}
}

// Publish sends message to the forward topic. Empty attribute values are dropped
// because SNS rejects them.
func (p *SNSPublisher) Publish(ctx context.Context, message string, attributes map[string]string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SNSPublisher.Publish")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("topic", p.topicArn)

	if p.topicArn == "" {
		tracing.TraceErr(span, ErrTopicNotConfigured)
		return ErrTopicNotConfigured
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(p.topicArn),
		Message:  aws.String(message),
	}
	if len(attributes) > 0 {
		input.MessageAttributes = make(map[string]*sns.MessageAttributeValue, len(attributes))
		for name, value := range attributes {
			if value == "" {
				continue
			}
			input.MessageAttributes[name] = &sns.MessageAttributeValue{
				DataType:    aws.String(snsDataTypeString),
				StringValue: aws.String(value),
			}
		}
	}

	output, err := p.client.PublishWithContext(ctx, input)
	if err != nil {
		err = errors.Wrap(err, "publish to forward topic")
		tracing.TraceErr(span, err)
		return err
	}

	p.logger.Debugf("Published forward message %s to %s", aws.StringValue(output.MessageId), p.topicArn)
	return nil
}

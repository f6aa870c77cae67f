package aws_client

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasewatch/mailparser/config"
)

func TestNewSession_CustomEndpoint(t *testing.T) {
	sess, err := NewSession(&config.AWSConfig{
		Region:          "ap-northeast-1",
		Endpoint:        "http://localhost:4566",
		AccessKeyID:     "test",
		AccessKeySecret: "test",
	})
	require.NoError(t, err)

	assert.Equal(t, "ap-northeast-1", aws.StringValue(sess.Config.Region))
	assert.Equal(t, "http://localhost:4566", aws.StringValue(sess.Config.Endpoint))
	assert.True(t, aws.BoolValue(sess.Config.S3ForcePathStyle))

	creds, err := sess.Config.Credentials.Get()
	require.NoError(t, err)
	assert.Equal(t, "test", creds.AccessKeyID)
}

func TestNewSession_DefaultEndpoint(t *testing.T) {
	sess, err := NewSession(&config.AWSConfig{Region: "us-east-1"})
	require.NoError(t, err)

	assert.Empty(t, aws.StringValue(sess.Config.Endpoint))
	assert.False(t, aws.BoolValue(sess.Config.S3ForcePathStyle))
}

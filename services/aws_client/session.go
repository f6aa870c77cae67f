package aws_client

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/releasewatch/mailparser/config"
)

// NewSession builds the shared session for S3, DynamoDB and SNS. Static
// credentials are used only when both key parts are configured; otherwise the
// default chain (Lambda role, profile, env) applies.
func NewSession(cfg *config.AWSConfig) (*session.Session, error) {
	awsConfig := aws.NewConfig().WithRegion(cfg.Region)

	// Custom endpoints (localstack, minio) need path-style bucket addressing
	if cfg.Endpoint != "" {
		awsConfig = awsConfig.
			WithEndpoint(cfg.Endpoint).
			WithS3ForcePathStyle(true)
	}

	if cfg.AccessKeyID != "" && cfg.AccessKeySecret != "" {
		awsConfig = awsConfig.WithCredentials(
			credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.AccessKeySecret, cfg.SessionToken),
		)
	}

	return session.NewSession(awsConfig)
}

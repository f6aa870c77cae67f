package repository

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/releasewatch/mailparser/config"
	"github.com/releasewatch/mailparser/interfaces"
)

type Repositories struct {
	ReleaseRepository interfaces.ReleaseRepository
}

func InitRepositories(sess *session.Session, pipelineConfig *config.PipelineConfig) *Repositories {
	return &Repositories{
		ReleaseRepository: NewReleaseRepository(dynamodb.New(sess), pipelineConfig.ReleasesTable),
	}
}

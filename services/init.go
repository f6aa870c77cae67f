package services

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"

	"github.com/releasewatch/mailparser/config"
	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/repository"
	"github.com/releasewatch/mailparser/services/aws_client"
	"github.com/releasewatch/mailparser/services/classifier"
	"github.com/releasewatch/mailparser/services/digest"
	"github.com/releasewatch/mailparser/services/email_processor"
	"github.com/releasewatch/mailparser/services/email_processor/handlers"
	"github.com/releasewatch/mailparser/services/envelope"
	"github.com/releasewatch/mailparser/services/events"
	"github.com/releasewatch/mailparser/services/extractor"
	"github.com/releasewatch/mailparser/services/storage"
)

type Services struct {
	StorageService        interfaces.StorageService
	EnvelopeParser        interfaces.EnvelopeParser
	ExtractorRegistry     interfaces.ExtractorRegistry
	SenderClassifier      interfaces.SenderClassifier
	DigestBuilder         interfaces.DigestBuilder
	NotificationPublisher interfaces.NotificationPublisher
	EmailProcessor        *email_processor.Processor
}

// InitOfflineServices wires the pure parsing components, no AWS access needed.
func InitOfflineServices(pipelineConfig *config.PipelineConfig) *Services {
	registry := extractor.NewDefaultRegistry(pipelineConfig.StructuredSender)

	return &Services{
		EnvelopeParser:    envelope.NewEnvelopeParser(),
		ExtractorRegistry: registry,
		SenderClassifier:  classifier.NewSenderClassifier(registry),
		DigestBuilder:     digest.NewDigestBuilder(),
	}
}

func InitServices(cfg *config.Config, sess *session.Session, log logger.Logger, repos *repository.Repositories) *Services {
	services := InitOfflineServices(cfg.PipelineConfig)

	services.StorageService = storage.NewStorageService(aws_client.NewS3Client(sess))
	services.NotificationPublisher = events.NewSNSPublisher(sns.New(sess), cfg.PipelineConfig.ForwardTopicArn, log)

	releaseHandler := handlers.NewReleaseHandler(
		services.ExtractorRegistry,
		repos.ReleaseRepository,
		services.StorageService,
		handlers.QuarantineConfig{
			Bucket: cfg.PipelineConfig.QuarantineBucket,
			Prefix: cfg.PipelineConfig.QuarantinePrefix,
		},
		log,
	)
	forwardHandler := handlers.NewForwardHandler(services.DigestBuilder, services.NotificationPublisher, log)

	services.EmailProcessor = email_processor.NewProcessor(
		services.StorageService,
		services.EnvelopeParser,
		services.SenderClassifier,
		releaseHandler,
		forwardHandler,
		log,
	)

	return services
}

package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/api"
	"github.com/releasewatch/mailparser/config"
	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/repository"
	"github.com/releasewatch/mailparser/internal/tracing"
	"github.com/releasewatch/mailparser/services"
	"github.com/releasewatch/mailparser/services/aws_client"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	config       *config.Config
	logger       logger.Logger
	httpServer   *http.Server
	router       *gin.Engine
	services     *services.Services
	repositories *repository.Repositories
	tracerCloser io.Closer
}

func NewServer(cfg *config.Config) (*Server, error) {
	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		return nil, errors.Wrap(err, "could not initialize jaeger tracer")
	}
	opentracing.SetGlobalTracer(tracer)

	sess, err := aws_client.NewSession(cfg.AWSConfig)
	if err != nil {
		closer.Close()
		return nil, errors.Wrap(err, "could not create aws session")
	}

	repos := repository.InitRepositories(sess, cfg.PipelineConfig)
	svcs := services.InitServices(cfg, sess, appLogger, repos)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	return &Server{
		config:       cfg,
		logger:       appLogger,
		router:       router,
		services:     svcs,
		repositories: repos,
		tracerCloser: closer,
		httpServer: &http.Server{
			Addr:    ":" + cfg.AppConfig.APIPort,
			Handler: router,
		},
	}, nil
}

func (s *Server) Logger() logger.Logger {
	return s.logger
}

func (s *Server) Services() *services.Services {
	return s.services
}

func (s *Server) Repositories() *repository.Repositories {
	return s.repositories
}

func (s *Server) Close() {
	if s.tracerCloser != nil {
		s.tracerCloser.Close()
	}
	_ = s.logger.Sync()
}

// StartLambda hands control to the Lambda runtime; it does not return.
func (s *Server) StartLambda() {
	handler := NewLambdaHandler(s.services.EmailProcessor, s.logger)
	s.logger.Info("Starting lambda handler")
	lambda.Start(handler.Handle)
}

// Run serves the read API until SIGINT/SIGTERM.
func (s *Server) Run() error {
	api.RegisterRoutes(s.router, s.repositories, s.config.AppConfig.APIKey, s.logger)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting HTTP server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return s.waitForShutdown(errCh)
}

func (s *Server) waitForShutdown(errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	case <-stop:
	}

	s.logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Errorf("HTTP server shutdown error: %v", err)
		return err
	}
	s.logger.Info("HTTP server shut down successfully")
	return nil
}

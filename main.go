package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/releasewatch/mailparser/config"
	"github.com/releasewatch/mailparser/dto"
	"github.com/releasewatch/mailparser/server"
	"github.com/releasewatch/mailparser/services"
	"github.com/releasewatch/mailparser/services/email_processor"
)

func main() {
	app := &cli.App{
		Name:  "mailparser",
		Usage: "classify stored release notification mail and extract release records",
		// The Lambda runtime starts the binary without arguments.
		Action: runLambda,
		Commands: []*cli.Command{
			{
				Name:   "lambda",
				Usage:  "Run as an S3-triggered Lambda function",
				Action: runLambda,
			},
			{
				Name:   "server",
				Usage:  "Serve the release read API",
				Action: runServer,
			},
			{
				Name:  "process",
				Usage: "Run the pipeline once for a stored message",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "bucket", Required: true},
					&cli.StringFlag{Name: "key", Required: true},
				},
				Action: runProcess,
			},
			{
				Name:      "parse",
				Usage:     "Show how a local .eml file would be routed and extracted",
				ArgsUsage: "<file.eml>",
				Action:    runParse,
			},
			{
				Name:  "releases",
				Usage: "List stored releases of a recipient",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Required: true},
				},
				Action: runReleases,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("mailparser: %v", err)
	}
}

func newServer() (*server.Server, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return nil, err
	}
	return server.NewServer(cfg)
}

func runLambda(c *cli.Context) error {
	srv, err := newServer()
	if err != nil {
		return err
	}
	defer srv.Close()

	srv.StartLambda()
	return nil
}

func runServer(c *cli.Context) error {
	srv, err := newServer()
	if err != nil {
		return err
	}
	defer srv.Close()

	return srv.Run()
}

func runProcess(c *cli.Context) error {
	srv, err := newServer()
	if err != nil {
		return err
	}
	defer srv.Close()

	outcome, err := srv.Services().EmailProcessor.Process(contextOf(c), c.String("bucket"), c.String("key"))
	if err != nil {
		return err
	}
	fmt.Println(outcome)
	return nil
}

func runParse(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one .eml file")
	}
	raw, err := os.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}
	svcs := services.InitOfflineServices(cfg.PipelineConfig)
	inspector := email_processor.NewInspector(svcs.EnvelopeParser, svcs.SenderClassifier, svcs.ExtractorRegistry, svcs.DigestBuilder)

	result, err := inspector.Inspect(contextOf(c), raw)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runReleases(c *cli.Context) error {
	srv, err := newServer()
	if err != nil {
		return err
	}
	defer srv.Close()

	records, err := srv.Repositories().ReleaseRepository.ListByRecipient(contextOf(c), c.String("to"))
	if err != nil {
		return err
	}
	return printJSON(dto.NewReleaseListResponse(records))
}

func contextOf(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

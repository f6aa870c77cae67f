package config

type AppConfig struct {
	APIPort string `env:"PORT" envDefault:"12222"`
	APIKey  string `env:"API_KEY"`
}

type AWSConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"ap-northeast-1"`
	Endpoint        string `env:"AWS_ENDPOINT"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"AWS_SESSION_TOKEN"`
}

type PipelineConfig struct {
	// StructuredSender is matched exactly and case-sensitively against the From address.
	StructuredSender string `env:"MAILPARSER_STRUCTURED_SENDER" envDefault:"noreply@bandcamp.com"`
	ReleasesTable    string `env:"MAILPARSER_RELEASES_TABLE" envDefault:"releases"`
	ForwardTopicArn  string `env:"MAILPARSER_FORWARD_TOPIC_ARN"`
	QuarantineBucket string `env:"MAILPARSER_QUARANTINE_BUCKET"`
	QuarantinePrefix string `env:"MAILPARSER_QUARANTINE_PREFIX" envDefault:"mismatch/"`
}

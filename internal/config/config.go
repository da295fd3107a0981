package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"degistir123"`

	// Routing thresholds. Replies below ConfidenceThreshold escalate to a
	// ticket; knowledge hits below KnowledgeThreshold fall through to the
	// classifier.
	ConfidenceThreshold float64 `envconfig:"CONFIDENCE_THRESHOLD" default:"0.65"`
	KnowledgeThreshold  float64 `envconfig:"KNOWLEDGE_THRESHOLD" default:"0.22"`

	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"550"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"80"`

	// Knowledge sources and the index cache location.
	SlidesPath string `envconfig:"SLIDES_PATH" default:"documents/isletmede-mesleki-egitim.pptx"`
	FAQPath    string `envconfig:"FAQ_PATH" default:"documents/sss.docx"`
	CacheDir   string `envconfig:"CACHE_DIR" default:".cache"`

	// Optional S3-compatible document store. When set, source documents are
	// fetched from the bucket instead of the local paths above.
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"destek-documents"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DESTEK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// Validate rejects a missing database URL and invalid chunk and threshold
// settings. These are the only fatal configuration conditions; everything
// else degrades at runtime. The empty-URL check matters because envconfig's
// required tag accepts a variable that is set but empty.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return domain.ErrMissingDatabaseURL
	}
	if c.ChunkOverlap < 0 || c.ChunkSize <= c.ChunkOverlap {
		return domain.ErrInvalidChunkConfig
	}
	if c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold >= 1 {
		return domain.ErrInvalidThreshold
	}
	if c.KnowledgeThreshold <= 0 || c.KnowledgeThreshold >= 1 {
		return domain.ErrInvalidThreshold
	}
	return nil
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// vector store
	VectorStore         string // "pinecone" or "pgvector"
	PineconeAPIKey      string
	PineconeEnvironment string
	IndexName           string
	DatabaseURL         string

	// embedding provider
	EmbedProvider string // "cohere", "gemini" or "mock"
	CohereAPIKey  string
	GeminiAPIKey  string
	EmbedModel    string
	EmbedDim      int

	// pipeline
	ChunkSize int
	BatchSize int

	// ocr
	TessdataPrefix string
	OCRLanguages   string

	// document source
	Source       string // "local" or "s3"
	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string
	BucketPrefix string
}

// LoadConfig loads the environment variables and returns the config.
// Variables required by the selected vector store, embedding provider or
// source are fatal when missing, before any processing starts.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		VectorStore:         getEnv("VECTOR_STORE", "pinecone"),
		PineconeAPIKey:      getEnv("PINECONE_API_KEY", ""),
		PineconeEnvironment: getEnv("PINECONE_ENVIRONMENT", ""),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		EmbedProvider:       getEnv("EMBED_PROVIDER", "cohere"),
		CohereAPIKey:        getEnv("COHERE_API_KEY", ""),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		EmbedModel:          getEnv("EMBED_MODEL", ""),
		EmbedDim:            getEnvInt("EMBED_DIM", 1024),
		ChunkSize:           getEnvInt("CHUNK_SIZE", 500),
		BatchSize:           getEnvInt("BATCH_SIZE", 100),
		TessdataPrefix:      getEnv("TESSDATA_PREFIX", ""),
		OCRLanguages:        getEnv("OCR_LANGUAGES", "eng"),
		Source:              getEnv("SOURCE", "local"),
		AwsAccessKey:        getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:        getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:           getEnv("AWS_REGION", "us-east-1"),
		BucketName:          getEnv("BUCKET_NAME", ""),
		BucketPrefix:        getEnv("BUCKET_PREFIX", ""),
	}

	switch cfg.VectorStore {
	case "pinecone":
		if cfg.PineconeAPIKey == "" {
			log.Fatal("PINECONE_API_KEY not set")
		}
		if cfg.PineconeEnvironment == "" {
			log.Fatal("PINECONE_ENVIRONMENT not set")
		}
		cfg.IndexName = getEnv("PINECONE_INDEX_NAME", "")
		if cfg.IndexName == "" {
			log.Fatal("PINECONE_INDEX_NAME not set")
		}
	case "pgvector":
		if cfg.DatabaseURL == "" {
			log.Fatal("DATABASE_URL not set")
		}
		cfg.IndexName = getEnv("INDEX_NAME", "documents")
	default:
		log.Fatalf("unknown VECTOR_STORE %q", cfg.VectorStore)
	}

	switch cfg.EmbedProvider {
	case "cohere":
		if cfg.CohereAPIKey == "" {
			log.Fatal("COHERE_API_KEY not set")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Fatal("GEMINI_API_KEY not set")
		}
	case "mock":
		// no credentials
	default:
		log.Fatalf("unknown EMBED_PROVIDER %q", cfg.EmbedProvider)
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

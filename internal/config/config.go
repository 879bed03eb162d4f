package config

import (
	"os"
)

type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	InputBucket     string
	OutputBucket    string
	InputPublicURL  string
	OutputPublicURL string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type ReplicateConfig struct {
	APIToken     string
	ModelVersion string
}

type Config struct {
	AppURL    string
	Storage   StorageConfig
	Stripe    StripeConfig
	Replicate ReplicateConfig
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.AppURL = getEnv("APP_URL", "http://localhost:3000")

	// S3 uyumlu storage config
	cfg.Storage.Endpoint = os.Getenv("STORAGE_ENDPOINT")
	cfg.Storage.Region = getEnv("STORAGE_REGION", "auto")
	cfg.Storage.AccessKeyID = os.Getenv("STORAGE_ACCESS_KEY_ID")
	cfg.Storage.SecretAccessKey = os.Getenv("STORAGE_SECRET_ACCESS_KEY")
	cfg.Storage.InputBucket = getEnv("STORAGE_INPUT_BUCKET", "input-images")
	cfg.Storage.OutputBucket = getEnv("STORAGE_OUTPUT_BUCKET", "output-images")
	cfg.Storage.InputPublicURL = os.Getenv("STORAGE_INPUT_PUBLIC_URL")
	cfg.Storage.OutputPublicURL = os.Getenv("STORAGE_OUTPUT_PUBLIC_URL")

	// Stripe config
	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	cfg.Stripe.SuccessURL = getEnv("STRIPE_SUCCESS_URL", cfg.AppURL+"/dashboard?subscription=success")
	cfg.Stripe.CancelURL = getEnv("STRIPE_CANCEL_URL", cfg.AppURL+"/pricing?subscription=cancelled")

	// Replicate config
	cfg.Replicate.APIToken = os.Getenv("REPLICATE_API_TOKEN")
	cfg.Replicate.ModelVersion = os.Getenv("REPLICATE_MODEL_VERSION")

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSConfig holds one queue per worker binary.
type SQSConfig struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	IndexQueueURL   string `mapstructure:"index_queue_url"`
	ScrapeQueueURL  string `mapstructure:"scrape_queue_url"`
	MailQueueURL    string `mapstructure:"mail_queue_url"`
	CleanupQueueURL string `mapstructure:"cleanup_queue_url"`
}

func DefaultSQSConfig() *SQSConfig {
	return &SQSConfig{
		Region:          getEnvOrDefault("AWS_REGION", "us-east-1"),
		Endpoint:        getEnvOrDefault("AWS_SQS_ENDPOINT", "http://localhost:4566"),
		AccessKeyID:     getEnvOrDefault("AWS_ACCESS_KEY_ID", "dummy"),
		SecretAccessKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", "dummy"),
		IndexQueueURL:   getEnvOrDefault("AWS_SQS_INDEX_QUEUE_URL", "http://localhost:4566/000000000000/listing-index-queue"),
		ScrapeQueueURL:  getEnvOrDefault("AWS_SQS_SCRAPE_QUEUE_URL", "http://localhost:4566/000000000000/listing-scrape-queue"),
		MailQueueURL:    getEnvOrDefault("AWS_SQS_MAIL_QUEUE_URL", "http://localhost:4566/000000000000/mail-queue"),
		CleanupQueueURL: getEnvOrDefault("AWS_SQS_CLEANUP_QUEUE_URL", "http://localhost:4566/000000000000/subscriber-cleanup-queue"),
	}
}

func (c *SQSConfig) GetClient() (*sqs.Client, error) {
	cfg, err := loadAWSConfig(context.Background(), sqs.ServiceID, c.Region, c.Endpoint, c.AccessKeyID, c.SecretAccessKey)
	if err != nil {
		return nil, err
	}

	return sqs.NewFromConfig(cfg), nil
}

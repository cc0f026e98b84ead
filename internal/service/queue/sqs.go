package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
)

type MessageType string

const (
	MessageTypeIndexListing  MessageType = "INDEX_LISTING"
	MessageTypeDeleteListing MessageType = "DELETE_LISTING"
	MessageTypeScrape        MessageType = "SCRAPE"
	MessageTypeSendMail      MessageType = "SEND_MAIL"
	MessageTypePurge         MessageType = "PURGE_SUBSCRIBERS"
)

type Message struct {
	Type      MessageType `json:"type"`
	TenantID  string      `json:"tenant_id"`
	Timestamp time.Time   `json:"timestamp"`

	ListingID string            `json:"listing_id,omitempty"`
	Scrape    *domain.ScrapeJob `json:"scrape,omitempty"`
	Mail      *domain.Mail      `json:"mail,omitempty"`

	BeforeDate time.Time `json:"before_date,omitempty"`
}

type ReceivedMessage struct {
	Message       Message
	ReceiptHandle *string
}

type SQSService struct {
	client          *sqs.Client
	indexQueueURL   string
	scrapeQueueURL  string
	mailQueueURL    string
	cleanupQueueURL string
}

func NewSQSService(client *sqs.Client, config *config.SQSConfig) *SQSService {
	return &SQSService{
		client:          client,
		indexQueueURL:   config.IndexQueueURL,
		scrapeQueueURL:  config.ScrapeQueueURL,
		mailQueueURL:    config.MailQueueURL,
		cleanupQueueURL: config.CleanupQueueURL,
	}
}

func (s *SQSService) IndexQueueURL() string   { return s.indexQueueURL }
func (s *SQSService) ScrapeQueueURL() string  { return s.scrapeQueueURL }
func (s *SQSService) MailQueueURL() string    { return s.mailQueueURL }
func (s *SQSService) CleanupQueueURL() string { return s.cleanupQueueURL }

func (s *SQSService) SendIndexListing(ctx context.Context, tenantID, listingID string) error {
	msg := Message{
		Type:      MessageTypeIndexListing,
		TenantID:  tenantID,
		ListingID: listingID,
		Timestamp: time.Now(),
	}

	return s.sendMessage(ctx, msg, s.indexQueueURL)
}

func (s *SQSService) SendDeleteListing(ctx context.Context, tenantID, listingID string) error {
	msg := Message{
		Type:      MessageTypeDeleteListing,
		TenantID:  tenantID,
		ListingID: listingID,
		Timestamp: time.Now(),
	}

	return s.sendMessage(ctx, msg, s.indexQueueURL)
}

func (s *SQSService) SendScrape(ctx context.Context, job *domain.ScrapeJob) error {
	msg := Message{
		Type:      MessageTypeScrape,
		TenantID:  job.TenantID,
		Scrape:    job,
		Timestamp: time.Now(),
	}

	return s.sendMessage(ctx, msg, s.scrapeQueueURL)
}

func (s *SQSService) SendMail(ctx context.Context, tenantID string, mail *domain.Mail) error {
	msg := Message{
		Type:      MessageTypeSendMail,
		TenantID:  tenantID,
		Mail:      mail,
		Timestamp: time.Now(),
	}

	return s.sendMessage(ctx, msg, s.mailQueueURL)
}

// SendPurgeSubscribers asks the cleanup worker to drop the tenant's
// subscribers that stayed unconfirmed since before the cutoff.
func (s *SQSService) SendPurgeSubscribers(ctx context.Context, tenantID string, before time.Time) error {
	msg := Message{
		Type:       MessageTypePurge,
		TenantID:   tenantID,
		BeforeDate: before,
		Timestamp:  time.Now(),
	}

	return s.sendMessage(ctx, msg, s.cleanupQueueURL)
}

func (s *SQSService) sendMessage(ctx context.Context, msg Message, queueURL string) error {
	msgBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	input := &sqs.SendMessageInput{
		MessageBody: aws.String(string(msgBody)),
		QueueUrl:    aws.String(queueURL),
	}

	_, err = s.client.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// ReceiveMessages long-polls a queue. Bodies that do not decode are returned
// with an empty type so the caller can log and drop them.
func (s *SQSService) ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]ReceivedMessage, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     waitTimeSeconds,
	}

	output, err := s.client.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	var messages []ReceivedMessage
	for _, msg := range output.Messages {
		var message Message
		if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &message); err != nil {
			message = Message{}
		}
		messages = append(messages, ReceivedMessage{
			Message:       message,
			ReceiptHandle: msg.ReceiptHandle,
		})
	}

	return messages, nil
}

func (s *SQSService) DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error {
	input := &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: receiptHandle,
	}

	_, err := s.client.DeleteMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

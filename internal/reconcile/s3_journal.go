package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Journal implements Journal by writing one JSON object per entry to an S3
// bucket.
type s3Journal struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Journal creates an S3-backed reconciliation journal.
func NewS3Journal(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Journal, error) {
	logger = logger.With().Str("component", "s3-reconcile-journal").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 reconcile journal initialised")

	return &s3Journal{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}, nil
}

// Record uploads the entry as <prefix><orderID>.json.
func (j *s3Journal) Record(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode reconcile entry: %w", err)
	}

	key := j.prefix + entry.OrderID.String() + ".json"

	_, err = j.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(j.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		j.logger.Error().
			Err(err).
			Str("bucket", j.bucket).
			Str("key", key).
			Msg("failed to put reconcile entry to S3")
		return fmt.Errorf("failed to put reconcile entry to S3 (bucket=%s, key=%s): %w", j.bucket, key, err)
	}

	j.logger.Info().
		Str("order_id", entry.OrderID.String()).
		Str("user_id", entry.UserID).
		Str("bucket", j.bucket).
		Str("key", key).
		Msg("commit failure journaled to S3 for manual reconciliation")

	return nil
}

// fallbackJournal tries S3 first, then falls back to the local file system.
// Losing a reconciliation entry is worse than writing it twice somewhere
// unusual, so the fallback only gives up when both sinks fail.
type fallbackJournal struct {
	s3Journal   Journal
	fileJournal Journal
	logger      zerolog.Logger
}

// NewFallbackJournal creates a journal that tries S3 first and falls back to
// the file journal. If s3Journal is nil, only the file journal is used.
func NewFallbackJournal(s3Journal, fileJournal Journal, logger zerolog.Logger) Journal {
	return &fallbackJournal{
		s3Journal:   s3Journal,
		fileJournal: fileJournal,
		logger:      logger.With().Str("component", "fallback-reconcile-journal").Logger(),
	}
}

// Record attempts S3, then the local file system.
func (j *fallbackJournal) Record(ctx context.Context, entry Entry) error {
	if j.s3Journal != nil {
		if err := j.s3Journal.Record(ctx, entry); err == nil {
			return nil
		} else {
			j.logger.Warn().
				Err(err).
				Str("order_id", entry.OrderID.String()).
				Msg("failed to journal to S3, falling back to local file system")
		}
	}

	return j.fileJournal.Record(ctx, entry)
}

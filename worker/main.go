package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/kmatveev/rss-indexer/internal/config"
	"github.com/kmatveev/rss-indexer/internal/elasticsearch"
	"github.com/kmatveev/rss-indexer/internal/logger"
	"github.com/kmatveev/rss-indexer/internal/models"
	"github.com/kmatveev/rss-indexer/internal/parser"
	"github.com/kmatveev/rss-indexer/internal/processing"
)

// rawFeed is one Kafka payload: an already-retrieved feed body plus the feed
// identity it was fetched under.
type rawFeed struct {
	FeedName string `json:"feedname"`
	River    string `json:"river"`
	Body     string `json:"body"`
}

type entryIndexer interface {
	IndexEntry(ctx context.Context, id string, doc models.Document) error
}

func main() {
	log := logger.New("worker")
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
	if err != nil {
		log.Error("init elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := esClient.EnsureIndex(ctx, cfg.DocType); err != nil {
		log.Error("ensure index", slog.Any("err", err))
		os.Exit(1)
	}

	feedParser := parser.New()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaTopic,
		GroupID:        cfg.KafkaConsumer,
		QueueCapacity:  cfg.BatchSize,
		MinBytes:       1e3,
		MaxBytes:       10e6,
		CommitInterval: 0, // Disable auto-commit; manual commit only
	})
	defer reader.Close()

	dlqWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaTopic + "_dlq",
		MaxAttempts: 3,
	})
	defer dlqWriter.Close()

	log.Info("worker started",
		slog.String("topic", cfg.KafkaTopic),
		slog.String("group", cfg.KafkaConsumer),
		slog.String("doc_type", cfg.DocType),
		slog.String("dlq_topic", cfg.KafkaTopic+"_dlq"),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("context canceled, stopping")
				return
			}
			log.Error("fetch message", slog.Any("err", err))
			continue
		}

		if err := processMessage(ctx, log, esClient, feedParser, cfg, msg); err != nil {
			log.Warn("process message failed, sending to DLQ",
				slog.Any("err", err),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
			)

			// Send to DLQ with error context, retry with backoff
			dlqMsg := kafka.Message{
				Value: msg.Value,
				Headers: append(msg.Headers,
					kafka.Header{Key: "original_partition", Value: []byte(fmt.Sprintf("%d", msg.Partition))},
					kafka.Header{Key: "original_offset", Value: []byte(fmt.Sprintf("%d", msg.Offset))},
					kafka.Header{Key: "error", Value: []byte(err.Error())},
					kafka.Header{Key: "timestamp", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
				),
			}

			// Retry DLQ write with exponential backoff
			dlqSuccess := false
			for attempt := 0; attempt < 5; attempt++ {
				if dlqErr := dlqWriter.WriteMessages(ctx, dlqMsg); dlqErr == nil {
					dlqSuccess = true
					log.Info("message sent to DLQ",
						slog.Int("partition", msg.Partition),
						slog.Int64("offset", msg.Offset),
						slog.Int("attempt", attempt+1),
					)
					break
				} else {
					backoff := time.Duration(1<<uint(attempt)) * time.Second
					log.Warn("DLQ write failed, retrying",
						slog.Any("err", dlqErr),
						slog.Int("attempt", attempt+1),
						slog.Duration("backoff", backoff),
					)
					select {
					case <-time.After(backoff):
						// Continue to next attempt
					case <-ctx.Done():
						log.Info("context canceled during DLQ retry")
						return
					}
				}
			}

			// Only commit if DLQ write succeeded; otherwise skip commit and reprocess on restart
			if dlqSuccess {
				if err := reader.CommitMessages(ctx, msg); err != nil {
					log.Error("commit failed message to dlq", slog.Any("err", err))
				}
			} else {
				log.Error("DLQ write exhausted retries, message may be lost if later messages commit",
					slog.Int("partition", msg.Partition),
					slog.Int64("offset", msg.Offset),
				)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message", slog.Any("err", err))
		}
	}
}

// processMessage parses one raw feed payload and indexes every entry in it.
// A failure on any entry fails the whole message so the payload lands in the
// DLQ intact.
func processMessage(ctx context.Context, log *slog.Logger, esClient entryIndexer, feedParser *parser.Parser, cfg *config.Worker, msg kafka.Message) error {
	var payload rawFeed
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return err
	}

	feedName := strings.TrimSpace(payload.FeedName)
	if feedName == "" {
		return errors.New("missing feedname")
	}
	if strings.TrimSpace(payload.Body) == "" {
		return errors.New("empty feed body")
	}

	river := strings.TrimSpace(payload.River)
	if river == "" {
		river = cfg.RiverName
	}

	entries, err := feedParser.Parse([]byte(payload.Body))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		doc := processing.MapEntry(entry, feedName, river)

		id := processing.EntryID(feedName, entry.Link, entry.Title)
		if id == "" {
			id = uuid.NewString()
		}

		if err := esClient.IndexEntry(ctx, id, doc); err != nil {
			return err
		}

		log.Debug("indexed entry", slog.String("id", id), slog.String("feedname", feedName))
	}

	log.Info("indexed feed payload", slog.String("feedname", feedName), slog.Int("entries", len(entries)))
	return nil
}

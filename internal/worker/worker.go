package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aescanero/dago-node-chat/internal/chat"
	"github.com/aescanero/dago-node-chat/internal/config"
	"github.com/aescanero/dago-node-chat/internal/store"
	"github.com/aescanero/dago-node-chat/internal/transcript"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Worker represents the chat worker
type Worker struct {
	id            string
	config        *config.Config
	redisClient   *redis.Client
	chatService   *chat.Service
	transcripts   store.TranscriptStore
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	chatService *chat.Service,
	transcripts store.TranscriptStore,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		chatService:   chatService,
		transcripts:   transcripts,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting chat worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	// Start processing work
	go w.processWork()

	w.logger.Info("chat worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker gracefully
func (w *Worker) Stop() error {
	w.logger.Info("stopping chat worker", zap.String("worker_id", w.id))

	// Cancel context to stop work processing
	w.cancel()

	// Wait a bit for in-flight work to complete
	time.Sleep(2 * time.Second)

	w.logger.Info("chat worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP error means the group already exists, which is fine
		if err.Error() == "BUSYGROUP Consumer Group name already exists" {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			// Read from stream
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if err == redis.Nil {
					// No messages available, continue
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				time.Sleep(time.Second)
				continue
			}

			// Process each message
			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// ChatRequest represents a chat round work request
type ChatRequest struct {
	RequestID string            `json:"request_id,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Reset     bool              `json:"reset,omitempty"`
	Mode      chat.Mode         `json:"mode,omitempty"`
	Template  string            `json:"template,omitempty"`
	Rules     []chat.Rule       `json:"rules,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// handleMessage handles a single chat request message
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID

	// Parse the work request
	request, err := w.parseChatRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse chat request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.acknowledgeMessage(messageID)
		return
	}

	if request.RequestID == "" {
		request.RequestID = uuid.NewString()
	}

	w.logger.Info("processing chat request",
		zap.String("message_id", messageID),
		zap.String("request_id", request.RequestID),
		zap.String("session_id", request.SessionID),
	)

	// Process the chat round
	result, err := w.processChatRequest(request)
	if err != nil {
		w.logger.Error("failed to process chat request",
			zap.String("message_id", messageID),
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
		// Publish error event
		w.publishError(request, err)
	} else if err := w.publishReply(request, result); err != nil {
		w.logger.Error("failed to publish reply",
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
	}

	// Acknowledge the message
	w.acknowledgeMessage(messageID)
}

// parseChatRequest parses a chat request from a Redis message
func (w *Worker) parseChatRequest(values map[string]interface{}) (*ChatRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request ChatRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat request: %w", err)
	}

	return &request, nil
}

// processChatRequest runs one chat round, loading and saving the session
// transcript around it when the round is conversational.
func (w *Worker) processChatRequest(request *ChatRequest) (*chat.RoundResult, error) {
	// The model call is the only blocking step; the configured timeout bounds
	// the whole round.
	ctx, cancel := context.WithTimeout(w.ctx, w.config.LLMTimeout)
	defer cancel()

	mode := request.Mode
	if mode == "" {
		if request.SessionID != "" {
			mode = chat.ModeChat
		} else {
			mode = chat.ModeSingle
		}
	}

	var tr *transcript.Transcript
	if mode == chat.ModeChat {
		if request.SessionID == "" {
			return nil, fmt.Errorf("chat mode requires session_id")
		}

		if request.Reset {
			if err := w.transcripts.Delete(ctx, request.SessionID); err != nil {
				return nil, fmt.Errorf("failed to reset session: %w", err)
			}
		}

		loaded, err := w.transcripts.Load(ctx, request.SessionID)
		switch {
		case err == nil:
			tr = loaded
		case errors.Is(err, store.ErrNotFound):
			tr = transcript.New()
		default:
			return nil, fmt.Errorf("failed to load transcript: %w", err)
		}
	}

	result, err := w.chatService.Round(ctx, tr, &chat.RoundRequest{
		Mode:      mode,
		Template:  request.Template,
		Rules:     request.Rules,
		Variables: request.Variables,
		Message:   request.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("chat round failed: %w", err)
	}

	// Persist the grown transcript only after a successful round
	if tr != nil {
		if err := w.transcripts.Save(ctx, request.SessionID, tr); err != nil {
			return nil, fmt.Errorf("failed to save transcript: %w", err)
		}
	}

	return result, nil
}

// publishReply publishes the round result to the result stream
func (w *Worker) publishReply(request *ChatRequest, result *chat.RoundResult) error {
	reply := map[string]interface{}{
		"request_id": request.RequestID,
		"session_id": request.SessionID,
		"reply":      result.Reply,
		"mode":       result.Mode,
		"path_taken": result.PathTaken,
		"turns":      result.Turns,
		"timestamp":  time.Now().UTC(),
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	// Publish to result stream
	_, err = w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
		Stream: w.resultStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	w.logger.Info("published reply",
		zap.String("request_id", request.RequestID),
		zap.String("session_id", request.SessionID),
		zap.Int("turns", result.Turns),
	)

	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(request *ChatRequest, err error) {
	errorEvent := map[string]interface{}{
		"request_id": request.RequestID,
		"session_id": request.SessionID,
		"error":      err.Error(),
		"timestamp":  time.Now().UTC(),
	}

	data, marshalErr := json.Marshal(errorEvent)
	if marshalErr != nil {
		w.logger.Error("failed to marshal error event", zap.Error(marshalErr))
		return
	}

	// Publish error to a separate stream
	_, publishErr := w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
		Stream: w.resultStream + ".errors",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	err := w.redisClient.XAck(w.ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}

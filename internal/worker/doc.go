// Package worker implements the chat worker lifecycle and Redis Streams integration.
//
// The worker subscribes to a Redis Stream for chat round requests, loads the
// session transcript from the store, runs the round through the chat service,
// persists the grown transcript, and publishes the reply back to the result
// stream. Failures go to a separate <result>.errors stream.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	svc := chat.NewService(invoker, logger)
//	transcripts := store.NewRedisTranscriptStore(redisClient, cfg.TranscriptTTL, logger)
//
//	worker := worker.NewWorker(cfg, redisClient, svc, transcripts, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop()
//
// The worker handles:
//   - Redis Streams subscription and consumer group management
//   - Session transcript loading, reset and persistence
//   - Reply publishing
//   - Error handling and reporting
//   - Graceful shutdown
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8083, redisClient, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker

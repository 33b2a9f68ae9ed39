package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultInvalidationChannel = "ledger:system-accounts:invalidate"
	defaultCloseTimeout        = 5 * time.Second
)

// RedisCacheInvalidator fans mapping-cache invalidation out to every
// service instance over Redis Pub/Sub. The payload carries no detail; any
// message on the channel means "drop everything".
type RedisCacheInvalidator struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	channel    string
	logger     *zap.Logger
	cancelFn   context.CancelFunc
	doneCh     chan struct{}
	doneOnce   sync.Once
	mu         sync.Mutex
	isRunning  bool
}

// RedisCacheInvalidatorOption is a functional option for configuring the invalidator
type RedisCacheInvalidatorOption func(*RedisCacheInvalidator)

// WithInvalidatorChannel sets the Pub/Sub channel name
func WithInvalidatorChannel(channel string) RedisCacheInvalidatorOption {
	return func(i *RedisCacheInvalidator) {
		i.channel = channel
	}
}

// WithInvalidatorLogger sets the logger for the invalidator
func WithInvalidatorLogger(logger *zap.Logger) RedisCacheInvalidatorOption {
	return func(i *RedisCacheInvalidator) {
		i.logger = logger
	}
}

// NewRedisCacheInvalidator creates an invalidator with its own Redis client
func NewRedisCacheInvalidator(cfg config.RedisConfig, opts ...RedisCacheInvalidatorOption) (*RedisCacheInvalidator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	invalidator := &RedisCacheInvalidator{
		client:     client,
		ownsClient: true,
		channel:    defaultInvalidationChannel,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(invalidator)
	}
	return invalidator, nil
}

// NewRedisCacheInvalidatorWithClient creates an invalidator over an existing
// Redis client. The caller retains ownership of the client and closes it.
func NewRedisCacheInvalidatorWithClient(client *redis.Client, opts ...RedisCacheInvalidatorOption) *RedisCacheInvalidator {
	invalidator := &RedisCacheInvalidator{
		client:     client,
		ownsClient: false,
		channel:    defaultInvalidationChannel,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(invalidator)
	}
	return invalidator
}

// PublishInvalidateAll notifies every subscriber to drop its cache
func (i *RedisCacheInvalidator) PublishInvalidateAll(ctx context.Context) error {
	if err := i.client.Publish(ctx, i.channel, "invalidate").Err(); err != nil {
		i.logger.Error("Failed to publish cache invalidation",
			zap.String("channel", i.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish invalidation: %w", err)
	}
	i.logger.Debug("Published cache invalidation", zap.String("channel", i.channel))
	return nil
}

// Subscribe listens for invalidation signals, invoking the callback for
// each one. Blocks until the context is done; call it in a goroutine.
func (i *RedisCacheInvalidator) Subscribe(ctx context.Context, callback func()) error {
	i.mu.Lock()
	if i.isRunning {
		i.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	i.isRunning = true
	i.mu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	i.mu.Lock()
	i.cancelFn = cancel
	i.mu.Unlock()

	pubsub := i.client.Subscribe(subCtx, i.channel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(subCtx); err != nil {
		i.mu.Lock()
		i.isRunning = false
		i.mu.Unlock()
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	i.logger.Info("Subscribed to cache invalidation channel",
		zap.String("channel", i.channel))

	ch := pubsub.Channel()

	for {
		select {
		case <-subCtx.Done():
			i.logger.Info("Cache invalidation subscription stopped")
			i.mu.Lock()
			i.isRunning = false
			i.mu.Unlock()
			i.markDone()
			return subCtx.Err()
		case _, ok := <-ch:
			if !ok {
				i.logger.Warn("Cache invalidation channel closed")
				i.mu.Lock()
				i.isRunning = false
				i.mu.Unlock()
				i.markDone()
				return nil
			}

			// Run the callback off the receive loop so a slow cache clear
			// never backs up the subscription.
			go func() {
				defer func() {
					if r := recover(); r != nil {
						i.logger.Error("Panic in cache invalidation callback",
							zap.Any("panic", r))
					}
				}()
				callback()
			}()
		}
	}
}

// markDone safely marks the invalidator as done
func (i *RedisCacheInvalidator) markDone() {
	i.doneOnce.Do(func() {
		close(i.doneCh)
	})
}

// Close releases any resources held by the invalidator
func (i *RedisCacheInvalidator) Close() error {
	i.mu.Lock()
	cancelFn := i.cancelFn
	i.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-i.doneCh:
		case <-time.After(defaultCloseTimeout):
			i.logger.Warn("Timeout waiting for subscription to stop")
		}
	}

	if i.ownsClient {
		return i.client.Close()
	}
	return nil
}

// Ensure RedisCacheInvalidator implements CacheInvalidator
var _ ledger.CacheInvalidator = (*RedisCacheInvalidator)(nil)

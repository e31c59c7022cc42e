package payment

import (
	"context"
	"sync"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Linker stores the provider id on the local product once mirroring succeeds.
type Linker interface {
	LinkStripeProduct(ctx context.Context, productID int, stripeProductID string) error
}

type MirrorConfig struct {
	Workers   int
	Attempts  int
	QueueSize int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func (c MirrorConfig) withDefaults() MirrorConfig {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Attempts < 1 {
		c.Attempts = 1
	}
	if c.QueueSize < 1 {
		c.QueueSize = 64
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 500 * time.Millisecond
	}
	if c.MaxDelay < c.BaseDelay {
		c.MaxDelay = 10 * time.Second
	}
	return c
}

// Mirror creates products at the payment provider after they are committed
// locally. Work is best effort: failures are logged and counted, never
// reported back to the request that created the product.
type Mirror struct {
	gw     Gateway
	linker Linker
	cfg    MirrorConfig
	Stats  *metrics.Mirror

	queue  chan Task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func NewMirror(gw Gateway, linker Linker, cfg MirrorConfig) *Mirror {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	return &Mirror{
		gw:     gw,
		linker: linker,
		cfg:    cfg,
		Stats:  &metrics.Mirror{},
		queue:  make(chan Task, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (m *Mirror) Start() {
	for i := 0; i < m.cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}
	logger.Named("payment_mirror").Info("started",
		zap.Int("workers", m.cfg.Workers),
		zap.Int("attempts", m.cfg.Attempts),
	)
}

// Enqueue schedules t without blocking. It reports false when the queue is
// full or the mirror is closed.
func (m *Mirror) Enqueue(t Task) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		m.Stats.Dropped.Inc()
		return false
	}

	select {
	case m.queue <- t:
		m.Stats.Enqueued.Inc()
		return true
	default:
		m.Stats.Dropped.Inc()
		logger.L().Warn("payment mirror queue full", zap.Int("product_id", t.ProductID))
		return false
	}
}

// Close stops intake and waits for queued tasks. When ctx expires first,
// pending retries are abandoned.
func (m *Mirror) Close(ctx context.Context) error {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.cancel()
		return nil
	case <-ctx.Done():
		m.cancel()
		<-done
		return ctx.Err()
	}
}

func (m *Mirror) worker() {
	defer m.wg.Done()
	for t := range m.queue {
		m.process(t)
	}
}

func (m *Mirror) process(t Task) {
	log := logger.Named("payment_mirror").With(zap.Int("product_id", t.ProductID))
	timer := metrics.StartTimer()

	var (
		stripeID string
		attempts int
	)
	create := func() error {
		attempts++
		id, err := m.gw.CreateProduct(m.ctx, t.Payload)
		if err != nil {
			return err
		}
		stripeID = id
		return nil
	}
	onRetry := func(err error, wait time.Duration) {
		m.Stats.Retries.Inc()
		log.Warn("mirror attempt failed",
			zap.Int("attempt", attempts),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(create, m.retryPolicy(), onRetry); err != nil {
		m.Stats.Failed.Inc()
		if m.ctx.Err() != nil {
			log.Warn("mirror abandoned on shutdown", zap.Int("attempts", attempts))
			return
		}
		log.Error("product mirroring gave up", zap.Int("attempts", attempts), zap.Error(err))
		return
	}

	if err := m.linker.LinkStripeProduct(m.ctx, t.ProductID, stripeID); err != nil {
		m.Stats.Failed.Inc()
		log.Error("failed to link provider product",
			zap.String("stripe_product_id", stripeID),
			zap.Error(err),
		)
		return
	}

	m.Stats.Succeeded.Inc()
	log.Info("product mirrored",
		zap.String("stripe_product_id", stripeID),
		zap.Int("attempts", attempts),
		zap.Duration("took", timer.Duration()),
	)
}

// retryPolicy doubles the wait from BaseDelay up to MaxDelay, allows
// Attempts calls in total and stops early once the mirror is closed.
func (m *Mirror) retryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.cfg.BaseDelay
	b.MaxInterval = m.cfg.MaxDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(m.cfg.Attempts-1)), m.ctx)
}

package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargorent/storefront/internal/api/metrics"
	"github.com/cargorent/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	refreshTimeout = 10 * time.Second
)

// Dispatcher runs company-status refreshes on a fixed set of workers using
// consistent hashing on the client id, so refreshes of one client never run
// concurrently with each other.
type Dispatcher struct {
	workers  []chan string
	resolver ports.WorkspaceResolver
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, resolver ports.WorkspaceResolver, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan string, numWorkers),
		resolver: resolver,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Schedule queues a refresh for clientID. It never blocks: when the shard is
// full the request is dropped, since a later visibility change asks again.
func (d *Dispatcher) Schedule(clientID string) {
	idx := d.shardIndex(clientID)
	depth := metrics.RefreshQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- clientID:
	default:
		depth.Dec()
		d.log.Warn().Str("client_id", clientID).Int("worker_id", idx).Msg("refresh queue full, dropping")
	}
}

// shardIndex maps a client id deterministically to a worker index.
func (d *Dispatcher) shardIndex(clientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	depth := metrics.RefreshQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case clientID, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.refresh(ctx, id, clientID)
		}
	}
}

func (d *Dispatcher) refresh(ctx context.Context, worker int, clientID string) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	ws, err := d.resolver.Resolve(ctx, clientID)
	if err == nil {
		err = ws.Session().RefreshCompanyStatus(ctx)
	}
	if err != nil {
		metrics.CompanyRefreshesTotal.WithLabelValues("error").Inc()
		d.log.Warn().Err(err).
			Str("client_id", clientID).
			Int("worker_id", worker).
			Msg("company status refresh failed")
		return
	}
	metrics.CompanyRefreshesTotal.WithLabelValues("ok").Inc()
}

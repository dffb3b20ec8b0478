package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-server/internal/api/metrics"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, email ports.Email) error
}

// Dispatcher delivers notification emails on a fixed set of workers. Emails
// are sharded by recipient so one mailbox is served by one worker. Delivery
// failures are logged and counted, never retried.
type Dispatcher struct {
	workers []chan ports.Email
	sender  Sender
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender Sender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Email, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Email, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel and exit
// when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Enqueue hands an email to the worker responsible for its recipient. When
// that worker's buffer is full the email is dropped and logged so the
// request path never blocks on SMTP.
func (d *Dispatcher) Enqueue(email ports.Email) {
	idx := d.shardIndex(email.To)
	select {
	case d.workers[idx] <- email:
		metrics.EmailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EmailsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("to", email.To).Str("subject", email.Subject).Msg("email queue full, dropping")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Email) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case email := <-ch:
					d.deliver(context.Background(), id, email)
				default:
					return
				}
			}
		case email := <-ch:
			metrics.EmailQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.deliver(ctx, id, email)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, email ports.Email) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(ctx, email)
	metrics.EmailDeliveryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EmailsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("to", email.To).
			Str("subject", email.Subject).
			Int("worker_id", id).
			Msg("email delivery failed")
		return
	}
	metrics.EmailsTotal.WithLabelValues("sent").Inc()
	d.log.Debug().Str("to", email.To).Int("worker_id", id).Msg("email sent")
}

package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelhub/hotel-api/internal/api/metrics"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes booking status events to a fixed set of workers, hashing
// on the booking id so the changes of one booking are recorded in order.
type Dispatcher struct {
	workers []chan ports.BookingEventInput
	service ports.EventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.BookingEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.BookingEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker owning its booking. It blocks only
// when that worker's buffer is full.
func (d *Dispatcher) Enqueue(event ports.BookingEventInput) {
	idx := d.shardIndex(event.BookingID)
	d.workers[idx] <- event
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

func (d *Dispatcher) shardIndex(bookingID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bookingID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.BookingEventInput) {
	label := strconv.Itoa(id)
	for {
		if ctx.Err() != nil {
			d.drain(id, ch)
			return
		}
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			if err := d.service.Process(ctx, event); err != nil {
				metrics.EventsErrorsTotal.WithLabelValues("process_failed").Inc()
				metrics.EventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				d.log.Error().Err(err).
					Str("booking_id", event.BookingID).
					Int("worker_id", id).
					Msg("event processing failed")
				continue
			}
			metrics.EventsProcessedTotal.WithLabelValues(event.To).Inc()
			metrics.EventProcessingDuration.WithLabelValues(event.To).Observe(time.Since(start).Seconds())
		}
	}
}

// drain empties a stopped worker's buffer and reports how many events were
// never recorded.
func (d *Dispatcher) drain(id int, ch <-chan ports.BookingEventInput) int {
	dropped := 0
loop:
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				break loop
			}
			dropped++
		default:
			break loop
		}
	}

	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
	if dropped > 0 {
		metrics.EventsErrorsTotal.WithLabelValues("dropped_on_shutdown").Add(float64(dropped))
		d.log.Warn().Int("worker_id", id).Int("dropped", dropped).Msg("audit events dropped on shutdown")
	}
	return dropped
}

package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/clarketm/json"
	"github.com/nats-io/nats.go"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// ErrSubjectRequired is returned when no subject is configured.
var ErrSubjectRequired = errors.New("NATS subject is required")

const (
	opRelayLead       = "RelayLead"
	drainPollInterval = 10 * time.Millisecond
)

// Submitter is the part of the site client the relay needs.
type Submitter interface {
	SubmitLead(ctx context.Context, lead siteapi.Lead) *siteapi.Envelope
}

// Config configures the NATS connection and subscription.
type Config struct {
	URL     string
	Subject string
	// Queue joins a queue group so several relays share the load.
	Queue string
	// Name identifies the connection on the server.
	Name string
}

// Stats counts handled messages.
type Stats struct {
	Received  int64
	Submitted int64
	Failed    int64
}

// Relay turns NATS messages carrying JSON leads into SubmitLead calls and
// answers request-reply messages with the resulting envelope.
type Relay struct {
	submitter Submitter
	logger    siteapi.Logger

	received  atomic.Int64
	submitted atomic.Int64
	failed    atomic.Int64
}

// New creates a relay.
func New(submitter Submitter, logger siteapi.Logger) *Relay {
	return &Relay{submitter: submitter, logger: logger}
}

// Connect dials the NATS server described by cfg.
func Connect(cfg Config, logger siteapi.Logger) (*nats.Conn, error) {
	if cfg.URL == "" {
		return nil, constants.ErrNATSURLRequired
	}

	name := cfg.Name
	if name == "" {
		name = constants.DefaultUserAgent + "-relay"
	}

	opts := []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DrainTimeout(constants.RelayDrainTimeout),
	}

	if logger != nil {
		opts = append(opts,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				fields := map[string]interface{}{}
				if err != nil {
					fields["error"] = err.Error()
				}

				logger.Warn("NATS disconnected", fields)
			}),
			nats.ReconnectHandler(func(conn *nats.Conn) {
				logger.Info("NATS reconnected", map[string]interface{}{"url": conn.ConnectedUrl()})
			}),
		)
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", cfg.URL, err)
	}

	return conn, nil
}

// Handle submits the lead in data and returns the envelope JSON.
func (r *Relay) Handle(ctx context.Context, data []byte) []byte {
	r.received.Add(1)

	env := r.submit(ctx, data)
	if env.OK() {
		r.submitted.Add(1)
	} else {
		r.failed.Add(1)
		r.log("Lead relay failed", map[string]interface{}{"error": env.ErrorMessage()})
	}

	payload, err := env.MarshalJSON()
	if err != nil {
		return []byte(`{"success":false,"error":"encoding response failed"}`)
	}

	return payload
}

func (r *Relay) submit(ctx context.Context, data []byte) *siteapi.Envelope {
	var lead siteapi.Lead

	err := json.Unmarshal(data, &lead)
	if err != nil {
		return siteapi.Failure(&siteapi.OperationError{
			Op:   opRelayLead,
			Kind: siteapi.ErrorKindParse,
			Err:  fmt.Errorf("decoding lead payload: %w", err),
		})
	}

	return r.submitter.SubmitLead(ctx, lead)
}

// MsgHandler returns a nats.MsgHandler bound to ctx. Messages without a
// reply subject are fire-and-forget.
func (r *Relay) MsgHandler(ctx context.Context) nats.MsgHandler {
	return func(msg *nats.Msg) {
		response := r.Handle(ctx, msg.Data)

		if msg.Reply == "" {
			return
		}

		err := msg.Respond(response)
		if err != nil {
			r.log("Lead relay reply failed", map[string]interface{}{
				"subject": msg.Subject,
				"error":   err.Error(),
			})
		}
	}
}

// Subscribe registers the relay on conn.
func (r *Relay) Subscribe(ctx context.Context, conn *nats.Conn, cfg Config) (*nats.Subscription, error) {
	if cfg.Subject == "" {
		return nil, ErrSubjectRequired
	}

	var (
		sub *nats.Subscription
		err error
	)

	if cfg.Queue != "" {
		sub, err = conn.QueueSubscribe(cfg.Subject, cfg.Queue, r.MsgHandler(ctx))
	} else {
		sub, err = conn.Subscribe(cfg.Subject, r.MsgHandler(ctx))
	}

	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", cfg.Subject, err)
	}

	return sub, nil
}

// Run subscribes and handles leads until ctx is done. On shutdown the
// subscription is drained and every lead already delivered is still submitted
// with a context that shutdown does not cancel. Run returns once conn is
// closed.
func (r *Relay) Run(ctx context.Context, conn *nats.Conn, cfg Config) error {
	if cfg.Subject == "" {
		return ErrSubjectRequired
	}

	closed := make(chan struct{})

	var once sync.Once

	conn.SetClosedHandler(func(*nats.Conn) {
		once.Do(func() { close(closed) })
	})

	msgs := make(chan *nats.Msg, constants.RelayPendingMessages)

	var (
		sub *nats.Subscription
		err error
	)

	if cfg.Queue != "" {
		sub, err = conn.ChanQueueSubscribe(cfg.Subject, cfg.Queue, msgs)
	} else {
		sub, err = conn.ChanSubscribe(cfg.Subject, msgs)
	}

	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", cfg.Subject, err)
	}

	if r.logger != nil {
		r.logger.Info("Lead relay listening", map[string]interface{}{
			"subject": cfg.Subject,
			"queue":   cfg.Queue,
		})
	}

	handle := r.MsgHandler(context.WithoutCancel(ctx))

	r.serve(ctx, msgs, handle)

	err = sub.Drain()
	if err != nil {
		return fmt.Errorf("draining subscription: %w", err)
	}

	r.finish(sub, msgs, handle)

	err = conn.Drain()
	if err != nil {
		return fmt.Errorf("draining connection: %w", err)
	}

	<-closed

	return nil
}

func (r *Relay) serve(ctx context.Context, msgs <-chan *nats.Msg, handle nats.MsgHandler) {
	for {
		select {
		case msg := <-msgs:
			handle(msg)
		case <-ctx.Done():
			return
		}
	}
}

// finish handles deliveries until the draining subscription is removed, then
// empties the buffer. Nothing reaches msgs after removal.
func (r *Relay) finish(sub *nats.Subscription, msgs <-chan *nats.Msg, handle nats.MsgHandler) {
	deadline := time.NewTimer(constants.RelayDrainTimeout)
	defer deadline.Stop()

	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for sub.IsValid() {
		select {
		case msg := <-msgs:
			handle(msg)
		case <-ticker.C:
		case <-deadline.C:
			r.log("Lead relay drain timed out", map[string]interface{}{"pending": len(msgs)})

			return
		}
	}

	for {
		select {
		case msg := <-msgs:
			handle(msg)
		default:
			return
		}
	}
}

// Stats returns a snapshot of the message counters.
func (r *Relay) Stats() Stats {
	return Stats{
		Received:  r.received.Load(),
		Submitted: r.submitted.Load(),
		Failed:    r.failed.Load(),
	}
}

func (r *Relay) log(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Error(msg, fields)
	}
}

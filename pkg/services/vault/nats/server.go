package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	vaultsvc "github.com/nspcc-dev/infovault/pkg/services/vault"
	"github.com/nspcc-dev/infovault/pkg/util"
	"go.uber.org/zap"
)

// Handler executes envelopes. Implemented by [vaultsvc.Dispatcher].
type Handler interface {
	Handle(context.Context, *vaultsvc.Envelope)
}

// Server is a NATS request/reply transport of the vault dispatcher.
// It receives JSON encoded envelopes from the subject, executes them
// in the worker pool and responds with the resulting envelope.
//
// For correct operation must be created via New function.
// new(Server) or Server{} construction leads to undefined
// behaviour and is not safe.
type Server struct {
	handler Handler

	ctx context.Context
	nc  *nats.Conn
	sub *nats.Subscription

	opts
}

type opts struct {
	log   *zap.Logger
	pool  util.WorkerPool
	nOpts []nats.Option
}

// Option is an option of Server constructor.
type Option func(*opts)

var errNotConnected = errors.New("not connected to the server")

// New creates new Server passing decoded envelopes to h.
func New(h Handler, oo ...Option) *Server {
	s := &Server{
		handler: h,
		ctx:     context.Background(),
		opts: opts{
			log:   zap.L(),
			nOpts: make([]nats.Option, 0, len(oo)+3),
		},
	}

	for _, o := range oo {
		o(&s.opts)
	}

	if s.pool == nil {
		s.pool = util.NewPseudoWorkerPool()
	}

	s.opts.nOpts = append(s.opts.nOpts,
		nats.NoCallbacksAfterClientClose(),
		nats.DisconnectErrHandler(func(conn *nats.Conn, err error) {
			s.log.Error("nats: connection was lost", zap.Error(err))
		}),
		nats.ReconnectHandler(func(conn *nats.Conn) {
			s.log.Warn("nats: reconnected to the server")
		}),
	)

	return s
}

// WithLogger returns option to specify Server's logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *opts) {
		o.log = l
	}
}

// WithWorkerPool returns option to specify pool envelopes are executed in.
// By default envelopes are executed in the subscription routine.
func WithWorkerPool(p util.WorkerPool) Option {
	return func(o *opts) {
		o.pool = p
	}
}

// WithTimeout returns option to specify connection timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *opts) {
		o.nOpts = append(o.nOpts, nats.Timeout(d))
	}
}

// WithConnectionName returns option to specify connection name visible
// to the server.
func WithConnectionName(name string) Option {
	return func(o *opts) {
		o.nOpts = append(o.nOpts, nats.Name(name))
	}
}

// Connect tries to connect to a specified NATS endpoint.
//
// Connection is closed when passed context is done. The context is also
// passed to every handled envelope.
func (s *Server) Connect(ctx context.Context, endpoint string) error {
	nc, err := nats.Connect(endpoint, s.opts.nOpts...)
	if err != nil {
		return fmt.Errorf("could not connect to server: %w", err)
	}

	s.nc = nc
	s.ctx = ctx

	go func() {
		<-ctx.Done()
		s.opts.log.Info("nats: closing connection as the context is done")

		nc.Close()
	}()

	return nil
}

// Listen subscribes to the subject. Non-empty queue makes the subscription
// a queue one, so envelopes are balanced among the group members.
func (s *Server) Listen(subject, queue string) error {
	if s.nc == nil {
		return errNotConnected
	}

	sub, err := s.nc.QueueSubscribe(subject, queue, s.handleMsg)
	if err != nil {
		return fmt.Errorf("could not subscribe to %s: %w", subject, err)
	}

	s.sub = sub

	s.log.Info("nats: listening for envelopes",
		zap.String("subject", subject),
		zap.String("queue", queue))

	return nil
}

// Close drains the subscription, closes the connection and releases
// the worker pool.
func (s *Server) Close() {
	if s.sub != nil {
		if err := s.sub.Drain(); err != nil {
			s.log.Debug("nats: could not drain subscription", zap.Error(err))
		}
	}

	if s.nc != nil {
		s.nc.Close()
	}

	s.pool.Release()
}

func (s *Server) handleMsg(msg *nats.Msg) {
	s.submit(msg.Data, func(resp []byte) {
		if msg.Reply == "" {
			return
		}

		if err := msg.Respond(resp); err != nil {
			s.log.Warn("nats: could not respond", zap.Error(err))
		}
	})
}

// submit executes the envelope in the pool and passes encoded result to
// reply. If the pool rejects the envelope, it is replied with
// service_unavailable error immediately.
func (s *Server) submit(data []byte, reply func([]byte)) {
	err := s.pool.Submit(func() {
		reply(s.process(s.ctx, data))
	})
	if err != nil {
		s.log.Warn("nats: could not submit envelope to the pool", zap.Error(err))

		msg := err.Error()
		if errors.Is(err, util.ErrPoolOverload) {
			msg = "all workers are busy, try again later"
		}

		e, _ := decodeEnvelope(data)
		e.AddError(vaultsvc.ErrorMessage{
			Code:    vaultsvc.CodeServiceUnavailable,
			Message: msg,
		})

		reply(s.encode(e))
	}
}

// process decodes and executes the envelope, returns encoded result.
func (s *Server) process(ctx context.Context, data []byte) []byte {
	e, ok := decodeEnvelope(data)
	if !ok {
		s.log.Debug("nats: malformed envelope", zap.Stringer("id", e.ID))
	} else {
		s.handler.Handle(ctx, e)
	}

	return s.encode(e)
}

func (s *Server) encode(e *vaultsvc.Envelope) []byte {
	data, err := encodeEnvelope(e)
	if err != nil {
		s.log.Error("nats: could not encode envelope",
			zap.Stringer("id", e.ID),
			zap.Error(err))
	}
	return data
}

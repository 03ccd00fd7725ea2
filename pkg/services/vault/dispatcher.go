package vaultsvc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nspcc-dev/infovault/pkg/util/logicerr"
	"github.com/nspcc-dev/infovault/pkg/vault"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Storage is a record storage the dispatcher operates on. Implemented by
// [vault.Vault].
type Storage interface {
	Save(vault.SavePrm) error
	Load(vault.LoadPrm) ([]byte, error)
	Delete(vault.DeletePrm) error
}

// MetricRegister collects statistics of the handled envelopes.
type MetricRegister interface {
	IncEnvelopeCount(operation string, success bool)
	SetStatus(status uint32)
}

// DeadLetterHandler receives envelopes with unknown operations.
type DeadLetterHandler interface {
	DeadLetter(*Envelope)
}

// DeadLetterFunc is a functional DeadLetterHandler.
type DeadLetterFunc func(*Envelope)

// DeadLetter implements DeadLetterHandler.
func (f DeadLetterFunc) DeadLetter(e *Envelope) {
	f(e)
}

// Dispatcher executes envelope operations against the Storage.
type Dispatcher struct {
	*cfg

	storage Storage

	mtx    sync.Mutex
	status *atomic.Uint32
}

// Option is an option of Dispatcher constructor.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger

	deadLetter DeadLetterHandler

	listener StatusListener

	metrics MetricRegister
}

func defaultCfg() *cfg {
	return &cfg{
		log: zap.L(),
	}
}

// New creates stopped Dispatcher operating on s.
func New(s Storage, opts ...Option) *Dispatcher {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	if c.deadLetter == nil {
		l := c.log
		c.deadLetter = DeadLetterFunc(func(e *Envelope) {
			l.Warn("unknown envelope operation, dropping",
				zap.Stringer("id", e.ID),
				zap.String("operation", string(e.Operation)))
		})
	}

	return &Dispatcher{
		cfg:     c,
		storage: s,
		status:  atomic.NewUint32(uint32(StatusStopped)),
	}
}

// WithLogger returns option to specify Dispatcher's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithDeadLetter returns option to specify handler of envelopes with
// unknown operations. By default such envelopes are logged and dropped.
func WithDeadLetter(h DeadLetterHandler) Option {
	return func(c *cfg) {
		c.deadLetter = h
	}
}

// WithStatusListener returns option to specify listener of status transitions.
func WithStatusListener(l StatusListener) Option {
	return func(c *cfg) {
		c.listener = l
	}
}

// WithMetrics returns option to specify metrics collector.
func WithMetrics(m MetricRegister) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}

// Handle executes the envelope operation. Results and failures are written
// to the envelope, Handle itself never fails.
func (d *Dispatcher) Handle(ctx context.Context, e *Envelope) {
	if e == nil {
		return
	}

	errNum := len(e.Errors)
	known := true

	defer func() {
		if r := recover(); r != nil {
			d.log.Error("panic while handling envelope",
				zap.Stringer("id", e.ID),
				zap.String("operation", string(e.Operation)),
				zap.Any("panic", r))

			e.AddError(ErrorMessage{
				Code:    CodeInternal,
				Message: fmt.Sprint(r),
			})
		}

		if known && d.metrics != nil {
			d.metrics.IncEnvelopeCount(string(e.Operation), len(e.Errors) == errNum)
		}
	}()

	if st := d.Status(); st != StatusRunning {
		e.AddError(ErrorMessage{
			Code:    CodeServiceUnavailable,
			Message: "dispatcher is " + st.String(),
		})
		return
	}

	switch e.Operation {
	case OperationSave:
		d.save(ctx, e)
	case OperationLoad:
		d.load(ctx, e)
	case OperationDelete:
		d.delete(ctx, e)
	default:
		known = false
		d.deadLetter.DeadLetter(e)
	}
}

func (d *Dispatcher) save(ctx context.Context, e *Envelope) {
	reqs := e.Payload.Requests()
	if len(reqs) == 0 {
		e.AddError(fieldRequired("request"))
		return
	}

	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			e.AddError(ErrorMessage{Code: CodeCancelled, Message: err.Error()})
			return
		}

		err := d.saveRequest(req)
		if err != nil {
			d.fail(e, err, zap.Int("index", i))
			return
		}
	}
}

func (d *Dispatcher) saveRequest(req *Request) error {
	if err := checkRequest(req); err != nil {
		return err
	}

	return d.storage.Save(vault.SavePrm{
		Address:    address(req),
		Data:       req.Content.Data,
		AutoCreate: req.AutoCreate,
		Root:       root(req),
	})
}

func (d *Dispatcher) load(ctx context.Context, e *Envelope) {
	req, ok := singleRequest(e)
	if !ok {
		return
	}

	if err := ctx.Err(); err != nil {
		e.AddError(ErrorMessage{Code: CodeCancelled, Message: err.Error()})
		return
	}

	data, err := d.storage.Load(vault.LoadPrm{
		Address: address(req),
		Root:    root(req),
	})
	if err != nil {
		d.fail(e, err)
		return
	}

	req.Content = &Content{
		Name: req.Content.Name,
		Data: data,
	}
}

func (d *Dispatcher) delete(ctx context.Context, e *Envelope) {
	req, ok := singleRequest(e)
	if !ok {
		return
	}

	if err := ctx.Err(); err != nil {
		e.AddError(ErrorMessage{Code: CodeCancelled, Message: err.Error()})
		return
	}

	err := d.storage.Delete(vault.DeletePrm{
		Address: address(req),
		Root:    root(req),
	})
	if err != nil {
		d.fail(e, err)
	}
}

// fail writes err to the envelope. Storage failures are logged as warnings,
// caller mistakes only at debug level.
func (d *Dispatcher) fail(e *Envelope, err error, fields ...zap.Field) {
	lvl := zap.WarnLevel
	if logicerr.Is(err) || errors.As(err, new(ErrorMessage)) {
		lvl = zap.DebugLevel
	}

	d.log.Log(lvl, "request failed", append([]zap.Field{
		zap.Stringer("id", e.ID),
		zap.String("operation", string(e.Operation)),
		zap.Error(err),
	}, fields...)...)

	e.AddError(toErrorMessage(err))
}

// singleRequest returns checked single request of the envelope. Errors are
// written to the envelope.
func singleRequest(e *Envelope) (*Request, bool) {
	if e.Payload.IsBatch() {
		e.AddError(ErrorMessage{
			Code:    CodeUnsupportedPayload,
			Message: fmt.Sprintf("batch payload is not supported by %s", e.Operation),
		})
		return nil, false
	}

	req := e.Payload.Request()
	if err := checkRequest(req); err != nil {
		e.AddError(toErrorMessage(err))
		return nil, false
	}

	return req, true
}

func checkRequest(req *Request) error {
	switch {
	case req == nil:
		return fieldRequired("request")
	case req.Content == nil:
		return fieldRequired("content")
	case req.Content.Name == "":
		return fieldRequired("content.name")
	}

	return nil
}

func address(req *Request) vault.Address {
	return vault.Address{
		Label: req.Location,
		Key:   req.Content.Name,
	}
}

func root(req *Request) vault.Root {
	if req.StoreExternal {
		return vault.RootExternal
	}
	return vault.RootInternal
}

func toErrorMessage(err error) ErrorMessage {
	var msg ErrorMessage
	if errors.As(err, &msg) {
		return msg
	}

	msg.Message = err.Error()

	switch {
	case errors.Is(err, vault.ErrInvalidName):
		msg.Code = CodeInvalidName
	case errors.Is(err, vault.ErrNotFound):
		msg.Code = CodeNotFound
	case errors.Is(err, vault.ErrStorageUnavailable), errors.Is(err, vault.ErrNotReady):
		msg.Code = CodeStorageUnavailable
	case errors.Is(err, vault.ErrWrite):
		msg.Code = CodeWriteFailed
	case errors.Is(err, vault.ErrRead):
		msg.Code = CodeReadFailed
	case errors.Is(err, vault.ErrDelete):
		msg.Code = CodeDeleteFailed
	default:
		msg.Code = CodeInternal
	}

	return msg
}

package channel

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spachava753/contactsbridge/android/avatar"
	"github.com/spachava753/contactsbridge/android/contacts"
	"github.com/spachava753/contactsbridge/android/provider"
)

// Method names understood by the dispatcher.
const (
	MethodGetContacts             = "getContacts"
	MethodGetContactsForPhone     = "getContactsForPhone"
	MethodGetContactsForEmail     = "getContactsForEmail"
	MethodGetAvatar               = "getAvatar"
	MethodAddContact              = "addContact"
	MethodUpdateContact           = "updateContact"
	MethodDeleteContact           = "deleteContact"
	MethodOpenExistingContact     = "openExistingContact"
	MethodOpenContactForm         = "openContactForm"
	MethodOpenDeviceContactPicker = "openDeviceContactPicker"
)

// Result codes of the form and picker methods.
const (
	// FormOperationCanceled means the user closed the form or picker.
	FormOperationCanceled = 1
	// FormCouldNotBeOpen means no form or picker could be shown.
	FormCouldNotBeOpen = 2
)

var (
	// ErrNotImplemented is returned for unknown method names.
	ErrNotImplemented = errors.New("channel: method not implemented")
	// ErrQueueFull is returned when the query executor cannot accept more work.
	ErrQueueFull = errors.New("channel: executor queue full")
	// ErrDuplicateHandler is returned when a method name is registered twice.
	ErrDuplicateHandler = errors.New("channel: handler already registered")
	// ErrCanceled is what a Picker returns when the user backs out.
	ErrCanceled = errors.New("channel: operation canceled")
)

// ErrorCode classifies failures reported to callers.
type ErrorCode string

const (
	// ErrorCodeInvalidArguments indicates arguments failed decoding or validation.
	ErrorCodeInvalidArguments ErrorCode = "invalid_arguments"
	// ErrorCodeQueryFailed indicates the store could not be read.
	ErrorCodeQueryFailed ErrorCode = "query_failed"
	// ErrorCodeAvatarFailed indicates a photo could not be read or encoded.
	ErrorCodeAvatarFailed ErrorCode = "avatar_failed"
	// ErrorCodeAddFailed indicates addContact failed.
	ErrorCodeAddFailed ErrorCode = "add_failed"
	// ErrorCodeUpdateFailed indicates updateContact failed.
	ErrorCodeUpdateFailed ErrorCode = "update_failed"
	// ErrorCodeDeleteFailed indicates deleteContact failed.
	ErrorCodeDeleteFailed ErrorCode = "delete_failed"
)

// Error is a failure reported back to the caller of a method.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	if e == nil {
		return "channel: <nil>"
	}
	if e.Message == "" {
		return fmt.Sprintf("channel: %s", e.Code)
	}
	return fmt.Sprintf("channel: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// MethodCall is one named invocation with loosely typed arguments.
type MethodCall struct {
	Method    string
	Arguments map[string]any
}

// HandlerFunc serves one method.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// Store is the contacts store the dispatcher reads and writes.
// *provider.Provider implements it.
type Store interface {
	Rows(ctx context.Context, sel provider.Selection) iter.Seq2[contacts.FieldRow, error]
	AddContact(ctx context.Context, c contacts.Contact) (string, error)
	UpdateContact(ctx context.Context, c contacts.Contact) error
	DeleteContact(ctx context.Context, identifier string) error
	Photo(ctx context.Context, identifier string) ([]byte, error)
}

// Picker shows the interactive contact UIs. Each method returns the
// identifier of the resulting contact, or ErrCanceled.
type Picker interface {
	OpenContactForm(ctx context.Context) (string, error)
	OpenExistingContact(ctx context.Context, identifier string) (string, error)
	PickContact(ctx context.Context) (string, error)
}

type options struct {
	picker          Picker
	log             *zap.SugaredLogger
	workers         int
	queueSize       int
	localizer       contacts.Localizer
	localizedLabels bool
}

// Option configures New.
type Option func(*options)

// WithPicker sets the interactive picker. Without one the form methods
// answer FormCouldNotBeOpen.
func WithPicker(p Picker) Option {
	return func(o *options) { o.picker = p }
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithWorkers bounds how many query tasks run at once.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithQueueSize bounds how many query tasks may wait for a worker.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.queueSize = n
		}
	}
}

// WithLocalizer sets the localizer used when localized labels are requested.
func WithLocalizer(l contacts.Localizer) Option {
	return func(o *options) { o.localizer = l }
}

// WithLocalizedLabels sets the label mode used when a call does not pass
// androidLocalizedLabels.
func WithLocalizedLabels(localized bool) Option {
	return func(o *options) { o.localizedLabels = localized }
}

// Dispatcher routes method calls to their handlers.
type Dispatcher struct {
	store           Store
	picker          Picker
	log             *zap.SugaredLogger
	localizer       contacts.Localizer
	localizedLabels bool
	avatars         avatar.Loader
	pool            *executor
	validate        *validator.Validate

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// New returns a dispatcher over store with every built-in method registered.
func New(store Store, opts ...Option) *Dispatcher {
	o := options{
		log:       zap.NewNop().Sugar(),
		workers:   10,
		queueSize: 1000,
	}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Dispatcher{
		store:           store,
		picker:          o.picker,
		log:             o.log,
		localizer:       o.localizer,
		localizedLabels: o.localizedLabels,
		pool:            newExecutor(o.workers, o.queueSize),
		validate:        validator.New(),
		handlers:        make(map[string]HandlerFunc),
	}
	d.avatars = avatar.Loader{
		Source:     store,
		IsNotFound: func(err error) bool { return errors.Is(err, provider.ErrNotFound) },
		Log:        o.log,
	}
	d.registerBuiltins()
	return d
}

// Register adds a handler for method.
func (d *Dispatcher) Register(method string, h HandlerFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.handlers[method]; ok {
		return errors.Wrapf(ErrDuplicateHandler, "method %q", method)
	}
	d.handlers[method] = h
	return nil
}

// Methods lists the registered method names in lexical order.
func (d *Dispatcher) Methods() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return slices.Sorted(maps.Keys(d.handlers))
}

// Invoke runs the handler registered for call.Method.
func (d *Dispatcher) Invoke(ctx context.Context, call MethodCall) (any, error) {
	d.mu.RLock()
	h, ok := d.handlers[call.Method]
	d.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrNotImplemented, "method %q", call.Method)
	}

	start := time.Now()
	result, err := h(ctx, call.Arguments)
	if err != nil {
		d.log.Warnw("method failed", "method", call.Method, "duration", time.Since(start), "error", err)
		return nil, err
	}
	d.log.Debugw("method done", "method", call.Method, "duration", time.Since(start))
	return result, nil
}

func (d *Dispatcher) registerBuiltins() {
	builtins := map[string]HandlerFunc{
		MethodGetContacts:             d.getContacts,
		MethodGetContactsForPhone:     d.getContactsForPhone,
		MethodGetContactsForEmail:     d.getContactsForEmail,
		MethodGetAvatar:               d.getAvatar,
		MethodAddContact:              d.addContact,
		MethodUpdateContact:           d.updateContact,
		MethodDeleteContact:           d.deleteContact,
		MethodOpenExistingContact:     d.openExistingContact,
		MethodOpenContactForm:         d.openContactForm,
		MethodOpenDeviceContactPicker: d.openDeviceContactPicker,
	}
	for method, h := range builtins {
		_ = d.Register(method, h)
	}
}

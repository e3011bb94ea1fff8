// Package ui is the retained-mode runtime: a Context owning the renderer,
// configuration, framebuffer, event manager and component tree, and a
// Ticker that mounts the tree and streams changed regions to the
// controller at a fixed frame rate.
package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"ssdui/event"
	"ssdui/framebuffer"
	"ssdui/logging"
	"ssdui/ssd1306"
)

var (
	ErrNoRenderer = errors.New("ui: context requires a renderer")
	ErrNoRoot     = errors.New("ui: context requires a root component")
	ErrStoreType  = errors.New("ui: initial store value has the wrong type")
)

// Renderer is the command/data transport. Both calls serialise internally
// and return the number of bytes sent; a short count is a transport
// failure.
type Renderer interface {
	Command(b []byte) int
	Data(b []byte) int
}

// Context owns everything a mounted tree needs. It must not be copied.
type Context[E comparable, S any] struct {
	_ [0]func()

	renderer Renderer
	config   *RuntimeConfig
	buf      *framebuffer.Buffer
	root     Component[E, S]
	events   *event.Manager[E, *Context[E, S]]
	store    *Store[S]

	mu      sync.Mutex
	group   *errgroup.Group
	gctx    context.Context
	pending []func(context.Context) error
	stopped bool
}

// Option configures New.
type Option func(*options)

type options struct {
	store    any
	capacity int
}

// WithStore sets the initial shared state. Its type must be the context's
// state type.
func WithStore[S any](initial S) Option {
	return func(o *options) { o.store = initial }
}

// WithQueueCapacity presizes the event queue.
func WithQueueCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// New builds a context for a panel described by cfg. A missing renderer or
// root is a configuration error and no context is created.
func New[E comparable, S any](cfg ssd1306.Config, r Renderer, root Component[E, S], opts ...Option) (*Context[E, S], error) {
	if r == nil {
		return nil, ErrNoRenderer
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var initial S
	if o.store != nil {
		v, ok := o.store.(S)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrStoreType, o.store)
		}
		initial = v
	}

	buf, err := framebuffer.New(cfg.Width, cfg.Pages)
	if err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}
	return &Context[E, S]{
		renderer: r,
		config:   newRuntimeConfig(cfg, r),
		buf:      buf,
		root:     root,
		events:   event.New[E, *Context[E, S]](event.WithCapacity(o.capacity)),
		store:    NewStore(initial),
	}, nil
}

func (c *Context[E, S]) Renderer() Renderer          { return c.renderer }
func (c *Context[E, S]) Config() *RuntimeConfig      { return c.config }
func (c *Context[E, S]) Buffer() *framebuffer.Buffer { return c.buf }
func (c *Context[E, S]) Root() Component[E, S]       { return c.root }
func (c *Context[E, S]) Store() *Store[S]            { return c.store }

// Events returns the context's event manager.
func (c *Context[E, S]) Events() *event.Manager[E, *Context[E, S]] { return c.events }

// Register adds fn to e's listeners.
func (c *Context[E, S]) Register(e E, fn event.Listener[*Context[E, S]]) {
	c.events.Register(e, fn)
}

func (c *Context[E, S]) Trigger(e E) bool { return c.events.Trigger(e) }

func (c *Context[E, S]) TriggerWith(e E, payload any) bool {
	return c.events.TriggerWith(e, payload)
}

// Go runs fn for as long as the ticker runs. Activities started during
// Mount are held until the ticker starts; the context passed to fn is
// cancelled on shutdown. A non-nil error other than cancellation stops the
// ticker; so does a panic, reported as a *PanicError.
func (c *Context[E, S]) Go(fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.stopped:
		logging.Logger().Warn("ui: background activity started after shutdown")
	case c.group == nil:
		c.pending = append(c.pending, fn)
	default:
		c.spawn(fn)
	}
}

// spawn must be called with c.mu held.
func (c *Context[E, S]) spawn(fn func(context.Context) error) {
	ctx := c.gctx
	c.group.Go(func() error {
		err := catch(func() error { return fn(ctx) })
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	})
}

func (c *Context[E, S]) start(g *errgroup.Group, ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.group, c.gctx = g, ctx
	for _, fn := range c.pending {
		c.spawn(fn)
	}
	c.pending = nil
}

func (c *Context[E, S]) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
}

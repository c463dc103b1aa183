package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/andreyxaxa/Image-To-3D/internal/infrastructure"
	"github.com/andreyxaxa/Image-To-3D/internal/repo"
	"github.com/andreyxaxa/Image-To-3D/pkg/logger"
	"github.com/andreyxaxa/Image-To-3D/pkg/types/errs"
)

// Controller owns the upload-convert-preview-download state of one session.
//
// All mutations happen under mu. The conversion call is the only blocking
// step and runs on its own goroutine; while it is in flight the state is
// Converting and further submissions are rejected.
type Controller struct {
	converter infrastructure.Converter
	assets    repo.AssetRepo
	logger    logger.Interface
	now       func() time.Time

	ctx  context.Context
	stop context.CancelFunc

	mu       sync.Mutex
	state    entity.State
	image    *entity.SelectedImage
	asset    *entity.Asset
	reason   string
	notices  []entity.Notice
	lastSeen time.Time
	closed   bool

	// attempt identifies the conversion whose result may still be applied;
	// bumping it discards whatever is in flight.
	attempt uint64
	cancel  context.CancelFunc
	pending int
	idle    chan struct{}
}

func New(converter infrastructure.Converter, assets repo.AssetRepo, l logger.Interface, opts ...Option) *Controller {
	ctx, stop := context.WithCancel(context.Background())
	s := newSettings(opts)

	return &Controller{
		converter: converter,
		assets:    assets,
		logger:    l,
		now:       s.now,
		ctx:       ctx,
		stop:      stop,
		state:     entity.Idle,
		lastSeen:  s.now(),
	}
}

// Select makes image the current selection. A held model is released.
func (c *Controller) Select(image entity.SelectedImage) (entity.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()

	if c.closed {
		return c.snapshot(), errs.ErrClosed
	}
	if c.state == entity.Converting {
		return c.snapshot(), errs.ErrConversionInProgress
	}

	c.releaseAsset()
	c.image = &image
	c.reason = ""
	c.state = entity.ImageSelected

	return c.snapshot(), nil
}

// Convert submits the current image. The returned snapshot is already
// Converting; the result is applied when the call resolves.
func (c *Controller) Convert() (entity.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()

	if c.closed {
		return c.snapshot(), errs.ErrClosed
	}
	if c.state == entity.Converting {
		return c.snapshot(), errs.ErrConversionInProgress
	}
	if c.image == nil {
		c.notices = append(c.notices, entity.MissingImageNotice())

		return c.snapshot(), errs.ErrMissingInput
	}

	c.releaseAsset()
	c.reason = ""
	c.state = entity.Converting

	c.attempt++
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancel = cancel

	if c.pending == 0 {
		c.idle = make(chan struct{})
	}
	c.pending++

	go c.run(ctx, cancel, c.attempt, *c.image)

	return c.snapshot(), nil
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, attempt uint64, image entity.SelectedImage) {
	defer cancel()

	res, err := c.converter.Convert(ctx, image)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.finish()

	if c.closed || attempt != c.attempt {
		c.logger.Debug("Controller - run - attempt %d superseded, result discarded", attempt)

		return
	}
	c.cancel = nil

	if err != nil {
		c.logger.Error(err, "Controller - run - c.converter.Convert")
		c.fail(errs.Reason(err))

		return
	}

	asset, err := c.assets.Put(c.ctx, res.Data, res.Filename, res.ContentType)
	if err != nil {
		c.logger.Error(fmt.Errorf("Controller - run - c.assets.Put: %w", err))
		c.fail(errs.GenericConversionMessage)

		return
	}

	c.asset = &asset
	c.state = entity.Ready
	c.notices = append(c.notices, entity.ConvertedNotice())
}

func (c *Controller) fail(reason string) {
	c.reason = reason
	c.state = entity.Failed
	c.notices = append(c.notices, entity.ConversionFailedNotice(reason))
}

// finish marks one conversion goroutine as done. Called with mu held.
func (c *Controller) finish() {
	c.pending--
	if c.pending == 0 {
		close(c.idle)
		c.idle = nil
	}
}

// Clear returns to Idle from any state, dropping the image and the model.
// A conversion in flight is canceled and its result ignored.
func (c *Controller) Clear() entity.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()
	c.reset()

	return c.snapshot()
}

// Close is the unmount path: like Clear, and the controller accepts no more work.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.reset()
	c.notices = nil
	c.closed = true
	c.stop()
}

func (c *Controller) reset() {
	c.abort()
	c.releaseAsset()
	c.image = nil
	c.reason = ""
	c.state = entity.Idle
}

func (c *Controller) abort() {
	if c.cancel == nil {
		return
	}

	c.attempt++
	c.cancel()
	c.cancel = nil
}

func (c *Controller) releaseAsset() {
	if c.asset == nil {
		return
	}

	err := c.assets.Release(c.ctx, c.asset.ID)
	if err != nil {
		c.logger.Warn("Controller - releaseAsset - id=%s: %v", c.asset.ID, err)
	}
	c.asset = nil
}

func (c *Controller) Snapshot() entity.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()

	return c.snapshot()
}

func (c *Controller) snapshot() entity.Snapshot {
	s := entity.Snapshot{
		State:  c.state,
		Reason: c.reason,
	}

	if c.image != nil {
		img := *c.image
		s.Image = &img
	}
	if c.asset != nil {
		a := *c.asset
		s.Asset = &a
	}

	return s
}

// Asset returns the model reference while Ready.
func (c *Controller) Asset() (entity.Asset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()

	if c.state != entity.Ready || c.asset == nil {
		return entity.Asset{}, errs.ErrNoAsset
	}

	return *c.asset, nil
}

func (c *Controller) Notify(n entity.Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.notices = append(c.notices, n)
}

// Notices drains the pending notices.
func (c *Controller) Notices() []entity.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.notices
	c.notices = nil

	return n
}

// Wait blocks until no conversion goroutine is running, discarded ones included.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	if idle == nil {
		return nil
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("Controller - Wait: %w", ctx.Err())
	}
}

// idleSince reports the last activity and whether a conversion is in flight,
// without counting as activity itself.
func (c *Controller) idleSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastSeen, c.state == entity.Converting
}

func (c *Controller) touch() {
	c.lastSeen = c.now()
}

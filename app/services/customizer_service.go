package services

import (
	"context"
	"log"
	"sync"

	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/utils/calc"
	"github.com/shopspring/decimal"
)

const checkoutPath = "/checkout"

// Customizer holds the design draft of one session and confirms it into that session's cart.
//
// Design decoding runs in the background. Each upload takes a new sequence number and only
// the completion carrying the latest number is applied, so a slow earlier decode can never
// overwrite a later one.
type Customizer struct {
	cart    *CartStore
	decoder DesignDecoder
	ids     IDGenerator

	mu        sync.Mutex
	asset     *models.DesignAsset
	color     models.ShirtColor
	size      string
	quantity  int
	unitPrice decimal.Decimal
	seq       uint64
	pending   bool
}

type CustomizerOption func(*Customizer)

func WithDecoder(d DesignDecoder) CustomizerOption {
	return func(c *Customizer) { c.decoder = d }
}

func WithIDGenerator(g IDGenerator) CustomizerOption {
	return func(c *Customizer) { c.ids = g }
}

func WithUnitPrice(p decimal.Decimal) CustomizerOption {
	return func(c *Customizer) { c.unitPrice = p }
}

func NewCustomizer(cart *CartStore, opts ...CustomizerOption) *Customizer {
	c := &Customizer{
		cart:      cart,
		decoder:   DataURIDecoder{},
		ids:       UUIDGenerator{},
		color:     models.ShirtColors[0],
		size:      models.DefaultSize,
		quantity:  1,
		unitPrice: models.CustomUnitPrice,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DecodeJob tracks one background decode started by UploadDesign.
type DecodeJob struct {
	seq     uint64
	done    chan struct{}
	applied bool
	err     error
}

func (j *DecodeJob) Done() <-chan struct{} {
	return j.done
}

// Applied reports whether the decoded asset replaced the draft's design. A job superseded by
// a later upload or by ClearDesign is never applied. It blocks until the decode completes.
func (j *DecodeJob) Applied() bool {
	<-j.done
	return j.applied
}

func (j *DecodeJob) Err() error {
	<-j.done
	return j.err
}

// Wait blocks until the decode completes or ctx ends.
func (j *DecodeJob) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UploadDesign validates f synchronously and starts decoding it. Validation failures leave the
// draft untouched and return ErrUnsupportedType or ErrTooLarge.
func (c *Customizer) UploadDesign(ctx context.Context, f models.DesignFile) (*DecodeJob, error) {
	if err := ValidateDesign(f); err != nil {
		log.Printf("Customizer.UploadDesign: rejected %q (%s, %d bytes): %v", f.Name, f.Type, f.Size, err)
		return nil, err
	}

	c.mu.Lock()
	c.seq++
	job := &DecodeJob{seq: c.seq, done: make(chan struct{})}
	c.pending = true
	c.mu.Unlock()

	// The decode outlives the request that started it.
	go c.decode(context.WithoutCancel(ctx), job, f)
	return job, nil
}

func (c *Customizer) decode(ctx context.Context, job *DecodeJob, f models.DesignFile) {
	asset, err := c.decoder.Decode(ctx, f)

	c.mu.Lock()
	if job.seq == c.seq && c.pending {
		c.pending = false
		if err == nil {
			c.asset = asset
			job.applied = true
		}
	}
	c.mu.Unlock()

	switch {
	case err != nil:
		log.Printf("Customizer.decode: failed to decode %q: %v", f.Name, err)
	case !job.applied:
		log.Printf("Customizer.decode: discarded superseded decode of %q", f.Name)
	}

	job.err = err
	close(job.done)
}

// ClearDesign drops the design asset. An in-flight decode is superseded as well.
func (c *Customizer) ClearDesign() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.asset = nil
	if c.pending {
		c.seq++
		c.pending = false
	}
}

func (c *Customizer) SetColor(name string) {
	color, ok := models.LookupShirtColor(name)
	if !ok {
		return
	}

	c.mu.Lock()
	c.color = color
	c.mu.Unlock()
}

func (c *Customizer) SetSize(size string) {
	if !models.ValidSize(size) {
		return
	}

	c.mu.Lock()
	c.size = size
	c.mu.Unlock()
}

func (c *Customizer) SetQuantity(n int) {
	c.mu.Lock()
	c.quantity = calc.ClampMin(n, 1)
	c.mu.Unlock()
}

func (c *Customizer) ComputeTotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	return calc.DisplayTotal(c.unitPrice, c.quantity)
}

func (c *Customizer) State() models.DraftState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stateLocked()
}

func (c *Customizer) stateLocked() models.DraftState {
	switch {
	case c.pending:
		return models.DraftLoading
	case c.asset != nil:
		return models.DraftReady
	default:
		return models.DraftEmpty
	}
}

func (c *Customizer) Draft() models.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()

	return models.Draft{
		State:       c.stateLocked(),
		DesignAsset: c.asset,
		Color:       c.color,
		Size:        c.size,
		Quantity:    c.quantity,
		UnitPrice:   c.unitPrice,
		Total:       calc.DisplayTotal(c.unitPrice, c.quantity),
	}
}

// ConfirmOrder copies the current draft into a new line item and adds it to the cart. The
// draft is left as is so several items can be confirmed from it. Every confirmation gets a
// fresh id, so custom items never merge with earlier ones. A decode still in flight is not
// waited for: the line carries the design present at confirmation, if any.
func (c *Customizer) ConfirmOrder(intent models.OrderIntent) (models.Confirmation, error) {
	if !intent.Valid() {
		return models.Confirmation{}, models.ErrInvalidIntent
	}

	c.mu.Lock()
	item := models.LineItem{
		ID:          models.CustomIDPrefix + c.ids.NewID(),
		ProductName: models.CustomProductName,
		Color:       c.color.Name,
		Size:        c.size,
		Quantity:    c.quantity,
		UnitPrice:   c.unitPrice,
	}
	if c.asset != nil {
		asset := *c.asset
		item.DesignAsset = &asset
	}
	state := c.stateLocked()
	c.mu.Unlock()

	c.cart.AddItem(item)

	confirmation := models.Confirmation{Item: item, DraftState: state}
	if intent == models.IntentBuyNow {
		confirmation.Checkout = true
		confirmation.Redirect = checkoutPath
	}
	return confirmation, nil
}

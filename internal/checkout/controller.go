// Package checkout drives the storefront checkout form: customer field
// validation, the province/district/ward address cascade, and order
// submission.
package checkout

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/address"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/cart"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/order"
)

var (
	// ErrValidation blocks submission; the per-field messages are in
	// Errors() after the attempt.
	ErrValidation = errors.New("form validation failed")

	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")
)

// Confirmation is the acknowledgment surfaced after a successful order.
type Confirmation struct {
	OrderID     int64   `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

// Loading reports which selectors have a fetch in flight.
type Loading struct {
	Provinces bool `json:"provinces"`
	Districts bool `json:"districts"`
	Wards     bool `json:"wards"`
	Submit    bool `json:"submit"`
}

// Controller owns the checkout form state for one storefront session.
// Cascade fetches run asynchronously; each carries a generation token so a
// completion that no longer matches the current selection is discarded.
// All exported methods are safe for interleaved event/callback use.
type Controller struct {
	mu        sync.Mutex
	cart      *cart.Store
	addresses address.Client
	orders    order.Client
	log       *zap.Logger

	name, email, phone, street string

	province, district, ward *domain.AddressOption

	provinceOptions []domain.AddressOption
	districtOptions []domain.AddressOption
	wardOptions     []domain.AddressOption

	loading Loading

	touched map[Field]bool
	errs    map[Field]string

	districtGen uint64
	wardGen     uint64
}

func NewController(cartStore *cart.Store, addresses address.Client, orders order.Client, log *zap.Logger) *Controller {
	return &Controller{
		cart:      cartStore,
		addresses: addresses,
		orders:    orders,
		log:       log,
		touched:   make(map[Field]bool),
		errs:      make(map[Field]string),
	}
}

// LoadProvinces populates the province selector. The returned channel
// closes when the options are in place; the client layer already degrades
// failures to a fallback list, so there is no error to surface.
func (c *Controller) LoadProvinces(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	c.loading.Provinces = true
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		options, err := c.addresses.Provinces(ctx)
		if err != nil {
			c.log.Warn("province load failed", zap.Error(err))
			options = nil
		}

		c.mu.Lock()
		c.provinceOptions = options
		c.loading.Provinces = false
		c.mu.Unlock()
	}()
	return done
}

// SetField updates a customer field. Validation runs immediately only once
// the field has been touched.
func (c *Controller) SetField(field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldName:
		c.name = value
	case FieldEmail:
		c.email = value
	case FieldPhone:
		c.phone = value
	default:
		return
	}

	if c.touched[field] {
		c.errs[field] = ValidateField(field, value)
	}
}

// SetStreet edits the free-text street line. It never resets the cascade;
// the coarse address slot revalidates once touched.
func (c *Controller) SetStreet(street string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.street = street
	c.revalidateAddressLocked()
}

// Blur marks a field touched and validates it, regardless of prior state.
func (c *Controller) Blur(field Field) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touched[field] = true
	if field == FieldAddress {
		c.errs[field] = validateAddress(c.province, c.district, c.ward, c.street)
		return
	}
	c.errs[field] = ValidateField(field, c.fieldValueLocked(field))
}

// SelectProvince sets the province, invalidates the district and ward
// selections and their option lists, then fetches district options for the
// new province. A nil option clears the level with no fetch. The returned
// channel closes when the fetch has been applied or discarded.
func (c *Controller) SelectProvince(ctx context.Context, opt *domain.AddressOption) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	c.province = opt
	c.district = nil
	c.ward = nil
	c.districtOptions = nil
	c.wardOptions = nil
	c.districtGen++
	c.wardGen++
	gen := c.districtGen
	c.loading.Wards = false
	c.revalidateAddressLocked()

	if opt == nil {
		c.loading.Districts = false
		c.mu.Unlock()
		close(done)
		return done
	}

	c.loading.Districts = true
	c.mu.Unlock()

	go func() {
		defer close(done)
		options, err := c.addresses.Districts(ctx, opt.Value)
		if err != nil {
			c.log.Warn("district load failed", zap.String("province_code", opt.Value), zap.Error(err))
			options = nil
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.districtGen {
			// A newer selection superseded this fetch.
			return
		}
		c.districtOptions = options
		c.loading.Districts = false
	}()
	return done
}

// SelectDistrict sets the district, invalidates the ward selection and its
// option list, then fetches ward options for the new district.
func (c *Controller) SelectDistrict(ctx context.Context, opt *domain.AddressOption) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	c.district = opt
	c.ward = nil
	c.wardOptions = nil
	c.wardGen++
	gen := c.wardGen
	c.revalidateAddressLocked()

	if opt == nil {
		c.loading.Wards = false
		c.mu.Unlock()
		close(done)
		return done
	}

	c.loading.Wards = true
	c.mu.Unlock()

	go func() {
		defer close(done)
		options, err := c.addresses.Wards(ctx, opt.Value)
		if err != nil {
			c.log.Warn("ward load failed", zap.String("district_code", opt.Value), zap.Error(err))
			options = nil
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.wardGen {
			return
		}
		c.wardOptions = options
		c.loading.Wards = false
	}()
	return done
}

// SelectWard sets the ward. No cascading effects.
func (c *Controller) SelectWard(opt *domain.AddressOption) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ward = opt
	c.revalidateAddressLocked()
}

// Submit runs full-form validation, assembles the order request from the
// current cart snapshot and form state, and hands it to the order API. On
// success the cart and the form are reset. On failure everything entered
// stays intact for retry.
func (c *Controller) Submit(ctx context.Context) (*Confirmation, error) {
	c.mu.Lock()

	if !c.validateAllLocked() {
		c.mu.Unlock()
		return nil, ErrValidation
	}

	lines := c.cart.Lines()
	if len(lines) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderRequestItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderRequestItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		})
	}

	req := domain.OrderRequest{
		Items: items,
		Customer: domain.CustomerInfo{
			Name:    c.name,
			Email:   c.email,
			Phone:   c.phone,
			Address: ComposeAddress(c.street, *c.ward, *c.district, *c.province),
		},
	}
	c.loading.Submit = true
	c.mu.Unlock()

	created, err := c.orders.Create(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading.Submit = false

	if err != nil {
		c.log.Error("order submission failed", zap.Error(err))
		return nil, err
	}

	c.cart.Clear(ctx)
	c.resetLocked()

	c.log.Info("order created",
		zap.Int64("order_id", created.ID),
		zap.Float64("total_amount", created.TotalAmount))
	return &Confirmation{
		OrderID:     created.ID,
		TotalAmount: created.TotalAmount,
	}, nil
}

// Reset returns the form to its initial empty state. Province options stay
// loaded; everything selection- or input-derived is dropped.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Errors returns a copy of the current per-field error messages.
func (c *Controller) Errors() map[Field]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[Field]string, len(c.errs))
	for f, msg := range c.errs {
		out[f] = msg
	}
	return out
}

// Touched reports whether the field has been blurred at least once.
func (c *Controller) Touched(field Field) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched[field]
}

// Submittable is the aggregate validity predicate, computed from current
// state rather than tracked alongside the per-field flags.
func (c *Controller) Submittable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ValidateField(FieldName, c.name) == "" &&
		ValidateField(FieldEmail, c.email) == "" &&
		ValidateField(FieldPhone, c.phone) == "" &&
		validateAddress(c.province, c.district, c.ward, c.street) == ""
}

// Selection returns the current cascade selection. Unselected levels are nil.
func (c *Controller) Selection() (province, district, ward *domain.AddressOption, street string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.province, c.district, c.ward, c.street
}

func (c *Controller) ProvinceOptions() []domain.AddressOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.AddressOption(nil), c.provinceOptions...)
}

func (c *Controller) DistrictOptions() []domain.AddressOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.AddressOption(nil), c.districtOptions...)
}

func (c *Controller) WardOptions() []domain.AddressOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.AddressOption(nil), c.wardOptions...)
}

// DistrictEnabled reports whether the district selector is interactable.
func (c *Controller) DistrictEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.province != nil
}

// WardEnabled reports whether the ward selector is interactable.
func (c *Controller) WardEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.district != nil
}

func (c *Controller) LoadingState() Loading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// validateAllLocked reruns every validator, marks everything touched so the
// violations surface, and reports overall validity.
func (c *Controller) validateAllLocked() bool {
	c.errs[FieldName] = ValidateField(FieldName, c.name)
	c.errs[FieldEmail] = ValidateField(FieldEmail, c.email)
	c.errs[FieldPhone] = ValidateField(FieldPhone, c.phone)
	c.errs[FieldAddress] = validateAddress(c.province, c.district, c.ward, c.street)

	for _, f := range []Field{FieldName, FieldEmail, FieldPhone, FieldAddress} {
		c.touched[f] = true
	}

	for _, msg := range c.errs {
		if msg != "" {
			return false
		}
	}
	return true
}

func (c *Controller) revalidateAddressLocked() {
	if c.touched[FieldAddress] {
		c.errs[FieldAddress] = validateAddress(c.province, c.district, c.ward, c.street)
	}
}

func (c *Controller) fieldValueLocked(field Field) string {
	switch field {
	case FieldName:
		return c.name
	case FieldEmail:
		return c.email
	case FieldPhone:
		return c.phone
	}
	return ""
}

func (c *Controller) resetLocked() {
	c.name, c.email, c.phone, c.street = "", "", "", ""
	c.province, c.district, c.ward = nil, nil, nil
	c.districtOptions, c.wardOptions = nil, nil
	c.districtGen++
	c.wardGen++
	c.touched = make(map[Field]bool)
	c.errs = make(map[Field]string)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/checkout"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

// CheckoutHandler exposes the checkout form over JSON. Cascade selections
// wait for their child-option fetch before responding, so the reply always
// reflects the selection that was just made.
type CheckoutHandler struct {
	controller *checkout.Controller
	timeout    time.Duration
}

func NewCheckoutHandler(controller *checkout.Controller, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		controller: controller,
		timeout:    timeout,
	}
}

type SetFieldRequestDTO struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type BlurRequestDTO struct {
	Field string `json:"field"`
}

type SelectOptionRequestDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FormStateDTO struct {
	Errors          map[checkout.Field]string `json:"errors"`
	Loading         checkout.Loading          `json:"loading"`
	Submittable     bool                      `json:"submittable"`
	DistrictEnabled bool                      `json:"district_enabled"`
	WardEnabled     bool                      `json:"ward_enabled"`
	ProvinceOptions []domain.AddressOption    `json:"province_options"`
	DistrictOptions []domain.AddressOption    `json:"district_options"`
	WardOptions     []domain.AddressOption    `json:"ward_options"`
}

// GET /api/v1/checkout
func (h *CheckoutHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.formState())
}

// GET /api/v1/checkout/provinces
func (h *CheckoutHandler) LoadProvinces(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	<-h.controller.LoadProvinces(ctx)
	respondJSON(w, http.StatusOK, h.controller.ProvinceOptions())
}

// POST /api/v1/checkout/fields
func (h *CheckoutHandler) SetField(w http.ResponseWriter, r *http.Request) {
	var req SetFieldRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if checkout.Field(req.Field) == checkout.FieldAddress {
		h.controller.SetStreet(req.Value)
	} else {
		h.controller.SetField(checkout.Field(req.Field), req.Value)
	}
	respondJSON(w, http.StatusOK, h.formState())
}

// POST /api/v1/checkout/blur
func (h *CheckoutHandler) Blur(w http.ResponseWriter, r *http.Request) {
	var req BlurRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.controller.Blur(checkout.Field(req.Field))
	respondJSON(w, http.StatusOK, h.formState())
}

// POST /api/v1/checkout/province
func (h *CheckoutHandler) SelectProvince(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	opt, ok := decodeOption(w, r)
	if !ok {
		return
	}

	<-h.controller.SelectProvince(ctx, opt)
	respondJSON(w, http.StatusOK, h.formState())
}

// POST /api/v1/checkout/district
func (h *CheckoutHandler) SelectDistrict(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if !h.controller.DistrictEnabled() {
		respondError(w, http.StatusConflict, "district_disabled", "select a province first")
		return
	}

	opt, ok := decodeOption(w, r)
	if !ok {
		return
	}

	<-h.controller.SelectDistrict(ctx, opt)
	respondJSON(w, http.StatusOK, h.formState())
}

// POST /api/v1/checkout/ward
func (h *CheckoutHandler) SelectWard(w http.ResponseWriter, r *http.Request) {
	if !h.controller.WardEnabled() {
		respondError(w, http.StatusConflict, "ward_disabled", "select a district first")
		return
	}

	opt, ok := decodeOption(w, r)
	if !ok {
		return
	}

	h.controller.SelectWard(opt)
	respondJSON(w, http.StatusOK, h.formState())
}

// POST /api/v1/checkout/submit
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	confirmation, err := h.controller.Submit(ctx)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrValidation):
			respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"code":   "validation_failed",
				"errors": h.controller.Errors(),
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		default:
			respondError(w, http.StatusBadGateway, "order_failed", "could not create order, please retry")
		}
		return
	}

	respondJSON(w, http.StatusCreated, confirmation)
}

func decodeOption(w http.ResponseWriter, r *http.Request) (*domain.AddressOption, bool) {
	var req SelectOptionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return nil, false
	}

	// An empty value clears the selection.
	if req.Value == "" {
		return nil, true
	}
	return &domain.AddressOption{Value: req.Value, Label: req.Label}, true
}

func (h *CheckoutHandler) formState() FormStateDTO {
	return FormStateDTO{
		Errors:          h.controller.Errors(),
		Loading:         h.controller.LoadingState(),
		Submittable:     h.controller.Submittable(),
		DistrictEnabled: h.controller.DistrictEnabled(),
		WardEnabled:     h.controller.WardEnabled(),
		ProvinceOptions: h.controller.ProvinceOptions(),
		DistrictOptions: h.controller.DistrictOptions(),
		WardOptions:     h.controller.WardOptions(),
	}
}

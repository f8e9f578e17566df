package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/obs"
	"github.com/noah-isme/backend-kasir/internal/promo"
	"github.com/noah-isme/backend-kasir/internal/receipt"
)

// Handler exposes the checkout and quote endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Printer  receipt.Printer
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		Svc:      svc,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Checkout finalizes a basket: discounts, loyalty redemption, and points
// earned.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "checkout", h.Svc.Checkout)
}

// Quote prices a basket without loyalty side effects.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "quote", h.Svc.Quote)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, in Input) (*receipt.Receipt, error)) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}

	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		countCheckout(op, "invalid")
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(in); err != nil {
			countCheckout(op, "invalid")
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid checkout payload", validationDetails(err))
			return
		}
	}

	rcpt, err := fn(r.Context(), in)
	if err != nil {
		h.writeError(w, op, err)
		return
	}

	countCheckout(op, "ok")
	if op == "checkout" && obs.CheckoutBasketValue != nil {
		obs.CheckoutBasketValue.Observe(rcpt.Total())
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": outputFrom(rcpt, h.Printer)})
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	var appErr *common.AppError
	switch {
	case errors.As(err, &appErr):
		countCheckout(op, "error")
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
	case errors.Is(err, catalog.ErrProductNotFound):
		countCheckout(op, "invalid")
		common.JSONError(w, http.StatusUnprocessableEntity, "UNKNOWN_PRODUCT", err.Error(), nil)
	case errors.Is(err, promo.ErrMissingCouponTerms), errors.Is(err, promo.ErrUnknownOfferType):
		countCheckout(op, "error")
		common.JSONError(w, http.StatusInternalServerError, "PROMO_CONFIG", "promotion configuration is invalid", nil)
	default:
		countCheckout(op, "error")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout failed", nil)
	}
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return details
}

func countCheckout(op, result string) {
	if obs.CheckoutTotal == nil {
		return
	}
	obs.CheckoutTotal.WithLabelValues(op, result).Inc()
}

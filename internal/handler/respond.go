package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/emart/internal/domain/cart"
	"github.com/xenking/emart/internal/domain/coupon"
	"github.com/xenking/emart/internal/domain/customer"
	"github.com/xenking/emart/internal/domain/delivery"
	"github.com/xenking/emart/internal/domain/order"
	"github.com/xenking/emart/internal/domain/product"
	"github.com/xenking/emart/internal/identity"
	"github.com/xenking/emart/internal/market"
)

// maxBodyBytes caps request bodies; every API request fits comfortably.
const maxBodyBytes = 1 << 20

// writeJSON writes the encoder's buffer with the given status.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes a {code, message} error body, mirroring the status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
		e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
	})
	writeJSON(w, status, &e)
}

// respondError maps a domain error to an HTTP status. Unmapped errors are
// logged and hidden behind a 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, ok := statusFor(err)
	if !ok {
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, delivery.ErrNotFound),
		errors.Is(err, coupon.ErrNotFound),
		errors.Is(err, cart.ErrNotInCart),
		errors.Is(err, market.ErrCartNotFound):
		return http.StatusNotFound, true

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, coupon.ErrExpired):
		return http.StatusUnprocessableEntity, true

	case errors.Is(err, market.ErrEmptyCart),
		errors.Is(err, customer.ErrInvalidCustomer),
		errors.Is(err, delivery.ErrEmptyStatus),
		errors.Is(err, product.ErrInvalidDiscount),
		errors.Is(err, coupon.ErrInvalidCoupon):
		return http.StatusBadRequest, true

	case errors.Is(err, market.ErrUsernameTaken),
		errors.Is(err, market.ErrEmailTaken),
		errors.Is(err, order.ErrAlreadyCancelled):
		return http.StatusConflict, true

	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, true
	}
	return 0, false
}

// decodeBody reads the request body and decodes it as a JSON object, calling
// field for each key. Unknown keys must be skipped by the callback.
func decodeBody(r *http.Request, field func(d *jx.Decoder, key string) error) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "read body")
	}

	d := jx.DecodeBytes(data)
	return d.Obj(field)
}

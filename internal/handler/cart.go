package handler

import (
	"net/http"

	"github.com/go-faster/jx"
)

func (h *Handler) reserveItem(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == "" {
		writeError(w, http.StatusUnauthorized, "customer not identified")
		return
	}

	var (
		productID string
		quantity  int
	)
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "productId":
			productID, err = d.Str()
		case "quantity":
			quantity, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.market.ReserveItem(cid, productID, quantity); err != nil {
		respondError(w, r, err)
		return
	}
	h.viewCart(w, r)
}

func (h *Handler) releaseItem(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == "" {
		writeError(w, http.StatusUnauthorized, "customer not identified")
		return
	}

	if err := h.market.ReleaseItem(cid, r.PathValue("productID")); err != nil {
		respondError(w, r, err)
		return
	}
	h.viewCart(w, r)
}

func (h *Handler) viewCart(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == "" {
		writeError(w, http.StatusUnauthorized, "customer not identified")
		return
	}

	view, err := h.market.ViewCart(cid)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("cartId", func(e *jx.Encoder) { e.Str(view.CartID) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, it := range view.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("productId", func(e *jx.Encoder) { e.Str(it.ProductID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(it.Quantity) })
						e.Field("unitPrice", func(e *jx.Encoder) { e.Float64(it.UnitPrice.InexactFloat64()) })
						e.Field("lineTotal", func(e *jx.Encoder) { e.Float64(it.LineTotal.InexactFloat64()) })
					})
				}
			})
		})
		e.Field("total", func(e *jx.Encoder) { e.Float64(view.Total.InexactFloat64()) })
	})
	writeJSON(w, http.StatusOK, &e)
}

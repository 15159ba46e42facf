package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/xenking/emart/internal/domain/product"
)

// listProducts returns the catalog, optionally filtered by a name query (?q=)
// or a category (?category=).
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	var products []*product.Product
	switch {
	case r.URL.Query().Get("q") != "":
		products = h.market.SearchProducts(r.URL.Query().Get("q"))
	case r.URL.Query().Get("category") != "":
		products = h.market.ProductsInCategory(r.URL.Query().Get("category"))
	default:
		products = h.market.Products()
	}

	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, p := range products {
			encodeProduct(e, p)
		}
	})
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.market.Product(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeProduct(&e, p)
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) setProductDiscount(w http.ResponseWriter, r *http.Request) {
	var pct int64
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "discountPercent":
			pct, err = d.Int64()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.market.SetProductDiscount(r.PathValue("id"), pct); err != nil {
		respondError(w, r, err)
		return
	}

	p, err := h.market.Product(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeProduct(&e, p)
	writeJSON(w, http.StatusOK, &e)
}

func encodeProduct(e *jx.Encoder, p *product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("standardPrice", func(e *jx.Encoder) { e.Float64(p.StandardPrice.InexactFloat64()) })
		e.Field("wholesalePrice", func(e *jx.Encoder) { e.Float64(p.WholesalePrice.InexactFloat64()) })
		e.Field("stock", func(e *jx.Encoder) { e.Int(p.Stock()) })
		e.Field("discountPercent", func(e *jx.Encoder) { e.Int64(p.DiscountPercent()) })
	})
}

package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"
)

func (h *Handler) trackDelivery(w http.ResponseWriter, r *http.Request) {
	d, err := h.market.TrackDelivery(r.PathValue("orderID"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(d.ID) })
		e.Field("orderId", func(e *jx.Encoder) { e.Str(d.OrderID) })
		e.Field("status", func(e *jx.Encoder) { e.Str(d.Status()) })
		e.Field("estimatedTime", func(e *jx.Encoder) {
			e.Str(d.EstimatedTime(time.Now()).Format(time.RFC3339))
		})
	})
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) updateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	var status string
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "status":
			status, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.market.UpdateDeliveryStatus(r.PathValue("orderID"), status); err != nil {
		respondError(w, r, err)
		return
	}
	h.trackDelivery(w, r)
}

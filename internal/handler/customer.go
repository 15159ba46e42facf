package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/xenking/emart/internal/domain/customer"
	"github.com/xenking/emart/internal/domain/pricing"
)

func (h *Handler) registerCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		username        string
		password        string
		email           string
		name            string
		address         string
		phone           string
		tier            string
		businessLicense string
	}
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "username":
			req.username, err = d.Str()
		case "password":
			req.password, err = d.Str()
		case "email":
			req.email, err = d.Str()
		case "name":
			req.name, err = d.Str()
		case "address":
			req.address, err = d.Str()
		case "phone":
			req.phone, err = d.Str()
		case "tier":
			req.tier, err = d.Str()
		case "businessLicense":
			req.businessLicense, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	c, err := customer.New(customer.Params{
		Username:        req.username,
		Email:           req.email,
		Name:            req.name,
		Address:         req.address,
		Phone:           req.phone,
		Tier:            pricing.ParseTier(req.tier),
		BusinessLicense: req.businessLicense,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.market.RegisterCustomer(c); err != nil {
		respondError(w, r, err)
		return
	}
	h.identity.Add(c.Username, req.password, c.ID)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(c.ID) })
		e.Field("username", func(e *jx.Encoder) { e.Str(c.Username) })
		e.Field("tier", func(e *jx.Encoder) { e.Str(string(c.Tier)) })
	})
	writeJSON(w, http.StatusCreated, &e)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var username, password string
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "username":
			username, err = d.Str()
		case "password":
			password, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.identity.Verify(r.Context(), username, password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("customerId", func(e *jx.Encoder) { e.Str(id) })
	})
	writeJSON(w, http.StatusOK, &e)
}

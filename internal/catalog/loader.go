// Package catalog loads seed products and coupons into a market at startup.
// Seed files are JSON, optionally gzip-compressed (.gz suffix).
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/emart/internal/domain/coupon"
	"github.com/xenking/emart/internal/domain/product"
	"github.com/xenking/emart/internal/market"
)

// seedProduct is the on-disk product shape.
type seedProduct struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	StandardPrice   decimal.Decimal `json:"standardPrice"`
	WholesalePrice  decimal.Decimal `json:"wholesalePrice"`
	Stock           int             `json:"stock"`
	DiscountPercent int64           `json:"discountPercent"`
	Category        string          `json:"category"`
}

// seedCoupon is the on-disk coupon shape. ExpiresAt is a calendar date.
type seedCoupon struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	ExpiresAt       string          `json:"expiresAt"`
}

const expiryLayout = "2006-01-02"

// Load populates the market from the given seed files, concurrently. An empty
// couponsPath skips coupon loading.
func Load(ctx context.Context, m *market.Market, productsPath, couponsPath string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return errors.Wrap(loadProducts(ctx, m, productsPath), "load products")
	})
	if couponsPath != "" {
		g.Go(func() error {
			return errors.Wrap(loadCoupons(ctx, m, couponsPath), "load coupons")
		})
	}

	return g.Wait()
}

func loadProducts(ctx context.Context, m *market.Market, path string) error {
	var seeds []seedProduct
	if err := decodeSeed(ctx, path, &seeds); err != nil {
		return err
	}

	for _, s := range seeds {
		id := s.ID
		if id == "" {
			id = uuid.New().String()
		}

		p, err := product.New(id, s.Name, s.Description, s.StandardPrice, s.WholesalePrice, s.Stock)
		if err != nil {
			return errors.Wrapf(err, "product %q", s.Name)
		}
		if s.DiscountPercent != 0 {
			if err := p.SetDiscount(s.DiscountPercent); err != nil {
				return errors.Wrapf(err, "product %q", s.Name)
			}
		}

		category := s.Category
		if category == "" {
			category = "uncategorized"
		}
		if err := m.AddProduct(p, category); err != nil {
			return errors.Wrapf(err, "product %q", s.Name)
		}
	}
	return nil
}

func loadCoupons(ctx context.Context, m *market.Market, path string) error {
	var seeds []seedCoupon
	if err := decodeSeed(ctx, path, &seeds); err != nil {
		return err
	}

	for _, s := range seeds {
		expires, err := time.Parse(expiryLayout, s.ExpiresAt)
		if err != nil {
			return errors.Wrapf(err, "coupon %q: parse expiry", s.Code)
		}

		c, err := coupon.New(s.Code, s.DiscountPercent, expires)
		if err != nil {
			return errors.Wrapf(err, "coupon %q", s.Code)
		}
		m.AddCoupon(c)
	}
	return nil
}

// decodeSeed reads a seed file into out, transparently decompressing .gz files.
func decodeSeed(ctx context.Context, path string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	if err := json.NewDecoder(r).Decode(out); err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	return nil
}

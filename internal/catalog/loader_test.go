package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/emart/internal/market"
)

const productsJSON = `[
	{"id": "p1", "name": "Basmati Rice", "description": "5kg bag",
	 "standardPrice": "100", "wholesalePrice": "80", "stock": 10,
	 "discountPercent": 25, "category": "Grocery"},
	{"name": "Shampoo", "standardPrice": "12.50", "wholesalePrice": "9.99", "stock": 20}
]`

const couponsJSON = `[
	{"code": "SAVE10", "discountPercent": "10", "expiresAt": "2030-06-15"}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	products := writeFile(t, dir, "products.json", productsJSON)
	coupons := writeFile(t, dir, "coupons.json", couponsJSON)

	m := market.New()
	require.NoError(t, Load(context.Background(), m, products, coupons))

	require.Len(t, m.Products(), 2)

	p, err := m.Product("p1")
	require.NoError(t, err)
	assert.Equal(t, "Basmati Rice", p.Name)
	assert.Equal(t, 10, p.Stock())
	assert.Equal(t, int64(25), p.DiscountPercent())

	// Seeds without an ID get one generated; without a category they land
	// in the default bucket.
	fallback := m.ProductsInCategory("uncategorized")
	require.Len(t, fallback, 1)
	assert.Equal(t, "Shampoo", fallback[0].Name)
	assert.NotEmpty(t, fallback[0].ID)

	assert.Len(t, m.ProductsInCategory("grocery"), 1)
}

func TestLoad_Gzip(t *testing.T) {
	dir := t.TempDir()
	products := writeGzFile(t, dir, "products.json.gz", productsJSON)

	m := market.New()
	require.NoError(t, Load(context.Background(), m, products, ""))
	assert.Len(t, m.Products(), 2)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	m := market.New()
	err := Load(context.Background(), m, filepath.Join(dir, "missing.json"), "")
	require.Error(t, err)

	bad := writeFile(t, dir, "bad.json", `{"not": "an array"}`)
	require.Error(t, Load(context.Background(), m, bad, ""))

	products := writeFile(t, dir, "products.json", productsJSON)
	badCoupon := writeFile(t, dir, "coupons.json", `[{"code": "X", "discountPercent": "10", "expiresAt": "15/06/2030"}]`)
	require.Error(t, Load(context.Background(), m, products, badCoupon))
}

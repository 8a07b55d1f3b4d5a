package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-ops-backend/internal/model"
	"fleet-ops-backend/internal/store"
)

func TestProductCRUD(t *testing.T) {
	router, _, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/products",
		gin.H{"name": "Bottled Water", "unit_price": 150})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeObj[model.Product](t, w)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Active)

	w = doJSON(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decodeList[model.Product](t, w)
	require.Len(t, products, 1)
	assert.Equal(t, "Bottled Water", products[0].Name)

	w = doJSON(t, router, http.MethodPut, "/api/products/"+created.ID,
		gin.H{"name": "Sparkling Water", "unit_price": 200})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/products", nil)
	products = decodeList[model.Product](t, w)
	require.Len(t, products, 1)
	assert.Equal(t, "Sparkling Water", products[0].Name)
	assert.Equal(t, int64(200), products[0].UnitPrice)

	w = doJSON(t, router, http.MethodPut, "/api/products/missing", gin.H{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/products", nil)
	assert.Equal(t, "[]", w.Body.String())
}

func TestDriverValidation(t *testing.T) {
	router, _, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/drivers", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "name is required")

	w = doJSON(t, router, http.MethodPost, "/api/drivers",
		gin.H{"name": "Abe", "classification": "freelance"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown classification")

	w = doJSON(t, router, http.MethodPost, "/api/drivers",
		gin.H{"name": "Abe", "classification": "dedicated"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeObj[model.Driver](t, w)
	assert.Equal(t, model.ClassDedicated, created.Classification)
	assert.True(t, created.Active)
}

func TestSalesFlow(t *testing.T) {
	router, _, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/drivers", gin.H{"name": "Abe"})
	require.Equal(t, http.StatusCreated, w.Code)
	driver := decodeObj[model.Driver](t, w)

	w = doJSON(t, router, http.MethodPost, "/api/products",
		gin.H{"name": "Water", "unit_price": 150})
	require.Equal(t, http.StatusCreated, w.Code)
	product := decodeObj[model.Product](t, w)

	t.Run("total defaults to quantity times unit price", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/sales",
			gin.H{"driver_id": driver.ID, "product_id": product.ID, "quantity": 3})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		sale := decodeObj[model.Sale](t, w)
		assert.Equal(t, int64(450), sale.Total)
		assert.Equal(t, "Abe", sale.DriverName)
		assert.Equal(t, "Water", sale.ProductName)
	})

	t.Run("unknown driver is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/sales",
			gin.H{"driver_id": "ghost", "product_id": product.ID, "quantity": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("summary aggregates per driver", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/sales",
			gin.H{"driver_id": driver.ID, "product_id": product.ID, "quantity": 1, "total": 50})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/sales/summary", nil)
		require.Equal(t, http.StatusOK, w.Code)
		rows := decodeList[store.SalesSummaryRow](t, w)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(2), rows[0].SaleCount)
		assert.Equal(t, int64(500), rows[0].Revenue)
	})
}

func TestPaymentCRUD(t *testing.T) {
	router, _, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/drivers", gin.H{"name": "Abe"})
	require.Equal(t, http.StatusCreated, w.Code)
	driver := decodeObj[model.Driver](t, w)

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 13)

	w = doJSON(t, router, http.MethodPost, "/api/payments", gin.H{
		"driver_id": driver.ID, "period_start": start, "period_end": end, "amount": 125000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	payment := decodeObj[model.Payment](t, w)
	assert.Equal(t, "Abe", payment.DriverName)
	assert.False(t, payment.Paid)

	w = doJSON(t, router, http.MethodPut, "/api/payments/"+payment.ID, gin.H{
		"driver_id": driver.ID, "period_start": start, "period_end": end,
		"amount": 125000, "paid": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/payments", nil)
	payments := decodeList[model.Payment](t, w)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Paid)

	w = doJSON(t, router, http.MethodDelete, "/api/payments/"+payment.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	router, _, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	defaults := decodeObj[model.Setting](t, w)
	assert.Equal(t, 1, defaults.RotationInterval)
	assert.Equal(t, "USD", defaults.CurrencyCode)

	w = doJSON(t, router, http.MethodPut, "/api/settings", gin.H{
		"company_name": "Acme Delivery", "rotation_interval": 2,
		"excluded_weekdays": []int{6, 0},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/settings", nil)
	saved := decodeObj[model.Setting](t, w)
	assert.Equal(t, "Acme Delivery", saved.CompanyName)
	assert.Equal(t, 2, saved.RotationInterval)
	assert.Equal(t, "0,6", saved.ExcludedWeekdays)

	w = doJSON(t, router, http.MethodPut, "/api/settings", gin.H{"rotation_interval": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

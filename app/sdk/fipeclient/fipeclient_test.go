package fipeclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostock/velostock/app/sdk/fipeclient"
	"github.com/velostock/velostock/foundation/logger"
)

func testLogger() *logger.Logger {
	return logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
}

func Test_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/price", r.URL.Path)
		assert.Equal(t, "Fiat", r.URL.Query().Get("brand"))
		assert.Equal(t, "Argo", r.URL.Query().Get("model"))
		assert.Equal(t, "2022", r.URL.Query().Get("year"))
		assert.Equal(t, "Drive 1.3", r.URL.Query().Get("version"))

		json.NewEncoder(w).Encode(fipeclient.Price{
			Brand:          "Fiat",
			Model:          "Argo",
			Year:           2022,
			Version:        "Drive 1.3",
			Price:          72350,
			Currency:       "BRL",
			ReferenceMonth: "agosto de 2026",
			FipeCode:       "001524-3",
		})
	}))
	defer srv.Close()

	clt := fipeclient.New(testLogger(), srv.URL, time.Second, 3)

	price, err := clt.Query(context.Background(), "Fiat", "Argo", 2022, "Drive 1.3")
	require.NoError(t, err)

	assert.Equal(t, 72350.0, price.Price)
	assert.Equal(t, "BRL", price.Currency)
	assert.Equal(t, "001524-3", price.FipeCode)
}

func Test_Query_RetriesServerErrors(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(fipeclient.Price{Brand: "VW", Model: "Polo", Year: 2021, Price: 81900})
	}))
	defer srv.Close()

	clt := fipeclient.New(testLogger(), srv.URL, time.Second, 3)

	price, err := clt.Query(context.Background(), "VW", "Polo", 2021, "")
	require.NoError(t, err)

	assert.Equal(t, 81900.0, price.Price)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func Test_Query_NotFound(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	clt := fipeclient.New(testLogger(), srv.URL, time.Second, 3)

	_, err := clt.Query(context.Background(), "Fiat", "Uno", 1995, "")
	require.ErrorIs(t, err, fipeclient.ErrNotFound)

	// Client errors must not be retried.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func Test_Query_QuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	clt := fipeclient.New(testLogger(), srv.URL, time.Second, 3)

	_, err := clt.Query(context.Background(), "Fiat", "Argo", 2022, "")
	require.ErrorIs(t, err, fipeclient.ErrQuotaExceeded)
}

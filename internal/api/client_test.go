package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook-tracker/internal/api"
	"recipebook-tracker/internal/bmi"
	"recipebook-tracker/internal/devserver"
)

func newDevBackend(t *testing.T, csrf bool) (*httptest.Server, *devserver.Store) {
	t.Helper()
	store := devserver.NewStore(func() time.Time { return time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC) })
	srv := httptest.NewServer(devserver.New(store, nil, devserver.Options{CSRF: csrf}).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func TestClientRoundTripWithCSRFPage(t *testing.T) {
	srv, store := newDevBackend(t, true)
	c, err := api.New(srv.URL, api.WithCSRFPage("/ingredients/"))
	require.NoError(t, err)
	ctx := context.Background()

	rec, err := c.SubmitBMI(ctx, bmi.Measurement{HeightCm: 170, WeightKg: 70})
	require.NoError(t, err)
	assert.Equal(t, 24.22, rec.BMI)
	assert.Equal(t, "Normal", rec.Category)
	assert.Equal(t, "BMI recorded successfully", rec.Message)

	s, err := c.WeightSeries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-05-02"}, s.Labels)
	assert.Equal(t, []float64{70}, s.Weights)
	assert.Equal(t, []float64{24.22}, s.BMIs)
	assert.Equal(t, 1, s.Len())

	msg, err := c.AddIngredient(ctx, "Quinoa")
	require.NoError(t, err)
	assert.Equal(t, "Ingredient added successfully", msg)

	names, err := c.Ingredients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quinoa"}, names)

	msg, err = c.DeleteIngredient(ctx, "quinoa")
	require.NoError(t, err)
	assert.Equal(t, "Ingredient deleted successfully", msg)
	assert.Empty(t, store.Ingredients())
}

func TestClientWithoutTokenIsRejected(t *testing.T) {
	srv, _ := newDevBackend(t, true)
	c, err := api.New(srv.URL)
	require.NoError(t, err)

	_, err = c.AddIngredient(context.Background(), "kale")
	be, ok := api.AsBackendError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, http.StatusForbidden, be.Status)
	assert.Equal(t, "CSRF verification failed", be.Message)
}

func TestBackendErrorPayload(t *testing.T) {
	srv, _ := newDevBackend(t, false)
	c, err := api.New(srv.URL)
	require.NoError(t, err)

	_, err = c.AddIngredient(context.Background(), "oats")
	require.NoError(t, err)
	_, err = c.AddIngredient(context.Background(), "OATS")

	var be *api.Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusConflict, be.Status)
	assert.Equal(t, "Failed to add ingredient", be.Message)
	assert.Equal(t, "ingredient already exists", be.Details)
	assert.Contains(t, be.Error(), "ingredient already exists")
}

func TestSubmitBMIErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Height and weight must be positive values"}`))
	}))
	defer srv.Close()

	c, err := api.New(srv.URL)
	require.NoError(t, err)
	_, err = c.SubmitBMI(context.Background(), bmi.Measurement{HeightCm: 170, WeightKg: 70})

	be, ok := api.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, be.Status)
	assert.Equal(t, "backend error (400): Height and weight must be positive values", be.Error())
}

func TestSubmitBMISendsCentimetres(t *testing.T) {
	var height, weight, token string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		height = r.PostFormValue("height")
		weight = r.PostFormValue("weight")
		token = r.Header.Get(api.CSRFHeader)
		w.Write([]byte(`{"bmi":22.86,"category":"Normal"}`))
	}))
	defer srv.Close()

	c, err := api.New(srv.URL, api.WithTokenSource(api.StaticToken("abc123")))
	require.NoError(t, err)
	_, err = c.SubmitBMI(context.Background(), bmi.Measurement{HeightCm: 170, WeightKg: 66.05})
	require.NoError(t, err)

	assert.Equal(t, "170", height)
	assert.Equal(t, "66.05", weight)
	assert.Equal(t, "abc123", token)
}

func TestWeightSeriesRejectsLegacyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"labels":["Jan","Feb"],"values":[80,78]}`))
	}))
	defer srv.Close()

	c, err := api.New(srv.URL)
	require.NoError(t, err)
	_, err = c.WeightSeries(context.Background())
	assert.ErrorIs(t, err, api.ErrSeriesKeyDrift)
}

func TestWeightSeriesMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"ragged":   `{"labels":["Jan","Feb"],"weights":[80]}`,
		"not json": `<html>login</html>`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c, err := api.New(srv.URL)
			require.NoError(t, err)
			s, err := c.WeightSeries(context.Background())
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestWeightSeriesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to fetch weight data","details":"db down"}`))
	}))
	defer srv.Close()

	c, err := api.New(srv.URL)
	require.NoError(t, err)
	_, err = c.WeightSeries(context.Background())
	assert.ErrorIs(t, err, api.ErrUnexpectedStatus)
	be, ok := api.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, "db down", be.Details)
}

func TestIngredientsBadStatusWithoutPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := api.New(srv.URL)
	require.NoError(t, err)
	_, err = c.Ingredients(context.Background())
	assert.ErrorIs(t, err, api.ErrUnexpectedStatus)
	_, ok := api.AsBackendError(err)
	assert.False(t, ok)
}

func TestMissingCSRFFieldSendsEmptyToken(t *testing.T) {
	var sawHeader bool
	var token string
	mux := http.NewServeMux()
	mux.HandleFunc("/ingredients/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><form></form></body></html>`))
	})
	mux.HandleFunc(api.PathDeleteIngredient, func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header[http.CanonicalHeaderKey(api.CSRFHeader)]
		token = r.Header.Get(api.CSRFHeader)
		w.Write([]byte(`{"message":"Ingredient deleted successfully"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := api.New(srv.URL, api.WithCSRFPage("/ingredients/"))
	require.NoError(t, err)
	_, err = c.DeleteIngredient(context.Background(), "kale")
	require.NoError(t, err)
	assert.True(t, sawHeader)
	assert.Empty(t, token)
}

func TestCSRFPageUnavailableSendsEmptyToken(t *testing.T) {
	var token = "unset"
	mux := http.NewServeMux()
	mux.HandleFunc(api.PathAddIngredient, func(w http.ResponseWriter, r *http.Request) {
		token = r.Header.Get(api.CSRFHeader)
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := api.New(srv.URL, api.WithCSRFPage("/missing/"))
	require.NoError(t, err)
	_, err = c.AddIngredient(context.Background(), "kale")
	require.NoError(t, err)
	assert.Equal(t, "", token)
}

func TestExtractCSRFToken(t *testing.T) {
	page := `<html><body>
<form method="post"><input type="text" name="height">
<input type="hidden" name="csrfmiddlewaretoken" value="tok-42"></form></body></html>`
	tok, err := api.ExtractCSRFToken(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "tok-42", tok)

	tok, err = api.ExtractCSRFToken(strings.NewReader(`<p>no form</p>`))
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestFormTokenSourceCachesToken(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`<input name="csrfmiddlewaretoken" value="cached">`))
	}))
	defer srv.Close()

	ts := api.NewFormTokenSource(srv.Client(), srv.URL+"/bmi/")
	for i := 0; i < 3; i++ {
		tok, err := ts.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "cached", tok)
	}
	assert.Equal(t, int32(1), hits.Load())

	ts.Reset()
	_, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8000", "://bad"} {
		_, err := api.New(u)
		assert.Error(t, err, u)
	}
}

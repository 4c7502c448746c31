package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: "ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Message)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "bad input", env.Message)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		ProductID uint `json:"productId"`
		Quantity  int  `json:"quantity"`
	}

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":42,"quantity":2}`))
		w := httptest.NewRecorder()

		var b body
		require.NoError(t, DecodeJSON(w, req, &b))
		assert.Equal(t, uint(42), b.ProductID)
		assert.Equal(t, 2, b.Quantity)
	})

	t.Run("Malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":`))
		w := httptest.NewRecorder()

		var b body
		assert.Error(t, DecodeJSON(w, req, &b))
	})

	t.Run("Oversized body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"pad":"`+strings.Repeat("x", maxBodyBytes+1)+`"}`))
		w := httptest.NewRecorder()

		var b body
		assert.Error(t, DecodeJSON(w, req, &b))
	})
}

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("x")))
	assert.Equal(t, KindValidation, KindOf(Validation("x")))
	assert.Equal(t, KindUpstream, KindOf(Upstream("x", nil)))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOf_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("loading product: %w", NotFound("product not found"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsNotFound(err))
}

func TestSentinelMatchesThroughIs(t *testing.T) {
	sentinel := NotFound("product not found")
	wrapped := fmt.Errorf("store: %w", NotFound("product not found"))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, NotFound("order not found"), sentinel)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("x")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(Upstream("x", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "upload failed: connection refused",
		Upstream("upload failed", errors.New("connection refused")).Error())
	assert.Equal(t, "sku is required", Validation("sku is required").Error())
	assert.Equal(t, "product abc not found", NotFoundf("product %s not found", "abc").Error())
}

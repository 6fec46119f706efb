package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-adoption/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string   `json:"email" validate:"required,email"`
	Age    *int     `json:"age" validate:"required,min=0"`
	Images []string `json:"images" validate:"min=1,dive,url"`
}

func TestDecodeJSONValid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","age":3,"images":["https://img/1.jpg"]}`))

	var s sample
	require.NoError(t, DecodeJSON(req, &s))
	assert.Equal(t, 3, *s.Age)
}

func TestDecodeJSONReportsFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","age":-1,"images":[]}`))

	var s sample
	err := DecodeJSON(req, &s)
	require.Error(t, err)

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Equal(t, "must be a valid email", e.Fields["email"])
	assert.Equal(t, "must be at least 0", e.Fields["age"])
	assert.Equal(t, "must be at least 1", e.Fields["images"])
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","color":"red"}`))

	var s sample
	err := DecodeJSON(req, &s)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("email", "x@y.org", "email"))
	assert.True(t, apperr.Is(Var("email", "x", "email"), apperr.KindValidation))
}

func TestStructUsesLowerCamelWithoutJSONTag(t *testing.T) {
	type input struct {
		FullName string `validate:"required"`
	}
	err := Struct(input{})

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "is required", e.Fields["fullName"])
}

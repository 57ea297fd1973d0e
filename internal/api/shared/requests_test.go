package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name"  validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

type selfValidating struct {
	OK bool `json:"ok"`
}

func (s selfValidating) Validate() error {
	if !s.OK {
		return errors.New("not ok")
	}
	return nil
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("ignores unknown fields", func(t *testing.T) {
		t.Parallel()
		var req sampleRequest
		err := DecodeJSON(httptest.NewRecorder(), newRequest(`{"name":"a","count":2,"extra":true}`), &req)
		require.NoError(t, err)
		assert.Equal(t, sampleRequest{Name: "a", Count: 2}, req)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		var req sampleRequest
		err := DecodeJSON(httptest.NewRecorder(), newRequest(""), &req)
		assert.EqualError(t, err, "request body is empty")
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		var req sampleRequest
		err := DecodeJSON(httptest.NewRecorder(), newRequest(`{"name":"a"} {"name":"b"}`), &req)
		assert.Error(t, err)
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()
		var req sampleRequest
		body := `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
		err := DecodeJSON(httptest.NewRecorder(), newRequest(body), &req)
		assert.Error(t, err)
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	err := ValidateRequest(&sampleRequest{Count: -1})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "name", verrs[0].Field())
	assert.Equal(t, "count", verrs[1].Field())

	assert.NoError(t, ValidateRequest(&sampleRequest{Name: "ok"}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "not ok")
	assert.NoError(t, ValidateRequest(selfValidating{OK: true}))
}

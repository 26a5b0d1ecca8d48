package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitraworks/vitra/internal/domain"
)

func TestError_StatusAndBody(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            domain.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   domain.ENOTFOUND,
		},
		{
			name:           "validation",
			err:            domain.Errorf(domain.EINVALID, "", "count must be positive"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   domain.EINVALID,
		},
		{
			name:           "conflict",
			err:            domain.ErrOrderNotArchived,
			expectedStatus: http.StatusConflict,
			expectedCode:   domain.ECONFLICT,
		},
		{
			name:           "internal details hidden",
			err:            domain.Internal(assert.AnError, "order.get", "lookup failed"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   domain.EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			Error(w, req, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)

			if tt.expectedCode == domain.EINTERNAL {
				assert.NotContains(t, body.Error.Message, assert.AnError.Error())
			}
		})
	}
}

func TestDecodeValid(t *testing.T) {
	validate := validator.New()

	type payload struct {
		Email  string `json:"email" validate:"required,email"`
		Amount int64  `json:"amount" validate:"required,gt=0"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","amount":100}`))
		var p payload
		require.NoError(t, DecodeValid(req, validate, &p))
		assert.Equal(t, "a@b.co", p.Email)
		assert.Equal(t, int64(100), p.Amount)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		err := DecodeValid(req, validate, &p)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
		var p payload
		err := DecodeValid(req, validate, &p)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("validation failure names fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","amount":0}`))
		var p payload
		err := DecodeValid(req, validate, &p)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		assert.Contains(t, domain.ErrorMessage(err), "Email")
		assert.Contains(t, domain.ErrorMessage(err), "Amount")
	})
}

func TestItemRequest_ToInput(t *testing.T) {
	req := itemRequest{
		Title:          "kitchen panel",
		StructuralKind: "single",
		Dimensions:     domain.Dimensions{Width: 100, Height: 50, Count: 2},
		Operations:     map[string]int{"op-drill": 4},
		ItemDiscount:   domain.Discount{Type: domain.DiscountPercent, Value: 10},
	}

	input := req.toInput()
	assert.Equal(t, domain.KindSingle, input.StructuralKind)
	assert.Equal(t, 2, input.Dimensions.Count)
	assert.Equal(t, 4, input.Operations["op-drill"])
	assert.Equal(t, domain.DiscountPercent, input.ItemDiscount.Type)
}

package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
)

func TestItemTypeValid(t *testing.T) {
	assert.True(t, domain.ItemTypeConsole.Valid())
	assert.True(t, domain.ItemTypeGame.Valid())
	assert.True(t, domain.ItemTypeTShirt.Valid())

	assert.False(t, domain.ItemType("").Valid())
	assert.False(t, domain.ItemType("Poster").Valid())
	// Item types are exact strings, not case-insensitive.
	assert.False(t, domain.ItemType("game").Valid())
	assert.False(t, domain.ItemType("TShirt").Valid())
}

func TestRound2_HalfUp(t *testing.T) {
	cases := map[string]string{
		"9.596":  "9.6",
		"9.594":  "9.59",
		"9.595":  "9.6",
		"0.005":  "0.01",
		"23.99":  "23.99",
		"119.95": "119.95",
	}
	for in, want := range cases {
		got := domain.Round2(decimal.RequireFromString(in))
		assert.Equal(t, want, got.String(), "Round2(%s)", in)
	}
}

func TestValidationError_Unwraps(t *testing.T) {
	err := &domain.ValidationError{
		Reason: "ZZ: Invalid State code.",
		Err:    domain.ErrInvalidStateCode,
	}
	assert.Equal(t, "ZZ: Invalid State code.", err.Error())
	assert.ErrorIs(t, err, domain.ErrInvalidStateCode)
	assert.True(t, domain.IsValidation(err))
	assert.False(t, domain.IsValidation(domain.ErrInvoiceNotFound))
}

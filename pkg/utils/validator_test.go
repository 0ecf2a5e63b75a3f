package utils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "nope", Count: -1})

	assert.Equal(t, map[string]string{
		"name":  "This field is required",
		"email": "Invalid email format",
		"count": "Must be at least 0",
	}, errs)
}

func TestValidateStructValid(t *testing.T) {
	assert.Nil(t, ValidateStruct(&sampleRequest{Name: "ok"}))
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{
		"name":  "This field is required",
		"count": "Must be at least 0",
	})
	assert.Equal(t, "count: Must be at least 0; name: This field is required", msg)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 0, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-2", 1))
	assert.Equal(t, 1, ParseInt("x", 1))

	id, ok := ParseID("12")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	_, ok = ParseID("0")
	assert.False(t, ok)

	assert.Equal(t, 20, CalculateOffset(2, 10))
	assert.Equal(t, 0, CalculateOffset(-1, 10))
}

func TestCalculateOffsetSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, CalculateOffset(math.MaxInt64/5, 10))
	assert.Equal(t, math.MaxInt, CalculateOffset(math.MaxInt, 2))
	assert.Equal(t, math.MaxInt-1, CalculateOffset(math.MaxInt/2, 2))
	assert.Equal(t, 0, CalculateOffset(math.MaxInt, 0))
}

type priceRequest struct {
	Required *decimal.Decimal `json:"required" validate:"required,price"`
	Optional decimal.Decimal  `json:"optional" validate:"price"`
}

func TestValidateStructPrice(t *testing.T) {
	valid := []string{"0", "0.0038", "0.10000", "12.5", "99999999.9999"}
	for _, v := range valid {
		d := decimal.RequireFromString(v)
		assert.Nil(t, ValidateStruct(&priceRequest{Required: &d, Optional: d}), v)
	}

	invalid := []string{"-5", "0.00001", "100000000", "123456789012.5"}
	for _, v := range invalid {
		d := decimal.RequireFromString(v)
		errs := ValidateStruct(&priceRequest{Required: &d, Optional: d})
		assert.Len(t, errs, 2, v)
		assert.Equal(t, "Must be between 0 and 99999999.9999 with at most 4 decimal places", errs["required"], v)
	}

	assert.Equal(t, map[string]string{"required": "This field is required"}, ValidateStruct(&priceRequest{}))
}

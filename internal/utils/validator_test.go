package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleItem struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type sampleRequest struct {
	Name  string       `json:"name" validate:"required,min=2"`
	Email string       `json:"email" validate:"required,email"`
	Price *float64     `json:"price" validate:"required,gte=0"`
	Items []sampleItem `json:"items" validate:"required,min=1,dive"`
}

func TestGetValidationErrorsUsesJSONNames(t *testing.T) {
	negative := -1.0
	req := sampleRequest{
		Name:  "A",
		Email: "nope",
		Price: &negative,
		Items: []sampleItem{{ProductID: "x", Quantity: 0}},
	}

	errs := GetValidationErrors(ValidateStruct(&req))
	require.Len(t, errs, 5)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}

	assert.Equal(t, "name must be at least 2 characters", byField["name"].Message)
	assert.Equal(t, "Invalid email format", byField["email"].Message)
	assert.Equal(t, "gte", byField["price"].Tag)
	assert.Equal(t, "uuid", byField["items[0].productId"].Tag)
	assert.Equal(t, "items[0].quantity must be greater than 0", byField["items[0].quantity"].Message)
}

func TestGetValidationErrorsOnValidInput(t *testing.T) {
	price := 0.0
	req := sampleRequest{
		Name:  "Kopi",
		Email: "kopi@example.com",
		Price: &price,
		Items: []sampleItem{{ProductID: "0b9d3c1e-5f7a-4c2b-9a61-2f1e7d4c8b90", Quantity: 1}},
	}

	assert.NoError(t, ValidateStruct(&req))
	assert.Empty(t, GetValidationErrors(nil))
}

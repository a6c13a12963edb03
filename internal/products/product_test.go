package products

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDecodesCatalogPayload(t *testing.T) {
	raw := `{"id":1,"title":"Fjallraven Backpack","price":109.95,"description":"bag","category":"men's clothing","image":"https://img/1.png","rating":{"rate":3.9,"count":120}}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, 1, p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("109.95")))
	require.NotNil(t, p.Rating)
	assert.Equal(t, 120, p.Rating.Count)
}

func TestProductEncodesPriceAsNumber(t *testing.T) {
	p := Product{ID: 2, Price: decimal.NewFromInt(10)}
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"price":10}`, string(out))
}

func TestProductPredicates(t *testing.T) {
	var missing *Product
	assert.False(t, missing.HasID())
	assert.False(t, missing.HasPositivePrice())

	assert.False(t, (&Product{ID: 0}).HasID())
	assert.True(t, (&Product{ID: 3}).HasID())

	assert.False(t, (&Product{ID: 3}).HasPositivePrice(), "absent price is zero")
	assert.False(t, (&Product{ID: 3, Price: decimal.NewFromInt(-100)}).HasPositivePrice())
	assert.True(t, (&Product{ID: 3, Price: decimal.RequireFromString("0.01")}).HasPositivePrice())
}

func TestProductNonNumericPrice(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		price string
	}{
		{name: "quoted number", raw: `{"id":7,"price":"10"}`, price: "10"},
		{name: "quoted garbage", raw: `{"id":7,"price":"ten"}`, price: "0"},
		{name: "bool", raw: `{"id":7,"price":true}`, price: "0"},
		{name: "object", raw: `{"id":7,"price":{"amount":10}}`, price: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p Product
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &p))
			assert.True(t, p.HasID())
			assert.False(t, p.HasPositivePrice())
			assert.True(t, p.Price.Equal(decimal.RequireFromString(tc.price)))
		})
	}
}

func TestProductNumericPriceAfterReuse(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"price":"10"}`), &p))
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"price":10}`), &p))
	assert.True(t, p.HasPositivePrice())
}

func TestProductMissingOrNullPrice(t *testing.T) {
	for _, raw := range []string{`{"id":7}`, `{"id":7,"price":null}`} {
		var p Product
		require.NoError(t, json.Unmarshal([]byte(raw), &p))
		assert.Equal(t, Product{ID: 7}, p)
	}
}

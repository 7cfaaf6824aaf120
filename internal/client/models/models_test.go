package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_AcceptsMongoIDAndPopulatedCategory(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{
		"_id": "P1", "name": "Tee", "price": "19.90",
		"category": {"_id": "C1", "name": "Shirts"},
		"photos": ["a.jpg"]
	}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "P1", p.ID)
	assert.True(t, decimal.RequireFromString("19.9").Equal(p.Price))
	assert.Equal(t, Ref{ID: "C1", Name: "Shirts"}, p.Category)
}

func TestProduct_PlainIDWinsAndCategoryAsString(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"P2","_id":"ignored","price":5,"category":"C9"}`), &p))

	assert.Equal(t, "P2", p.ID)
	assert.Equal(t, "C9", p.Category.ID)
}

func TestCartProduct_BareID(t *testing.T) {
	var it CartItem
	require.NoError(t, json.Unmarshal([]byte(`{"product":"P5","quantity":2,"price":3}`), &it))

	assert.Equal(t, "P5", it.Product.ID)
	assert.True(t, decimal.NewFromInt(6).Equal(it.LineTotal()))
}

func TestCart_Totals(t *testing.T) {
	c := Cart{Items: []CartItem{
		{Product: CartProduct{ID: "a", Price: decimal.NewFromInt(10)}, Quantity: 2},
		{Product: CartProduct{ID: "b"}, Quantity: 1, Price: decimal.RequireFromString("2.5")},
	}}

	assert.Equal(t, 3, c.Count())
	assert.True(t, decimal.RequireFromString("22.5").Equal(c.Subtotal()))

	line, ok := c.Find("b")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	_, ok = c.Find("zzz")
	assert.False(t, ok)
}

func TestPagination(t *testing.T) {
	p := Pagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3}
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrev())

	p.Page = 3
	assert.False(t, p.HasNext())
}

func TestOrderItemsFromCart(t *testing.T) {
	c := Cart{Items: []CartItem{{Product: CartProduct{ID: "p"}, Quantity: 3, SelectedSize: "M"}}}

	items := OrderItemsFromCart(c)
	require.Len(t, items, 1)
	assert.Equal(t, OrderItemInput{ProductID: "p", Quantity: 3, SelectedSize: "M"}, items[0])
}

func TestUser_IsAdmin(t *testing.T) {
	var u *User
	assert.False(t, u.IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}

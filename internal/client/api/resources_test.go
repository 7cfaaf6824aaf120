package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProducts_Shapes(t *testing.T) {
	const item = `{"_id":"p1","name":"Tee","price":"19.90","category":{"_id":"c1","name":"Shirts"}}`
	tests := []struct {
		name string
		body string
	}{
		{"nested under data", `{"success":true,"data":{"products":[` + item + `],"pagination":{"page":2,"limit":10,"total":11,"totalPages":2}}}`},
		{"data array", `{"success":true,"data":[` + item + `]}`},
		{"top level", `{"success":true,"products":[` + item + `],"pagination":{"currentPage":2,"totalProducts":11}}`},
		{"unflagged", `{"products":[` + item + `]}`},
		{"misspelled", `{"sucess":true,"data":{"products":[` + item + `]}}`},
		{"bare array", `[` + item + `]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q map[string][]string
			srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
				q = r.URL.Query()
				jsonReply(200, tt.body)(w, r)
			})
			c := New(srv.URL, nil)

			r := c.GetProducts(context.Background(), models.PageRequest{Page: 2, Limit: 10}, models.ProductFilter{Category: "c1"})
			require.True(t, r.Success, r.Error)
			require.Len(t, r.Data.Products, 1)
			assert.LessOrEqual(t, len(r.Data.Products), 10)
			assert.Equal(t, 2, r.Data.Pagination.Page)

			p := r.Data.Products[0]
			assert.Equal(t, "p1", p.ID)
			assert.True(t, decimal.RequireFromString("19.90").Equal(p.Price))
			assert.Equal(t, "c1", p.Category.ID)

			assert.Equal(t, []string{"2"}, q["page"])
			assert.Equal(t, []string{"10"}, q["limit"])
			assert.Equal(t, []string{"c1"}, q["category"])
		})
	}
}

func TestGetProducts_FilterQuery(t *testing.T) {
	var raw string
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
		jsonReply(200, `[]`)(w, r)
	})
	minPrice := decimal.NewFromInt(5)
	c := New(srv.URL, nil)

	r := c.GetProducts(context.Background(), models.PageRequest{}, models.ProductFilter{Search: "red tee", MinPrice: &minPrice, Sort: "-price", Featured: true})
	require.True(t, r.Success)
	assert.Empty(t, r.Data.Products)
	assert.Contains(t, raw, "search=red+tee")
	assert.Contains(t, raw, "minPrice=5")
	assert.Contains(t, raw, "sort=-price")
	assert.Contains(t, raw, "featured=true")
	assert.NotContains(t, raw, "page=")
}

func TestGetProduct_Nested(t *testing.T) {
	srv, _ := countingServer(t, jsonReply(200, `{"success":true,"data":{"product":{"_id":"p9","name":"Cap","price":12}}}`))
	r := New(srv.URL, nil).GetProduct(context.Background(), "p9")
	require.True(t, r.Success)
	assert.Equal(t, "p9", r.Data.ID)
	assert.Equal(t, "Cap", r.Data.Name)
}

func TestAddToCart_SingleLine(t *testing.T) {
	var got models.AddToCartInput
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		jsonReply(200, `{"success":true,"data":{"cart":{"items":[{"product":{"_id":"P123","name":"Tee","price":10},"quantity":1,"price":10}]}}}`)(w, r)
	})
	c := New(srv.URL, staticToken("tok"))

	r := c.AddToCart(context.Background(), models.AddToCartInput{ProductID: "P123", Quantity: 1})
	require.True(t, r.Success, r.Error)
	require.Len(t, r.Data.Items, 1)
	assert.Equal(t, "P123", r.Data.Items[0].Product.ID)
	assert.Equal(t, 1, r.Data.Items[0].Quantity)
	assert.Equal(t, models.AddToCartInput{ProductID: "P123", Quantity: 1}, got)
}

func TestAddToCart_DefaultsAndPrecheck(t *testing.T) {
	var got models.AddToCartInput
	srv, n := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		jsonReply(200, `{"success":true,"message":"Added"}`)(w, r)
	})
	c := New(srv.URL, staticToken("tok"))

	r := c.AddToCart(context.Background(), models.AddToCartInput{ProductID: "P1"})
	require.True(t, r.Success)
	assert.Equal(t, 1, got.Quantity)
	assert.Nil(t, r.Data.Items, "no cart in the response")
	assert.Equal(t, "Added", r.Message)

	r = c.AddToCart(context.Background(), models.AddToCartInput{ProductID: "P1", Quantity: -2})
	require.False(t, r.Success)
	assert.Equal(t, int32(1), n.Load())

	u := c.UpdateCartItem(context.Background(), "P1", 0)
	require.False(t, u.Success)
	assert.Equal(t, int32(1), n.Load())
}

func TestDecodeCart(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		items int
		isNil bool
	}{
		{"data", `{"success":true,"data":{"items":[{"product":"p1","quantity":2}]}}`, 1, false},
		{"data.cart", `{"success":true,"data":{"cart":{"items":[]}}}`, 0, false},
		{"data.cart null", `{"success":true,"data":{"cart":null}}`, 0, true},
		{"item list", `{"success":true,"data":[{"product":{"id":"p1"},"quantity":1}]}`, 1, false},
		{"no body", ``, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := parseWire(200, []byte(tt.body))
			require.NoError(t, err)
			cart, err := decodeCart(w)
			require.NoError(t, err)
			assert.Len(t, cart.Items, tt.items)
			assert.Equal(t, tt.isNil, cart.Items == nil)
		})
	}
}

func TestCreateOrder_EmptyItems_NoNetwork(t *testing.T) {
	srv, n := countingServer(t, jsonReply(200, `{"success":true}`))
	c := New(srv.URL, staticToken("tok"))

	r := c.CreateOrder(context.Background(), models.OrderInput{PaymentMethod: "card"})
	require.False(t, r.Success)
	assert.Equal(t, MsgNoOrderItems, r.Error)
	assert.Zero(t, n.Load())
}

func TestCreateOrder_Sends(t *testing.T) {
	var got models.OrderInput
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		jsonReply(201, `{"success":true,"data":{"order":{"_id":"o1","status":"pending","totalAmount":"20"}}}`)(w, r)
	})
	c := New(srv.URL, staticToken("tok"))

	in := models.OrderInput{
		Items:         []models.OrderItemInput{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: "card",
	}
	r := c.CreateOrder(context.Background(), in)
	require.True(t, r.Success, r.Error)
	assert.Equal(t, "o1", r.Data.ID)
	assert.Equal(t, models.OrderPending, r.Data.Status)
	assert.Equal(t, in, got)
}

func TestLogin_TopLevelToken(t *testing.T) {
	srv, _ := countingServer(t, jsonReply(200, `{"sucess":true,"token":"jwt","user":{"_id":"u1","email":"a@b.c","role":"admin"}}`))
	r := New(srv.URL, nil).Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "pw"})
	require.True(t, r.Success, r.Error)
	assert.Equal(t, "jwt", r.Data.Token)
	assert.Equal(t, "u1", r.Data.User.ID)
	assert.True(t, r.Data.User.IsAdmin())
}

func TestLogin_MissingToken(t *testing.T) {
	srv, _ := countingServer(t, jsonReply(200, `{"success":true,"data":{"user":{}}}`))
	r := New(srv.URL, nil).Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "pw"})
	require.False(t, r.Success)
	assert.Equal(t, MsgInvalidResponse, r.Error)
}

func TestCreateProduct_Multipart(t *testing.T) {
	type part struct{ name, file, body string }
	var parts []part
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		mr, err := r.MultipartReader()
		if !assert.NoError(t, err) {
			return
		}
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if !assert.NoError(t, err) {
				return
			}
			b, _ := io.ReadAll(p)
			parts = append(parts, part{p.FormName(), p.FileName(), string(b)})
		}
		jsonReply(201, `{"success":true,"data":{"_id":"p1","name":"Tee"}}`)(w, r)
	})
	c := New(srv.URL, staticToken("tok"))

	r := c.CreateProduct(context.Background(), models.ProductInput{
		Name:   "Tee",
		Price:  decimal.RequireFromString("9.5"),
		Sizes:  []string{"S", "M"},
		Photos: []models.Upload{{FileName: "a.jpg", Content: strings.NewReader("jpeg")}},
	})
	require.True(t, r.Success, r.Error)
	assert.Equal(t, "p1", r.Data.ID)
	assert.Equal(t, []part{
		{"name", "", "Tee"},
		{"sizes", "", "S"},
		{"sizes", "", "M"},
		{"price", "", "9.5"},
		{"photos", "a.jpg", "jpeg"},
	}, parts)
}

func TestGetCategories_MisspelledBareList(t *testing.T) {
	srv, _ := countingServer(t, jsonReply(200, `{"sucess":true,"data":[{"_id":"c1","name":"Hats"}]}`))
	r := New(srv.URL, nil).GetCategories(context.Background())
	require.True(t, r.Success)
	require.Len(t, r.Data, 1)
	assert.Equal(t, "c1", r.Data[0].ID)
}

func TestUpdateOrderStatus(t *testing.T) {
	var body map[string]string
	var path string
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		jsonReply(200, `{"success":true,"data":{"_id":"o1","status":"shipped"}}`)(w, r)
	})
	c := New(srv.URL, staticToken("tok"))

	r := c.UpdateOrderStatus(context.Background(), "o1", models.OrderShipped)
	require.True(t, r.Success)
	assert.Equal(t, "/api/v1/orders/admin/o1/status", path)
	assert.Equal(t, map[string]string{"status": "shipped"}, body)
	assert.Equal(t, models.OrderShipped, r.Data.Status)
}

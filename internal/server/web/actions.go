package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/auth"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

const msgBadBody = "Invalid request body"

// decode reads a JSON action body, answering 400 when it cannot.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := netx.DecodeJSON(w, r, v); err != nil {
		badRequest(w, msgBadBody)
		return false
	}
	return true
}

// form reads a multipart or urlencoded action body, answering 400 when it
// cannot. The caller closes the returned form.
func (s *Server) form(w http.ResponseWriter, r *http.Request) (*form, bool) {
	f, err := readForm(r)
	if err != nil {
		s.logger.Debug(r.Context(), "unreadable form", "error", err.Error())
		badRequest(w, "Invalid form data")
		return nil, false
	}
	return f, true
}

// setToken mirrors the token in an HttpOnly cookie that expires with it.
func (s *Server) setToken(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if exp, ok := auth.Expiry(token); ok {
		c.Expires = exp
	}
	http.SetCookie(w, c)
}

func (s *Server) clearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// signedIn answers a login or registration. The token goes to the cookie,
// the body carries the user only.
func (s *Server) signedIn(w http.ResponseWriter, res api.Result[models.AuthData]) {
	if !res.Success {
		writeResult(w, api.Fail[models.User](res.Error))
		return
	}
	s.setToken(w, res.Data.Token)
	writeResult(w, api.OK(res.Data.User, res.Message))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if decode(w, r, &in) {
		s.signedIn(w, s.api.Login(r.Context(), in))
	}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in models.Registration
	if decode(w, r, &in) {
		s.signedIn(w, s.api.Register(r.Context(), in))
	}
}

// logout drops the cookie and sends the visitor home.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.clearToken(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	f, ok := s.form(w, r)
	if !ok {
		return
	}
	defer f.close()

	in, err := f.userInput()
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	in.Role = ""
	writeResult(w, s.api.UpdateProfile(r.Context(), in))
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	var in models.AddToCartInput
	if decode(w, r, &in) {
		writeResult(w, s.api.AddToCart(r.Context(), in))
	}
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Quantity int `json:"quantity"`
	}
	if decode(w, r, &in) {
		writeResult(w, s.api.UpdateCartItem(r.Context(), chi.URLParam(r, "productId"), in.Quantity))
	}
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.api.RemoveFromCart(r.Context(), chi.URLParam(r, "productId")))
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.api.ClearCart(r.Context()))
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var in models.OrderInput
	if decode(w, r, &in) {
		writeResult(w, s.api.CreateOrder(r.Context(), in))
	}
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.api.CancelOrder(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OrderID string `json:"orderId"`
	}
	if decode(w, r, &in) {
		writeResult(w, s.api.CreatePaymentIntent(r.Context(), in.OrderID))
	}
}

func (s *Server) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PaymentID string `json:"paymentId"`
	}
	if decode(w, r, &in) {
		writeResult(w, s.api.ConfirmPayment(r.Context(), in.PaymentID))
	}
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	f, ok := s.form(w, r)
	if !ok {
		return
	}
	defer f.close()

	in, err := f.productInput()
	if err != nil {
		badRequest(w, "Invalid product data")
		return
	}
	writeResult(w, s.api.CreateProduct(r.Context(), in))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	f, ok := s.form(w, r)
	if !ok {
		return
	}
	defer f.close()

	in, err := f.productInput()
	if err != nil {
		badRequest(w, "Invalid product data")
		return
	}
	writeResult(w, s.api.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in))
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.api.DeleteProduct(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	f, ok := s.form(w, r)
	if !ok {
		return
	}
	defer f.close()

	in, err := f.categoryInput()
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	writeResult(w, s.api.CreateCategory(r.Context(), in))
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	f, ok := s.form(w, r)
	if !ok {
		return
	}
	defer f.close()

	in, err := f.categoryInput()
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	writeResult(w, s.api.UpdateCategory(r.Context(), chi.URLParam(r, "id"), in))
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.api.DeleteCategory(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) createAdmin(w http.ResponseWriter, r *http.Request) {
	f, ok := s.form(w, r)
	if !ok {
		return
	}
	defer f.close()

	in, err := f.userInput()
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	writeResult(w, s.api.CreateAdmin(r.Context(), in))
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	f, ok := s.form(w, r)
	if !ok {
		return
	}
	defer f.close()

	in, err := f.userInput()
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	writeResult(w, s.api.UpdateUser(r.Context(), chi.URLParam(r, "id"), in))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.api.DeleteUser(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) deleteUserCart(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.api.DeleteUserCart(r.Context(), chi.URLParam(r, "userId")))
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if decode(w, r, &in) {
		writeResult(w, s.api.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), in.Status))
	}
}

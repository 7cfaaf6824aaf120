package fakeapi

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	role := r.URL.Query().Get("role")
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*user
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Name+" "+u.Email), search) {
			continue
		}
		matched = append(matched, u)
	}
	slices.SortFunc(matched, func(a, b *user) int { return strings.Compare(a.Email, b.Email) })

	items, pages := paginate(matched, page, limit)
	reply(w, http.StatusOK, canonical, map[string]any{
		"users": items,
		"pagination": map[string]int{
			"page":       page,
			"limit":      limit,
			"total":      len(matched),
			"totalPages": pages,
		},
	}, "")
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.users[chi.URLParam(r, "id")]
	if !found {
		fail(w, http.StatusNotFound, "User not found")
		return
	}
	reply(w, http.StatusOK, canonical, map[string]any{"user": u}, "")
}

// createUser creates an account with the sent role, admin by default.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	email, _ := f.get("email")
	email = normalizeEmail(email)
	password, _ := f.get("password")
	name, _ := f.get("name")
	role, _ := f.get("role")
	if role == "" {
		role = roleAdmin
	}
	if email == "" || len(password) < minPasswordLength {
		fail(w, http.StatusBadRequest, "Email and a password of at least 6 characters are required")
		return
	}
	if role != roleAdmin && role != roleUser {
		fail(w, http.StatusBadRequest, "Invalid role")
		return
	}
	if name == "" {
		name = email
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[email]; taken {
		fail(w, http.StatusConflict, "User already exists")
		return
	}
	u, err := s.addUser(name, email, password, role)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	if phone, sent := f.get("phone"); sent {
		u.Phone = phone
	}
	reply(w, http.StatusCreated, canonical, map[string]any{"user": u}, "User created")
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.users[chi.URLParam(r, "id")]
	if !found {
		fail(w, http.StatusNotFound, "User not found")
		return
	}
	if msg := s.applyUserForm(u, f, true); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	reply(w, http.StatusOK, canonical, map[string]any{"user": u}, "User updated")
}

// deleteUser removes the account and its cart. Admins cannot delete
// themselves.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == currentUser(r.Context()).ID {
		fail(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.users[id]
	if !found {
		fail(w, http.StatusNotFound, "User not found")
		return
	}
	delete(s.users, id)
	delete(s.emails, u.Email)
	delete(s.carts, id)
	reply(w, http.StatusOK, canonical, nil, "User deleted")
}

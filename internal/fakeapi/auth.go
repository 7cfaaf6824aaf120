package fakeapi

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// register answers 201 with {success, data: {token, user}}.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeBody(r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in.Email = normalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || in.Email == "" || in.Password == "" {
		fail(w, http.StatusBadRequest, "Please provide name, email and password")
		return
	}
	if len(in.Password) < minPasswordLength {
		fail(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[in.Email]; taken {
		fail(w, http.StatusConflict, "User already exists")
		return
	}
	u, err := s.addUser(strings.TrimSpace(in.Name), in.Email, in.Password, roleUser)
	if err != nil {
		s.logger.Error(r.Context(), "cannot create user", "error", err.Error())
		fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	u.Phone = in.Phone

	token, err := generateToken(u.ID, u.Role, s.secret, s.now(), s.tokenTTL)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	reply(w, http.StatusCreated, canonical, map[string]any{"token": token, "user": u}, "Registration successful")
}

// login answers with the token and user at the top level, next to the flag.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeBody(r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := normalizeEmail(in.Email)

	s.mu.Lock()
	var u *user
	if id, found := s.emails[email]; found {
		cp := *s.users[id]
		u = &cp
	}
	s.mu.Unlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.hash, []byte(in.Password)) != nil {
		fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := generateToken(u.ID, u.Role, s.secret, s.now(), s.tokenTTL)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	replyFlat(w, http.StatusOK, canonical, map[string]any{
		"token":   token,
		"user":    u,
		"message": "Login successful",
	})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, canonical, map[string]any{"user": currentUser(r.Context())}, "")
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	id := currentUser(r.Context()).ID

	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.users[id]
	if !found {
		fail(w, http.StatusNotFound, "User not found")
		return
	}
	if msg := s.applyUserForm(u, f, false); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	reply(w, http.StatusOK, canonical, map[string]any{"user": u}, "Profile updated")
}

// applyUserForm updates u from the sent fields. It returns a failure message
// or "". Role changes are honored only when allowRole is set. Called with
// s.mu held.
func (s *Server) applyUserForm(u *user, f *form, allowRole bool) string {
	password, _ := f.get("password")
	if password != "" && len(password) < minPasswordLength {
		return "Password must be at least 6 characters"
	}
	role, _ := f.get("role")
	if allowRole && role != "" && role != roleUser && role != roleAdmin {
		return "Invalid role"
	}
	email, _ := f.get("email")
	email = normalizeEmail(email)
	if owner, taken := s.emails[email]; email != "" && taken && owner != u.ID {
		return "Email already in use"
	}
	urls, err := s.saveUploads(f, "avatar")
	if err != nil {
		return "Failed to upload avatar"
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return "Failed to update password"
		}
		u.hash = hash
	}
	if email != "" && email != u.Email {
		delete(s.emails, u.Email)
		u.Email = email
		s.emails[email] = u.ID
	}
	if v, sent := f.get("name"); sent && v != "" {
		u.Name = v
	}
	if v, sent := f.get("phone"); sent {
		u.Phone = v
	}
	if allowRole && role != "" {
		u.Role = role
	}
	if len(urls) > 0 {
		u.Avatar = urls[0]
	}
	return ""
}

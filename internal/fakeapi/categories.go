package fakeapi

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// listCategories answers with a bare JSON array.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*category, 0, len(s.catOrder))
	for _, id := range s.catOrder {
		out = append(out, s.categories[id])
	}
	writeJSON(w, http.StatusOK, out)
}

// getCategory answers with the bare object, without a flag.
func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.categories[chi.URLParam(r, "id")]
	if !found {
		fail(w, http.StatusNotFound, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name, _ := f.get("name")
	if name == "" {
		fail(w, http.StatusBadRequest, "Category name is required")
		return
	}
	if s.categoryNamed(name) != nil {
		fail(w, http.StatusConflict, "Category already exists")
		return
	}
	c := &category{ID: uuid.NewString()}
	if msg := s.applyCategoryForm(c, f); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	s.categories[c.ID] = c
	s.catOrder = append(s.catOrder, c.ID)
	reply(w, http.StatusCreated, canonical, map[string]any{"category": c}, "Category created")
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.categories[chi.URLParam(r, "id")]
	if !found {
		fail(w, http.StatusNotFound, "Category not found")
		return
	}
	if name, _ := f.get("name"); name != "" {
		if other := s.categoryNamed(name); other != nil && other.ID != c.ID {
			fail(w, http.StatusConflict, "Category already exists")
			return
		}
	}
	next := *c
	if msg := s.applyCategoryForm(&next, f); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	*c = next
	reply(w, http.StatusOK, canonical, map[string]any{"category": c}, "Category updated")
}

// deleteCategory refuses while products still reference the category.
func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, found := s.categories[id]; !found {
		fail(w, http.StatusNotFound, "Category not found")
		return
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			fail(w, http.StatusBadRequest, "Category has products")
			return
		}
	}
	delete(s.categories, id)
	s.catOrder = slices.DeleteFunc(s.catOrder, func(v string) bool { return v == id })
	reply(w, http.StatusOK, canonical, nil, "Category deleted")
}

func (s *Server) categoryNamed(name string) *category {
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

func (s *Server) applyCategoryForm(c *category, f *form) string {
	if v, sent := f.get("name"); sent && v != "" {
		c.Name = v
	}
	if v, sent := f.get("description"); sent {
		c.Description = v
	}
	urls, err := s.saveUploads(f, "image")
	if err != nil {
		return "Failed to upload image"
	}
	if len(urls) > 0 {
		c.Image = urls[0]
	}
	return ""
}

package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuskit/campusweb/internal/catalog"
	"github.com/campuskit/campusweb/internal/faculty"
)

func (s *Site) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", "Home", nil)
}

func (s *Site) about(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "about", "About", nil)
}

func (s *Site) demo(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "demo", "Demo", nil)
}

// testError exercises the full error pipeline on demand.
func (s *Site) testError(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, errors.New("this is a test error"))
}

func (s *Site) catalogList(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "catalog/list", "Course Catalog", catalog.All())
}

func (s *Site) catalogDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	course, ok := catalog.BySlug(slug)
	if !ok {
		s.fail(w, r, NotFoundError("Course %q not found", slug))
		return
	}
	s.render(w, r, http.StatusOK, "catalog/detail", course.Title, course)
}

func (s *Site) facultyList(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = faculty.SortByName
	}
	s.render(w, r, http.StatusOK, "faculty/list", "Faculty Directory", struct {
		Members     []faculty.Member
		CurrentSort string
	}{faculty.Sorted(sortBy), sortBy})
}

func (s *Site) facultyDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	member, ok := faculty.BySlug(slug)
	if !ok {
		s.fail(w, r, NotFoundError("Faculty member %q not found", slug))
		return
	}
	s.render(w, r, http.StatusOK, "faculty/detail", member.Name+" - Profile", member)
}

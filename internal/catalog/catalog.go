// Package catalog holds the course catalog content served by the site.
package catalog

import (
	"slices"
	"strings"
)

// Course describes one catalog entry. Slug is the URL identifier.
type Course struct {
	Slug        string
	Code        string
	Title       string
	Credits     int
	Instructor  string
	Description string
}

var courses = []Course{
	{
		Slug:        "cs-101",
		Code:        "CS 101",
		Title:       "Introduction to Computer Science",
		Credits:     4,
		Instructor:  "Dr. Elena Vasquez",
		Description: "Foundations of computing: algorithms, abstraction, and a first programming language.",
	},
	{
		Slug:        "cs-210",
		Code:        "CS 210",
		Title:       "Data Structures",
		Credits:     4,
		Instructor:  "Prof. Marcus Webb",
		Description: "Lists, trees, hash tables, and graphs, with an emphasis on cost analysis.",
	},
	{
		Slug:        "math-120",
		Code:        "MATH 120",
		Title:       "Calculus I",
		Credits:     3,
		Instructor:  "Dr. Priya Raman",
		Description: "Limits, derivatives, and integrals of single-variable functions.",
	},
	{
		Slug:        "eng-205",
		Code:        "ENG 205",
		Title:       "Technical Writing",
		Credits:     2,
		Instructor:  "Prof. Sarah Okafor",
		Description: "Clear writing for engineers: specifications, reports, and documentation.",
	},
	{
		Slug:        "phys-150",
		Code:        "PHYS 150",
		Title:       "Mechanics",
		Credits:     4,
		Instructor:  "Dr. James Thornton",
		Description: "Newtonian mechanics with laboratory work.",
	},
}

// All returns every course sorted by course code.
func All() []Course {
	out := slices.Clone(courses)
	slices.SortFunc(out, func(a, b Course) int {
		return strings.Compare(a.Code, b.Code)
	})
	return out
}

// BySlug returns the course with the given slug.
func BySlug(slug string) (Course, bool) {
	for _, c := range courses {
		if c.Slug == slug {
			return c, true
		}
	}
	return Course{}, false
}

// Package faculty holds the faculty directory content served by the
// site.
package faculty

import (
	"slices"
	"strings"
)

// Member describes one directory entry. Slug is the URL identifier.
type Member struct {
	Slug       string
	Name       string
	Title      string
	Department string
	Email      string
	Office     string
	Interests  []string
}

var members = []Member{
	{
		Slug:       "elena-vasquez",
		Name:       "Elena Vasquez",
		Title:      "Associate Professor",
		Department: "Computer Science",
		Email:      "evasquez@campus.edu",
		Office:     "Turing Hall 214",
		Interests:  []string{"programming languages", "compilers"},
	},
	{
		Slug:       "marcus-webb",
		Name:       "Marcus Webb",
		Title:      "Professor",
		Department: "Computer Science",
		Email:      "mwebb@campus.edu",
		Office:     "Turing Hall 108",
		Interests:  []string{"algorithms", "graph theory"},
	},
	{
		Slug:       "priya-raman",
		Name:       "Priya Raman",
		Title:      "Assistant Professor",
		Department: "Mathematics",
		Email:      "praman@campus.edu",
		Office:     "Gauss Building 301",
		Interests:  []string{"analysis", "differential equations"},
	},
	{
		Slug:       "sarah-okafor",
		Name:       "Sarah Okafor",
		Title:      "Senior Lecturer",
		Department: "English",
		Email:      "sokafor@campus.edu",
		Office:     "Humanities 122",
		Interests:  []string{"technical communication", "rhetoric"},
	},
	{
		Slug:       "james-thornton",
		Name:       "James Thornton",
		Title:      "Professor",
		Department: "Physics",
		Email:      "jthornton@campus.edu",
		Office:     "Newton Lab 9",
		Interests:  []string{"classical mechanics", "astrophysics"},
	},
}

// Sort keys accepted by Sorted. Anything else falls back to "name".
const (
	SortByName       = "name"
	SortByDepartment = "department"
	SortByTitle      = "title"
)

// Sorted returns the directory ordered by the given key.
func Sorted(by string) []Member {
	key := func(m Member) string {
		switch by {
		case SortByDepartment:
			return m.Department + "\x00" + m.Name
		case SortByTitle:
			return m.Title + "\x00" + m.Name
		default:
			return m.Name
		}
	}
	out := slices.Clone(members)
	slices.SortFunc(out, func(a, b Member) int {
		return strings.Compare(key(a), key(b))
	})
	return out
}

// BySlug returns the member with the given slug.
func BySlug(slug string) (Member, bool) {
	for _, m := range members {
		if m.Slug == slug {
			return m, true
		}
	}
	return Member{}, false
}

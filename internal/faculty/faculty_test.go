package faculty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campusweb/internal/faculty"
)

func names(members []faculty.Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name
	}
	return out
}

func TestSorted(t *testing.T) {
	t.Run("by name", func(t *testing.T) {
		got := names(faculty.Sorted(faculty.SortByName))
		assert.Equal(t, []string{
			"Elena Vasquez", "James Thornton", "Marcus Webb", "Priya Raman", "Sarah Okafor",
		}, got)
	})

	t.Run("by department groups colleagues", func(t *testing.T) {
		members := faculty.Sorted(faculty.SortByDepartment)
		require.Len(t, members, 5)
		assert.Equal(t, "Computer Science", members[0].Department)
		assert.Equal(t, "Computer Science", members[1].Department)
	})

	t.Run("unknown key falls back to name order", func(t *testing.T) {
		assert.Equal(t,
			names(faculty.Sorted(faculty.SortByName)),
			names(faculty.Sorted("shoe-size")),
		)
	})
}

func TestBySlug(t *testing.T) {
	m, ok := faculty.BySlug("priya-raman")
	require.True(t, ok)
	assert.Equal(t, "Priya Raman", m.Name)

	_, ok = faculty.BySlug("nobody")
	assert.False(t, ok)
}

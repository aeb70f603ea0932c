package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnix/learnix-portal/internal/domain/auth"
)

func TestVisibleEntries_Anonymous(t *testing.T) {
	assert.Empty(t, VisibleEntries(auth.Anonymous()))
}

func TestVisibleEntries_StudentMenu(t *testing.T) {
	s := auth.Session{
		ID:       "s1",
		Token:    "tok123",
		Identity: &auth.Identity{ID: 1, Name: "A", Email: "a@b.com", Role: auth.RoleStudent},
	}
	entries := VisibleEntries(s)
	require.Len(t, entries, 6)

	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Label)
	}
	assert.Equal(t,
		[]string{"Dashboard", "Courses", "Attendance", "Marks", "Payments", "Online Tests"},
		labels)
}

func TestVisibleEntries_Deterministic(t *testing.T) {
	s := auth.Session{
		ID:       "s1",
		Token:    "tok",
		Identity: &auth.Identity{Role: auth.RoleAdmin},
	}
	assert.Equal(t, VisibleEntries(s), VisibleEntries(s))
}

func TestEntriesForRole_CopiesTable(t *testing.T) {
	first := EntriesForRole(auth.RoleTeacher)
	require.NotEmpty(t, first)
	first[0].Label = "mutated"

	second := EntriesForRole(auth.RoleTeacher)
	assert.Equal(t, "Dashboard", second[0].Label)
}

func TestEntriesForRole_UnknownRole(t *testing.T) {
	assert.Nil(t, EntriesForRole(auth.Role("GUEST")))
}

func TestEntriesForRole_PathsMatchRolePrefix(t *testing.T) {
	prefixes := map[auth.Role]string{
		auth.RoleStudent: "/student/",
		auth.RoleTeacher: "/teacher/",
		auth.RoleAdmin:   "/admin/",
	}
	for role, prefix := range prefixes {
		for _, e := range EntriesForRole(role) {
			assert.Truef(t, len(e.Path) > len(prefix) && e.Path[:len(prefix)] == prefix,
				"entry %q for role %s should live under %s", e.Path, role, prefix)
		}
	}
}

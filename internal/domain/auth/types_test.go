package auth

import (
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"STUDENT", RoleStudent, false},
		{"student", RoleStudent, false},
		{" Teacher ", RoleTeacher, false},
		{"admin", RoleAdmin, false},
		{"ADMIN", RoleAdmin, false},
		{"", "", true},
		{"superuser", "", true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRole(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles() {
		if !r.Valid() {
			t.Fatalf("expected %q to be valid", r)
		}
	}
	if Role("GUEST").Valid() {
		t.Fatalf("did not expect GUEST to be valid")
	}
}

func TestSession_Anonymous(t *testing.T) {
	s := Anonymous()
	if !s.IsAnonymous() {
		t.Fatalf("expected anonymous")
	}
	if err := s.CheckInvariant(); err != nil {
		t.Fatalf("anonymous session must satisfy invariant: %v", err)
	}
}

func TestSession_CheckInvariant(t *testing.T) {
	id := &Identity{ID: 1, Email: "a@b.com", Role: RoleStudent}

	ok := Session{ID: "s1", Token: "tok", Identity: id}
	if err := ok.CheckInvariant(); err != nil {
		t.Fatalf("authenticated session must satisfy invariant: %v", err)
	}

	if err := (Session{ID: "s2", Token: "tok"}).CheckInvariant(); err == nil {
		t.Fatalf("credential without identity must violate invariant")
	}
	if err := (Session{ID: "s3", Identity: id}).CheckInvariant(); err == nil {
		t.Fatalf("identity without credential must violate invariant")
	}
}

func TestSession_HasRole(t *testing.T) {
	s := Session{ID: "s", Token: "t", Identity: &Identity{Role: RoleTeacher}}
	if !s.HasRole(RoleTeacher) {
		t.Fatalf("expected teacher role")
	}
	if s.HasRole(RoleAdmin) {
		t.Fatalf("did not expect admin role")
	}
	if Anonymous().HasRole(RoleStudent) {
		t.Fatalf("anonymous session has no role")
	}
}

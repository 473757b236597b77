package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	in := []string{"oasis", "speedrun"}
	if got := IfEmpty(in, []string{"meta"}); len(got) != 2 || got[0] != "oasis" {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	var empty []string
	if got := IfEmpty(empty, []string{"meta"}); len(got) != 1 || got[0] != "meta" {
		t.Fatalf("IfEmpty did not return default: %#v", got)
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s, sub string
		want   bool
	}{
		{"conversation", "versa", true},
		{"conversation", "c", true},
		{"conversation", "tion", true},
		{"conversation", "", true},
		{"conversation", "xyz", false},
		{"id", "workspace_id", false},
	}
	for _, c := range cases {
		if got := Contains(c.s, c.sub); got != c.want {
			t.Errorf("Contains(%q,%q) = %v, want %v", c.s, c.sub, got, c.want)
		}
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("oasis", "module name"); got != "oasis" {
		t.Fatalf("MustString = %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for whitespace-only value")
		}
	}()
	_ = MustString("   ", "module name")
}

func TestMustPrefix(t *testing.T) {
	ok := map[string]string{
		"/oasis/":    "/oasis",
		" speedrun ": "/speedrun",
		"//meta//":   "/meta",
		"/api/v1":    "/api/v1",
	}
	for in, want := range ok {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}

	for _, in := range []string{"/", "", "  ", "///"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for %q", in)
				}
			}()
			_ = MustPrefix(in)
		}()
	}
}

func TestSQLNull(t *testing.T) {
	t.Parallel()

	if got := SQLNull("smtp-9f2"); got != "smtp-9f2" {
		t.Fatalf("SQLNull non-blank = %#v", got)
	}
	if got := SQLNull(""); got != nil {
		t.Fatalf("SQLNull empty = %#v, want nil", got)
	}
	if got := SQLNull("   "); got != nil {
		t.Fatalf("SQLNull whitespace = %#v, want nil", got)
	}
}

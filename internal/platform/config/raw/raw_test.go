package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("APP_NAME", " adrata ")
	t.Setenv("API_PORT", " 8080 ")

	root := New()
	api := root.Prefix("API_")

	cases := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{"root hit trims whitespace", root, "APP_NAME", "x", "adrata"},
		{"prefixed hit", api, "PORT", "x", "8080"},
		{"missing returns default", api, "MISSING", "defv", "defv"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.conf.Get(c.key, c.def); got != c.want {
				t.Fatalf("Get(%q) = %q, want %q", c.key, got, c.want)
			}
		})
	}
}

func TestGetBool(t *testing.T) {
	log := New().Prefix("LOG_")

	t.Setenv("LOG_T1", "true")
	t.Setenv("LOG_T2", "1")
	t.Setenv("LOG_T3", "YES")
	t.Setenv("LOG_F1", "false")
	t.Setenv("LOG_F2", "0")
	t.Setenv("LOG_F3", "no")
	t.Setenv("LOG_WS", "   true   ")

	cases := []struct {
		name string
		key  string
		def  bool
		want bool
	}{
		{"true", "T1", false, true},
		{"1", "T2", false, true},
		{"YES is case-insensitive", "T3", false, true},
		{"false", "F1", true, false},
		{"0", "F2", true, false},
		{"no", "F3", true, false},
		{"whitespace trimmed", "WS", false, true},
		{"missing keeps default true", "MISSING", true, true},
		{"missing keeps default false", "MISSING2", false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := log.GetBool(c.key, c.def); got != c.want {
				t.Fatalf("GetBool(%q) = %v, want %v", c.key, got, c.want)
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	sys := New().Prefix("SYS_")

	t.Setenv("SYS_OK", "42")
	t.Setenv("SYS_WS", "  7  ")
	t.Setenv("SYS_NONNUM", "12x")
	t.Setenv("SYS_NEG", "-5") // signs are rejected on purpose

	cases := []struct {
		name string
		key  string
		def  int
		want int
	}{
		{"numeric", "OK", 0, 42},
		{"trimmed", "WS", 1, 7},
		{"non numeric falls back", "NONNUM", 9, 9},
		{"negative falls back", "NEG", 3, 3},
		{"missing uses default", "MISSING", 11, 11},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := sys.GetInt(c.key, c.def); got != c.want {
				t.Fatalf("GetInt(%q) = %d, want %d", c.key, got, c.want)
			}
		})
	}
}

func TestPrefixesComposeWithoutColliding(t *testing.T) {
	root := New()
	log := root.Prefix("LOG_")
	api := root.Prefix("API_")
	apiLog := api.Prefix("LOG_")

	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("API_LEVEL", "debug")
	t.Setenv("API_LOG_MODE", "console")

	if got := log.Get("LEVEL", ""); got != "info" {
		t.Fatalf("LOG_ LEVEL = %q, want info", got)
	}
	if got := api.Get("LEVEL", ""); got != "debug" {
		t.Fatalf("API_ LEVEL = %q, want debug", got)
	}
	if got := apiLog.Get("MODE", ""); got != "console" {
		t.Fatalf("API_LOG_ MODE = %q, want console", got)
	}
}

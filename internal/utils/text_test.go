package utils

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"¿Cómo invierto?", "COMO INVIERTO"},
		{"  buenos   DÍAS ", "BUENOS DIAS"},
		{"SUSCRIPCIÓN", "SUSCRIPCION"},
		{"hola!!!", "HOLA"},
		{"", ""},
		{"¿¡?", ""},
	}

	for _, c := range cases {
		got := Normalize(c.in)
		if got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
		// normalizing again must not change anything
		if again := Normalize(got); again != got {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", c.in, got, again)
		}
	}
}

func TestNormalizeAccentAndCaseInsensitive(t *testing.T) {
	pairs := [][2]string{
		{"SUSCRIPCIÓN", "suscripcion"},
		{"¿Qué es el VUI?", "que es el vui"},
		{"MENÚ", "menu"},
	}
	for _, p := range pairs {
		if Normalize(p[0]) != Normalize(p[1]) {
			t.Errorf("Normalize(%q) != Normalize(%q): %q vs %q",
				p[0], p[1], Normalize(p[0]), Normalize(p[1]))
		}
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("FONDO MUTUAL ABIERTO"); got != "FONDO_MUTUAL_ABIERTO" {
		t.Errorf("Slugify = %q, want FONDO_MUTUAL_ABIERTO", got)
	}
	if got := Slugify("suscripción"); got != "SUSCRIPCION" {
		t.Errorf("Slugify = %q, want SUSCRIPCION", got)
	}
}

func TestTruncate(t *testing.T) {
	exact := strings.Repeat("a", 20)
	if got := Truncate(exact, 20); got != exact {
		t.Errorf("text of exactly max runes must pass unchanged, got %q", got)
	}

	over := strings.Repeat("a", 21)
	got := Truncate(over, 20)
	if len([]rune(got)) > 20 {
		t.Errorf("Truncate result %q exceeds max 20", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text should end with ellipsis, got %q", got)
	}

	// word boundary preferred
	got = Truncate("¿Cuáles son las comisiones del fondo?", 24)
	if len([]rune(got)) > 24 {
		t.Errorf("Truncate result %q exceeds max 24", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got %q", got)
	}

	if got := Truncate("corto", 20); got != "corto" {
		t.Errorf("short text changed: %q", got)
	}
}

func TestStripIndexPrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1. ¿Cómo invierto?", "¿Cómo invierto?"},
		{"2- foo", "foo"},
		{"3) bar", "bar"},
		{"10: baz", "baz"},
		{"sin prefijo", "sin prefijo"},
	}
	for _, c := range cases {
		if got := StripIndexPrefix(c.in); got != c.want {
			t.Errorf("StripIndexPrefix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLeadingIndex(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5. foo", 5},
		{"  3) x", 3},
		{"12", 12},
		{"foo", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := LeadingIndex(c.in); got != c.want {
			t.Errorf("LeadingIndex(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

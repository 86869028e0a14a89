package routes

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Konsultacja chirurgiczna", "konsultacja-chirurgiczna"},
		{"Świąteczne godziny przyjęć", "swiateczne-godziny-przyjec"},
		{"Żółć, łąka i źrebię", "zolc-laka-i-zrebie"},
		{"USG   jamy brzusznej", "usg-jamy-brzusznej"},
		{"  EKG spoczynkowe  ", "ekg-spoczynkowe"},
		{"Badanie (pakiet #2)", "badanie-pakiet-2"},
		{"---", ""},
		{"", ""},
		{"już-slug", "juz-slug"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Konsultacja chirurgiczna",
		"Świąteczne godziny przyjęć 2024",
		"ąćęłńóśźż",
		"Plain ASCII title 42",
		"juz-wygenerowany-slug",
	}

	for _, s := range inputs {
		once := Slugify(s)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestSlugifyUppercaseDiacritics(t *testing.T) {
	// Uppercase Polish characters fold through ToLower before mapping.
	if got := Slugify("ŁĄKA"); got != "laka" {
		t.Errorf("Slugify(ŁĄKA) = %q, want laka", got)
	}
}

package meta

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"centrum/internal/routes"
)

// PageMeta holds the fixed metadata for one static page
type PageMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Keywords    string `yaml:"keywords"`
	OgImage     string `yaml:"ogImage"`
}

// Table maps static page ids to their metadata. A table missing an entry for
// any static page is a configuration error, caught by Validate at startup,
// never at request time.
type Table map[routes.PageID]PageMeta

// DefaultTable returns the compiled-in metadata for every static page.
func DefaultTable() Table {
	return Table{
		routes.PageHome: {
			Title:       "Centrum Medyczne – przychodnia, lekarze specjaliści, badania",
			Description: "Centrum Medyczne: konsultacje lekarzy specjalistów, badania diagnostyczne, zabiegi. Umów wizytę online lub telefonicznie.",
			Keywords:    "przychodnia, lekarze, specjaliści, badania, centrum medyczne",
			OgImage:     "/images/og/centrum.jpg",
		},
		routes.PageAbout: {
			Title:       "O nas – Centrum Medyczne",
			Description: "Poznaj nasz zespół i historię przychodni. Od lat dbamy o zdrowie pacjentów w przyjaznej atmosferze.",
			Keywords:    "o nas, zespół, przychodnia, historia",
			OgImage:     "/images/og/centrum.jpg",
		},
		routes.PageDoctors: {
			Title:       "Lekarze – Centrum Medyczne",
			Description: "Nasi lekarze specjaliści: interniści, chirurdzy, kardiolodzy i inni. Sprawdź dostępność i umów wizytę.",
			Keywords:    "lekarze, specjaliści, wizyty, przychodnia",
			OgImage:     "/images/og/lekarze.jpg",
		},
		routes.PageServices: {
			Title:       "Usługi – Centrum Medyczne",
			Description: "Pełna lista usług medycznych: konsultacje, badania diagnostyczne, zabiegi ambulatoryjne.",
			Keywords:    "usługi medyczne, badania, konsultacje, zabiegi",
			OgImage:     "/images/og/uslugi.jpg",
		},
		routes.PageNews: {
			Title:       "Aktualności – Centrum Medyczne",
			Description: "Najnowsze informacje z życia przychodni: godziny przyjęć, nowi specjaliści, akcje profilaktyczne.",
			Keywords:    "aktualności, ogłoszenia, przychodnia",
			OgImage:     "/images/og/aktualnosci.jpg",
		},
		routes.PageArticles: {
			Title:       "Poradnik pacjenta – Centrum Medyczne",
			Description: "Artykuły i porady: jak przygotować się do badań, profilaktyka, zdrowy styl życia.",
			Keywords:    "poradnik, porady zdrowotne, profilaktyka",
			OgImage:     "/images/og/poradnik.jpg",
		},
		routes.PageContact: {
			Title:       "Kontakt – Centrum Medyczne",
			Description: "Skontaktuj się z nami: adres, telefon, e-mail, godziny otwarcia rejestracji.",
			Keywords:    "kontakt, rejestracja, adres, telefon",
			OgImage:     "/images/og/centrum.jpg",
		},
	}
}

// LoadTable reads a table from a YAML file. Entries present in the file
// override the compiled-in defaults; pages absent from the file keep them.
func LoadTable(path string) (Table, error) {
	table := DefaultTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata table: %w", err)
	}

	var overrides map[routes.PageID]PageMeta
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing metadata table: %w", err)
	}

	for id, pm := range overrides {
		table[id] = pm
	}
	return table, nil
}

// Validate checks that every static page has a complete entry.
func (t Table) Validate() error {
	for _, id := range routes.StaticPageIDs() {
		pm, ok := t[id]
		if !ok {
			return fmt.Errorf("metadata table missing entry for page %q", id)
		}
		if pm.Title == "" || pm.Description == "" {
			return fmt.Errorf("metadata table entry for page %q has empty title or description", id)
		}
	}
	return nil
}

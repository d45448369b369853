package feed

import "portfolio.dev/internal/models"

// Scaffold adds an overlay entry for every repository the tables do not yet
// describe and returns the names it touched. Existing entries are never
// changed. New image entries point at /static/images/projects/<key>.png and
// new technology entries start from the repository language. Names without
// any letter or digit normalize to nothing and are skipped.
func Scaffold(t *models.OverlayTables, repos []models.Repository) []string {
	if t.Images == nil {
		t.Images = make(map[string]string)
	}
	if t.Scope == nil {
		t.Scope = make(map[string][]string)
	}
	if t.Technologies == nil {
		t.Technologies = make(map[string][]string)
	}

	scope := normalizedKeys(t.Scope)
	tech := normalizedKeys(t.Technologies)

	var touched []string
	for _, r := range repos {
		key := Normalize(r.Name)
		if key == "" {
			continue
		}
		changed := false

		if _, ok := t.Images[r.Name]; !ok {
			t.Images[r.Name] = "/static/images/projects/" + key + ".png"
			changed = true
		}
		if !scope[key] {
			t.Scope[key] = []string{}
			scope[key] = true
			changed = true
		}
		if !tech[key] {
			t.Technologies[key] = []string{}
			if r.Language != "" {
				t.Technologies[key] = []string{r.Language}
			}
			tech[key] = true
			changed = true
		}

		if changed {
			touched = append(touched, r.Name)
		}
	}
	return touched
}

func normalizedKeys(m map[string][]string) map[string]bool {
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[Normalize(k)] = true
	}
	return keys
}

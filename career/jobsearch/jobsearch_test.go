package jobsearch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitKeywords(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"golang backend", []string{"golang", "backend"}},
		{"golang, backend,devops", []string{"golang", "backend", "devops"}},
		{"  golang  ", []string{"golang"}},
		{", ,, ", []string{}},
		{"", []string{}},
	}
	for _, c := range cases {
		if got := SplitKeywords(c.query); !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitKeywords(%q) = %v, want %v", c.query, got, c.want)
		}
	}
}

func TestCompositeKeyDistinguishesListings(t *testing.T) {
	a := Listing{Index: 0, ID: "1", Title: "Go Dev", Company: "Acme", Link: "https://x/1", Source: SourceDOU}
	b := a
	if a.CompositeKey() != b.CompositeKey() {
		t.Error("identical listings must share a key")
	}

	b.Source = SourceLinkedIn
	if a.CompositeKey() == b.CompositeKey() {
		t.Error("source must participate in the key")
	}

	c := a
	c.Link = "https://x/2"
	if a.CompositeKey() == c.CompositeKey() {
		t.Error("link must participate in the key")
	}
}

func TestLoadSelectorsOverridesOneSite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selectors.json")
	payload := `{"dou": {"containers": ["li.custom"], "title": ["a.custom"], "company": ["b"], "link": ["a.custom"]}}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write selectors: %v", err)
	}

	selectors, err := LoadSelectors(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(selectors.DOU.Containers) != 1 || selectors.DOU.Containers[0] != "li.custom" {
		t.Errorf("dou override not applied: %v", selectors.DOU.Containers)
	}
	// LinkedIn keeps its built-in recipe.
	if len(selectors.LinkedIn.Containers) == 0 {
		t.Error("linkedin defaults lost")
	}
}

func TestLoadSelectorsEmptyPathReturnsDefaults(t *testing.T) {
	selectors, err := LoadSelectors("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(selectors.DOU.Containers) == 0 || len(selectors.LinkedIn.Containers) == 0 {
		t.Error("defaults missing")
	}
}

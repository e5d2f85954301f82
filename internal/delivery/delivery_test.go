package delivery

import (
	"os"
	"path/filepath"
	"testing"
)

func sampleDataset() Dataset {
	return Dataset{
		Route:     "Mercer",
		FetchedAt: "2026-01-05T08:00:00Z",
		Companies: map[string][]Item{
			"Acme Saw": {
				{PONumber: "P-100", Description: "10in carbide", Quantity: "4"},
			},
			"Keen Edge": {
				{PONumber: "P-101", Description: "12in rip", Quantity: "2", BladeDetails: BladeDetails{ReTipped: "2"}},
			},
			"Burr Bros": {
				{PONumber: "P-102", Description: "14in dado", Quantity: "1"},
			},
		},
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delivery_data.json")
	want := sampleDataset()

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := Load(path)
	if got.Route != want.Route {
		t.Errorf("route = %q, want %q", got.Route, want.Route)
	}
	if len(got.Companies) != 3 {
		t.Fatalf("companies = %d, want 3", len(got.Companies))
	}
	if got.Companies["Keen Edge"][0].BladeDetails.ReTipped != "2" {
		t.Errorf("blade details not preserved")
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	tmp := t.TempDir()

	if !Load(filepath.Join(tmp, "missing.json")).Empty() {
		t.Error("missing file: want empty dataset")
	}

	bad := filepath.Join(tmp, "delivery_data.json")
	if err := os.WriteFile(bad, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Load(bad).Empty() {
		t.Error("malformed file: want empty dataset")
	}
}

func TestCompanyNamesSorted(t *testing.T) {
	names := sampleDataset().CompanyNames()
	want := []string{"Acme Saw", "Burr Bros", "Keen Edge"}
	if len(names) != len(want) {
		t.Fatalf("len = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCountNormalizes(t *testing.T) {
	cases := map[string]string{
		"":     "0",
		"None": "0",
		"0":    "0",
		"3":    "3",
	}
	for raw, want := range cases {
		if got := Count(raw); got != want {
			t.Errorf("Count(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestCursorWraps(t *testing.T) {
	c := NewCursor(sampleDataset())

	if got := c.Current(); got != "Acme Saw" {
		t.Fatalf("initial = %q, want Acme Saw", got)
	}

	// Prev from the first company wraps to the last.
	c.Prev()
	if got := c.Current(); got != "Keen Edge" {
		t.Errorf("prev from first = %q, want Keen Edge", got)
	}

	// Next from the last company wraps to the first.
	c.Next()
	if got := c.Current(); got != "Acme Saw" {
		t.Errorf("next from last = %q, want Acme Saw", got)
	}
}

func TestCursorEmptyDataset(t *testing.T) {
	c := NewCursor(Dataset{})
	c.Next()
	c.Prev()
	if got := c.Current(); got != "" {
		t.Errorf("Current on empty = %q, want \"\"", got)
	}
	if c.Select("Acme Saw") {
		t.Error("Select on empty dataset should report false")
	}
}

func TestCursorSelect(t *testing.T) {
	c := NewCursor(sampleDataset())
	if !c.Select("Burr Bros") {
		t.Fatal("Select known company failed")
	}
	if got := c.Current(); got != "Burr Bros" {
		t.Errorf("current = %q, want Burr Bros", got)
	}
	if c.Select("Nobody") {
		t.Error("Select unknown company should report false")
	}
	if got := c.Current(); got != "Burr Bros" {
		t.Errorf("unknown Select moved cursor to %q", got)
	}
}

func TestCursorResetKeepsSelection(t *testing.T) {
	ds := sampleDataset()
	c := NewCursor(ds)
	c.Select("Keen Edge")

	// Same company present in the fresh dataset: selection survives.
	c.Reset(ds)
	if got := c.Current(); got != "Keen Edge" {
		t.Errorf("after reset = %q, want Keen Edge", got)
	}

	// Company gone: cursor returns to the first entry.
	delete(ds.Companies, "Keen Edge")
	c.Reset(ds)
	if got := c.Current(); got != "Acme Saw" {
		t.Errorf("after reset without company = %q, want Acme Saw", got)
	}
}

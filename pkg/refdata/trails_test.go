package refdata

import "testing"

func TestTrailsForSector(t *testing.T) {
	tests := []struct {
		sectorID   string
		wantCount  int
		wantSample string
	}{
		{"mont-orford", 30, "Grande Coulée"},
		{"giroux-nord", 18, "Magog"},
		{"giroux-est", 10, "Sherbrooke"},
		{"alfred-desrochers", 7, "Toussiski"},
		{"remontees", 7, "Rapido"},
		{"randonnee-alpine", 11, "Le Lynx"},
		{"unknown", 0, ""},
	}

	for _, test := range tests {
		trails := TrailsForSector(test.sectorID)
		if len(trails) != test.wantCount {
			t.Errorf("sector %s: expected %d trails, got %d", test.sectorID, test.wantCount, len(trails))
		}
		if test.wantSample != "" && !IsValidTrail(test.sectorID, test.wantSample) {
			t.Errorf("sector %s: expected trail %q to be valid", test.sectorID, test.wantSample)
		}
	}
}

func TestTrailDerivationIsDeterministic(t *testing.T) {
	first := TrailsForSector("giroux-est")
	second := TrailsForSector("giroux-est")
	if len(first) != len(second) {
		t.Fatalf("trail lists differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("trail list not stable at index %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestFormatLocation(t *testing.T) {
	tests := []struct {
		sectorID string
		trail    string
		offPiste bool
		expected string
	}{
		{"mont-orford", "Maxi", false, "Mont-Orford - Maxi"},
		{"mont-orford", "Maxi", true, "Mont-Orford - Maxi (Hors-piste)"},
		{"giroux-nord", "", false, "Mont Giroux Nord"},
	}

	for _, test := range tests {
		got := FormatLocation(test.sectorID, test.trail, test.offPiste)
		if got != test.expected {
			t.Errorf("FormatLocation(%s, %s, %v): expected %q, got %q", test.sectorID, test.trail, test.offPiste, test.expected, got)
		}
	}
}

func TestIsValidSector(t *testing.T) {
	if !IsValidSector("remontees") {
		t.Error("expected remontees to be a valid sector")
	}
	if IsValidSector("mont-tremblant") {
		t.Error("expected mont-tremblant to be invalid")
	}
	if len(AllSectors()) != 6 {
		t.Errorf("expected 6 sectors, got %d", len(AllSectors()))
	}
}

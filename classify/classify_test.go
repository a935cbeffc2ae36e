package classify

import (
	"testing"

	"github.com/akoQassym/grandmaster-ai/app/models"
)

func TestLookupCoversClosedSet(t *testing.T) {
	all := []models.Classification{
		models.Brilliant, models.Excellent, models.Good, models.Neutral,
		models.Inaccuracy, models.Mistake, models.Blunder, models.MissedWin,
	}
	for _, c := range all {
		info := Lookup(c)
		if info.Label == "" || info.Color == "" {
			t.Fatalf("incomplete metadata for %s: %+v", c, info)
		}
	}
}

func TestLookupSeverityOrdering(t *testing.T) {
	if Lookup(models.Brilliant).Severity >= Lookup(models.Blunder).Severity {
		t.Fatalf("brilliant must rank better than blunder")
	}
	if Lookup(models.Inaccuracy).Severity >= Lookup(models.Mistake).Severity {
		t.Fatalf("inaccuracy must rank better than mistake")
	}
}

func TestLookupUnknownFallsBackToNeutral(t *testing.T) {
	got := Lookup(models.Classification("Dubious"))
	if got != Lookup(models.Neutral) {
		t.Fatalf("unknown classification = %+v, want the Neutral entry", got)
	}
}

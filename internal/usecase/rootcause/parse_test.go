package rootcause

import (
	"strings"
	"testing"

	"github.com/emosense-cloud/emosense/internal/domain"
)

func testClusters() []domain.Cluster {
	return []domain.Cluster{
		{ID: 0, ThemeName: "Pricing Concerns", Size: 12},
		{ID: 2, ThemeName: "Technical Issues", Size: 8},
	}
}

const wellFormedResponse = `Here is the analysis.

## Cluster 1: Pricing Concerns

**Root Cause:**
Customers feel the subscription doubled without added value.

**Cause-Effect Logic:**
Because prices rose without new features, customers feel cheated.

**Evidence from Comments:**
- "price doubled overnight"
- "paying more for the same thing"

**Actionable Insight:**
Pair any price change with a visible feature release.

---
## Cluster 2: Technical Issues

**Root Cause:**
The app crashes because large exports exhaust memory.

**Evidence from Comments:**
- "crashes when exporting large files"

**Actionable Insight:**
Stream exports to disk instead of buffering.
`

func TestParseAnalysis_WellFormed(t *testing.T) {
	records := parseAnalysis(wellFormedResponse, testClusters())
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ClusterID != 0 || first.ThemeName != "Pricing Concerns" || first.ClusterSize != 12 {
		t.Errorf("cluster metadata not carried over: %+v", first)
	}
	if first.RootCause != "Customers feel the subscription doubled without added value." {
		t.Errorf("unexpected root cause: %q", first.RootCause)
	}
	if len(first.Evidence) != 2 || first.Evidence[0] != "price doubled overnight" {
		t.Errorf("unexpected evidence: %v", first.Evidence)
	}
	if first.ActionableInsight != "Pair any price change with a visible feature release." {
		t.Errorf("unexpected insight: %q", first.ActionableInsight)
	}
	if first.Confidence != domain.ParseFull {
		t.Errorf("expected full confidence, got %q", first.Confidence)
	}

	second := records[1]
	if second.ClusterID != 2 {
		t.Errorf("expected positional match to second cluster, got id %d", second.ClusterID)
	}
	if second.Confidence != domain.ParseFull {
		t.Errorf("expected full confidence, got %q", second.Confidence)
	}
}

func TestParseAnalysis_MissingFieldIsPartial(t *testing.T) {
	response := `## Cluster 1: Pricing Concerns

**Root Cause:**
Prices rose without explanation.

**Actionable Insight:**
Explain the change.
`
	records := parseAnalysis(response, testClusters())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Confidence != domain.ParsePartial {
		t.Errorf("expected partial confidence, got %q", records[0].Confidence)
	}
	if len(records[0].Evidence) != 0 {
		t.Errorf("expected no evidence, got %v", records[0].Evidence)
	}
}

func TestParseAnalysis_ReorderedFields(t *testing.T) {
	response := `## Cluster 1: Pricing Concerns

**Evidence from Comments:**
- "too expensive now"

**Actionable Insight:**
Revisit the pricing page copy.

**Root Cause:**
The pricing page hides the total annual cost.
`
	records := parseAnalysis(response, testClusters())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.RootCause != "The pricing page hides the total annual cost." {
		t.Errorf("unexpected root cause: %q", rec.RootCause)
	}
	if len(rec.Evidence) != 1 || rec.Evidence[0] != "too expensive now" {
		t.Errorf("unexpected evidence: %v", rec.Evidence)
	}
	if rec.Confidence != domain.ParseFull {
		t.Errorf("expected full confidence, got %q", rec.Confidence)
	}
}

func TestParseAnalysis_MalformedSectionFallsBack(t *testing.T) {
	long := strings.Repeat("the model rambled on without any structure ", 10)
	response := "## Cluster 1: Pricing Concerns\n\n" + long

	records := parseAnalysis(response, testClusters())
	if len(records) != 1 {
		t.Fatalf("expected a degraded record, got %d", len(records))
	}
	rec := records[0]
	if rec.Confidence != domain.ParseFallback {
		t.Errorf("expected fallback confidence, got %q", rec.Confidence)
	}
	if !strings.HasSuffix(rec.RootCause, "...") {
		t.Errorf("expected truncated narrative, got %q", rec.RootCause)
	}
	if len(rec.RootCause) > fallbackLength+3 {
		t.Errorf("narrative too long: %d bytes", len(rec.RootCause))
	}
	if len(rec.Evidence) != 0 || rec.ActionableInsight != "" {
		t.Errorf("fallback record should carry no evidence or insight: %+v", rec)
	}
}

func TestParseAnalysis_MissingSectionOmitsCluster(t *testing.T) {
	response := `## Cluster 1: Pricing Concerns

**Root Cause:**
Only one section came back.

**Evidence from Comments:**
- "quote"

**Actionable Insight:**
Do something.
`
	records := parseAnalysis(response, testClusters())
	if len(records) != 1 {
		t.Fatalf("expected only the matched cluster, got %d records", len(records))
	}
	if records[0].ClusterID != 0 {
		t.Errorf("expected first cluster matched, got id %d", records[0].ClusterID)
	}
}

func TestParseAnalysis_NoSections(t *testing.T) {
	if records := parseAnalysis("nothing structured here", testClusters()); records != nil {
		t.Errorf("expected nil, got %v", records)
	}
}

func TestParseAnalysis_ExtraSectionsIgnored(t *testing.T) {
	response := strings.Repeat("## Cluster N\n\n**Root Cause:**\nSomething.\n", 4)
	records := parseAnalysis(response, testClusters()[:1])
	if len(records) != 1 {
		t.Fatalf("expected sections beyond the cluster list dropped, got %d", len(records))
	}
}

func TestParseAnalysis_EvidenceCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("## Cluster 1: Pricing Concerns\n\n**Root Cause:**\nCause.\n\n**Evidence from Comments:**\n")
	for i := 0; i < 8; i++ {
		b.WriteString("- \"quote\"\n")
	}
	b.WriteString("\n**Actionable Insight:**\nAct.\n")

	records := parseAnalysis(b.String(), testClusters())
	if len(records[0].Evidence) != maxEvidence {
		t.Errorf("expected evidence capped at %d, got %d", maxEvidence, len(records[0].Evidence))
	}
}

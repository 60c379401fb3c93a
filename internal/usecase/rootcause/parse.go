package rootcause

import (
	"strings"

	"github.com/emosense-cloud/emosense/internal/domain"
)

const (
	sectionMarker  = "## Cluster"
	maxEvidence    = 5
	fallbackLength = 200
)

// parseAnalysis converts the generator's free-text response into one record
// per cluster section. Sections are matched to clusters by position: the
// first section belongs to the first cluster given, and so on. Clusters the
// model produced no section for are omitted. A section whose labeled fields
// cannot be found still yields a record, carrying the raw section text as a
// degraded narrative.
func parseAnalysis(text string, clusters []domain.Cluster) []domain.RootCauseRecord {
	sections := strings.Split(text, sectionMarker)
	if len(sections) < 2 {
		return nil
	}

	records := make([]domain.RootCauseRecord, 0, len(sections)-1)
	for i, section := range sections[1:] {
		if i >= len(clusters) {
			break
		}
		cluster := clusters[i]

		rec := parseSection(section)
		rec.ClusterID = cluster.ID
		rec.ThemeName = cluster.ThemeName
		rec.ClusterSize = cluster.Size
		records = append(records, rec)
	}
	return records
}

// parseSection runs a line-oriented scan over one cluster section. A field
// label switches the accumulation target; quote lines feed evidence while
// that field is active.
func parseSection(section string) domain.RootCauseRecord {
	var (
		rootCause  []string
		insight    []string
		evidence   []string
		target     *[]string
		inEvidence bool
	)

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.Contains(trimmed, "**Root Cause:**"):
			target, inEvidence = &rootCause, false
			if rest := afterLabel(trimmed, "**Root Cause:**"); rest != "" {
				rootCause = append(rootCause, rest)
			}
			continue
		case strings.Contains(trimmed, "**Evidence from Comments:**"):
			target, inEvidence = nil, true
			continue
		case strings.Contains(trimmed, "**Actionable Insight:**"):
			target, inEvidence = &insight, false
			if rest := afterLabel(trimmed, "**Actionable Insight:**"); rest != "" {
				insight = append(insight, rest)
			}
			continue
		case strings.HasPrefix(trimmed, "**"):
			// Another labeled field we don't extract.
			target, inEvidence = nil, false
			continue
		}

		if inEvidence {
			if quote := extractQuote(trimmed); quote != "" {
				evidence = append(evidence, quote)
			}
			continue
		}
		if target != nil && trimmed != "" && trimmed != "---" {
			*target = append(*target, trimmed)
		}
	}

	if len(evidence) > maxEvidence {
		evidence = evidence[:maxEvidence]
	}

	rec := domain.RootCauseRecord{
		RootCause:         strings.Join(rootCause, " "),
		Evidence:          evidence,
		ActionableInsight: strings.Join(insight, " "),
	}
	switch {
	case rec.RootCause == "":
		rec.RootCause = truncateSection(section)
		rec.Evidence = nil
		rec.ActionableInsight = ""
		rec.Confidence = domain.ParseFallback
	case len(rec.Evidence) == 0 || rec.ActionableInsight == "":
		rec.Confidence = domain.ParsePartial
	default:
		rec.Confidence = domain.ParseFull
	}
	return rec
}

func afterLabel(line, label string) string {
	idx := strings.Index(line, label)
	return strings.TrimSpace(line[idx+len(label):])
}

// extractQuote pulls the quoted text out of an evidence bullet.
func extractQuote(line string) string {
	if !strings.HasPrefix(line, "- ") {
		return ""
	}
	quote := strings.TrimSpace(strings.TrimPrefix(line, "- "))
	quote = strings.Trim(quote, `"“”`)
	return strings.TrimSpace(quote)
}

func truncateSection(section string) string {
	s := strings.TrimSpace(section)
	if len(s) <= fallbackLength {
		return s
	}
	return s[:fallbackLength] + "..."
}

package report

import (
	"strings"
	"time"

	"apv/internal/domain"
)

// Aggregate merges the pre and post phase results into one evaluation
// record with the derived resolution verdict.
//
// The verdict is true iff the pre phase observed errors AND the post phase
// terminated clean. A pre phase that was already clean is an explicit
// branch yielding false with a distinguished reason, so a no-op patch is
// never credited as a fix.
func Aggregate(pre, post domain.ValidationResult, diffText, diffPath string) domain.EvaluationRecord {
	record := domain.EvaluationRecord{
		Pre:           pre,
		Post:          post,
		DiffPath:      diffPath,
		ChangeApplied: strings.TrimSpace(diffText) != "",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	if pre.Status == domain.StatusClean {
		record.Resolved = false
		record.Reason = domain.ReasonNothingToResolve
		return record
	}

	record.Resolved = pre.Final.ErrorCount() > 0 && post.Status == domain.StatusClean
	return record
}

// Results projects a record onto the canonical results.json schema.
func Results(record domain.EvaluationRecord) domain.ResultsDocument {
	return domain.ResultsDocument{
		PreErrors:     record.Pre.Final.ErrorCount(),
		PostErrors:    record.Post.Final.ErrorCount(),
		TestsPassing:  record.Post.Status == domain.StatusClean,
		ChangeApplied: record.ChangeApplied,
	}
}

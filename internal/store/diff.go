package store

import (
	"encoding/json"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// chunk is one change between two serialized reports.
type chunk struct {
	Type    string `json:"type"` // "added" | "removed"
	Content string `json:"content"`
}

// reportDiff is the stored diff document between two reports of one page.
type reportDiff struct {
	BaseID string  `json:"base_id"`
	HeadID string  `json:"head_id"`
	Chunks []chunk `json:"chunks"`
}

// computeReportDiffJSON computes a semantic text diff between two serialized
// report documents and returns it as a JSON string. Equal chunks are
// dropped; what remains is the audit trail of which score, risk and
// recommendation fields moved between two consecutive analyses.
func computeReportDiffJSON(baseID, headID string, base, head []byte) (string, error) {
	dmp := diffmatchpatch.New()

	diffs := dmp.DiffMain(string(base), string(head), true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	chunks := make([]chunk, 0)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			chunks = append(chunks, chunk{Type: "added", Content: d.Text})
		case diffmatchpatch.DiffDelete:
			chunks = append(chunks, chunk{Type: "removed", Content: d.Text})
		case diffmatchpatch.DiffEqual:
			// Context is reconstructible from the stored reports themselves.
			continue
		}
	}

	out, err := json.Marshal(reportDiff{BaseID: baseID, HeadID: headID, Chunks: chunks})
	if err != nil {
		return "", fmt.Errorf("marshal report diff: %w", err)
	}
	return string(out), nil
}

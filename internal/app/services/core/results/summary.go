package results

import (
	"strings"

	"nhscribe-service/internal/app/models"
)

// SummarizeBatch renders one line per row as
// "testName: value unit (Ref: low-high) [flag]". Empty optional parts are
// left out and the reference part needs both bounds.
func SummarizeBatch(batch *models.ResultBatch) string {
	if batch.IsEmpty() {
		return ""
	}

	lines := make([]string, 0, len(batch.Results))
	for _, row := range batch.Results {
		lines = append(lines, summarizeRow(row))
	}
	return strings.Join(lines, "\n")
}

func summarizeRow(row models.ResultRow) string {
	var builder strings.Builder
	builder.WriteString(strings.TrimSpace(row.TestName))
	builder.WriteString(":")

	if value := strings.TrimSpace(row.Value); value != "" {
		builder.WriteString(" ")
		builder.WriteString(value)
	}
	if unit := strings.TrimSpace(row.Unit); unit != "" {
		builder.WriteString(" ")
		builder.WriteString(unit)
	}

	low, high := strings.TrimSpace(row.ReferenceLow), strings.TrimSpace(row.ReferenceHigh)
	if low != "" && high != "" {
		builder.WriteString(" (Ref: ")
		builder.WriteString(low)
		builder.WriteString("-")
		builder.WriteString(high)
		builder.WriteString(")")
	}
	if flag := strings.TrimSpace(row.Flag); flag != "" {
		builder.WriteString(" [")
		builder.WriteString(flag)
		builder.WriteString("]")
	}
	return builder.String()
}

// SeedFreeText proposes the batch summary for the free text field. It only
// does so when the field is blank and the batch has rows, so clinician text
// is never replaced.
func SeedFreeText(current string, batch *models.ResultBatch) (string, bool) {
	if strings.TrimSpace(current) != "" || batch.IsEmpty() {
		return current, false
	}
	return SummarizeBatch(batch), true
}

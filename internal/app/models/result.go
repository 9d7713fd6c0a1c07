package models

import "time"

type ResultRow struct {
	TestName      string `json:"test_name"`
	Value         string `json:"value"`
	Unit          string `json:"unit,omitempty"`
	Flag          string `json:"flag,omitempty"`
	ReferenceLow  string `json:"reference_low,omitempty"`
	ReferenceHigh string `json:"reference_high,omitempty"`
	SourceFile    string `json:"source_file,omitempty"`
	BatchID       string `json:"batch_id,omitempty"`
}

// ResultBatch is one ingestion run. Batches are never mutated after ingestion
// returns them; use Clone before handing one to another owner.
type ResultBatch struct {
	BatchID    string      `json:"batch_id"`
	SourceFile string      `json:"source_file"`
	Results    []ResultRow `json:"results"`
}

func (b *ResultBatch) IsEmpty() bool {
	return b == nil || len(b.Results) == 0
}

func (b *ResultBatch) Clone() *ResultBatch {
	if b == nil {
		return nil
	}
	clone := *b
	clone.Results = append([]ResultRow(nil), b.Results...)
	return &clone
}

// ResultFile is a tabular results upload.
type ResultFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// IngestedResults is what either ingestion mode hands to letter generation.
type IngestedResults struct {
	DataType   string       `json:"data_type"`
	FreeText   string       `json:"free_text,omitempty"`
	Batch      *ResultBatch `json:"batch,omitempty"`
	IngestedAt time.Time    `json:"ingested_at"`
}

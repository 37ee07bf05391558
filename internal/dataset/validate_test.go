package dataset

import (
	"strings"
	"testing"
)

func TestValidate_CleanArtifact(t *testing.T) {
	if err := Validate(sampleDataset(), 1); err != nil {
		t.Errorf("expected clean validation, got: %v", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Dataset)
		wantErr string
	}{
		{"chunk count mismatch", func(d *Dataset) { d.ChunkCount = 7 }, "chunkCount"},
		{"query count mismatch", func(d *Dataset) { d.QueryCount = 7 }, "queryCount"},
		{"duplicate chunk id", func(d *Dataset) { d.Chunks[1].ID = d.Chunks[0].ID }, "duplicate"},
		{"dangling chunkId", func(d *Dataset) { d.Queries[0].ChunkIDs[0] = "q_99_c01" }, "unknown chunk"},
		{"relevant outside chunkIds", func(d *Dataset) { d.Queries[0].RelevantIDs = []string{"q_00_c09"} }, "not among"},
		{"score key outside chunkIds", func(d *Dataset) { d.Queries[0].RelevanceScores["q_00_c09"] = 1 }, "not among"},
		{"wrong dims", func(d *Dataset) { d.Chunks[0].Embedding = []float32{1} }, "dims"},
		{"not unit norm", func(d *Dataset) { d.Queries[0].Embedding = []float32{3, 4} }, "norm"},
		{"too few positives", func(d *Dataset) {}, "relevant chunks"},
	}
	for _, tc := range cases {
		d := sampleDataset()
		tc.mutate(d)
		minPositives := 1
		if tc.name == "too few positives" {
			minPositives = 2
		}
		err := Validate(d, minPositives)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestValidate_SkipsPositiveCheckWhenZero(t *testing.T) {
	d := sampleDataset()
	d.Queries[0].RelevantIDs = nil
	if err := Validate(d, 0); err != nil {
		t.Errorf("minPositives=0 must skip the positives check, got: %v", err)
	}
}

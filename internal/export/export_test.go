package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/qbdeck/internal/pipeline"
	"github.com/abhisek/qbdeck/internal/question"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Profile: "fcc",
		Pages:   3,
		Records: []question.Record{{
			ID: "T1A01", Question: "Q.", ChoiceA: "A. a", ChoiceB: "B. b",
			ChoiceC: "C. c", ChoiceD: "D. d", Answer: "C. c", Tags: []string{"T1-Basics"},
		}},
		Defects: []question.Defect{{
			Kind: question.DefectMissingTag, Index: 0, ID: "T1A01", Message: "no section header",
		}},
	}
}

func TestFromResultNormalizesNil(t *testing.T) {
	doc := FromResult("x.pdf", &pipeline.Result{Profile: "drone"})
	assert.NotNil(t, doc.Records)
	assert.NotNil(t, doc.Defects)

	data, err := Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"records": []`)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "fcc.json")
	doc := FromResult("pool.pdf", sampleResult())

	require.NoError(t, WriteFile(path, doc))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"profile":`},
		{"missing records", `{"profile":"drone","pages":1,"defects":[]}`},
		{"unknown field", `{"profile":"drone","pages":1,"records":[],"defects":[],"extra":1}`},
		{"negative pages", `{"profile":"drone","pages":-1,"records":[],"defects":[]}`},
		{"bad defect kind", `{"profile":"drone","pages":0,"records":[],"defects":[{"kind":"oops","index":0,"message":"m"}]}`},
		{"record without tags", `{"profile":"drone","pages":0,"defects":[],"records":[
			{"id":"1.","question":"q","choiceA":"a","choiceB":"b","choiceC":"c","choiceD":"d","answer":"a"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.data))
			require.Error(t, err)
			var invalid *InvalidDocumentError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestUnmarshalAcceptsMinimal(t *testing.T) {
	doc, err := Unmarshal([]byte(`{"profile":"drone","pages":0,"records":[],"defects":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "drone", doc.Profile)
	assert.Empty(t, doc.Records)
}

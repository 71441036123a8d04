package pipeline

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/wikicaptions/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func sampleRecords() []types.ImageRecord {
	return []types.ImageRecord{
		{Filename: "File:A.jpg"},
		{Filename: "File:B.jpg", FromTemplate: true},
		{Filename: "File:C.jpg"},
		{Filename: "File:D.jpg", FromTemplate: true},
		{Filename: "File:E.jpg"},
	}
}

func names(recs []types.ImageRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Filename)
	}
	return out
}

func TestForConfig(t *testing.T) {
	kept, err := ForConfig(false, testLogger).ProcessAll(sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, names(sampleRecords()), names(kept))

	recs := sampleRecords()
	kept, err = ForConfig(true, testLogger).ProcessAll(recs)
	require.NoError(t, err)
	assert.Equal(t, []string{"File:A.jpg", "File:C.jpg", "File:E.jpg"}, names(kept))
	assert.Len(t, recs, 5, "input is not modified")
}

func TestTemplateFilterDropsEverything(t *testing.T) {
	kept, err := ForConfig(true, testLogger).ProcessAll([]types.ImageRecord{{Filename: "File:T.jpg", FromTemplate: true}})
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestPipelineTemplateFilter(t *testing.T) {
	p := New(testLogger)
	p.Use(&TemplateFilterMiddleware{})
	require.Equal(t, 1, p.Len())

	kept, err := p.ProcessAll(sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, []string{"File:A.jpg", "File:C.jpg", "File:E.jpg"}, names(kept))
}

func TestEmptyPipelineKeepsEverything(t *testing.T) {
	kept, err := New(testLogger).ProcessAll(sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, names(sampleRecords()), names(kept))
}

type failingMiddleware struct{}

func (failingMiddleware) Name() string { return "boom" }

func (failingMiddleware) Process(rec *types.ImageRecord) (*types.ImageRecord, error) {
	return nil, errors.New("exploded")
}

func TestPipelineErrorNamesStage(t *testing.T) {
	p := New(testLogger)
	p.Use(failingMiddleware{})

	_, err := p.ProcessAll(sampleRecords())
	var pe *types.PipelineError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "boom", pe.Stage)
}

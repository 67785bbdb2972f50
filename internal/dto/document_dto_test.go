package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryRequestToOptionsDefaults(t *testing.T) {
	req := &QueryRequest{Query: "contract"}

	opts := req.ToOptions(7, 0.4)
	assert.Equal(t, 7, opts.TopK)
	assert.InDelta(t, 0.4, opts.MinScore, 1e-9)
	assert.True(t, opts.ExpandQuery)
	assert.True(t, opts.Rerank)
	assert.True(t, opts.IncludeSourceInfo)
}

func TestQueryRequestToOptionsOverrides(t *testing.T) {
	off := false
	req := &QueryRequest{
		Query:       "contract",
		TopK:        2,
		MinScore:    0.6,
		ExpandQuery: &off,
	}

	opts := req.ToOptions(7, 0.4)
	assert.Equal(t, 2, opts.TopK)
	assert.InDelta(t, 0.6, opts.MinScore, 1e-9)
	assert.False(t, opts.ExpandQuery)
	assert.True(t, opts.Rerank)
}

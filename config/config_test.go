package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_ReturnsDocumentedDefaults(t *testing.T) {
	opts := Default()
	assert.Equal(t, 1024*16, opts.StackSize)
	assert.Equal(t, 256, opts.FramesMax)
	assert.Equal(t, 1<<20, opts.InitialGCThreshold)
	assert.Equal(t, 2.0, opts.GCHeapGrowFactor)
	assert.False(t, opts.GCStressMode)
}

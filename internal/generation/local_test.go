package generation

import (
	"testing"

	"github.com/knights-analytics/hugot/pipelines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	pipeline := &pipelines.TextGenerationPipeline{}

	applyOptions(pipeline, Options{MaxNewTokens: 128, Temperature: 0.7, TopP: 0.9, NumSequences: 1})

	assert.Equal(t, 128, pipeline.MaxLength)
	require.NotNil(t, pipeline.Temperature)
	assert.Equal(t, 0.7, *pipeline.Temperature)
	require.NotNil(t, pipeline.TopP)
	assert.Equal(t, 0.9, *pipeline.TopP)
}

func TestApplyOptionsZeroKnobsLeavePipelineAlone(t *testing.T) {
	temperature := 0.5
	pipeline := &pipelines.TextGenerationPipeline{MaxLength: 64, Temperature: &temperature}

	applyOptions(pipeline, Options{})

	assert.Equal(t, 64, pipeline.MaxLength)
	require.NotNil(t, pipeline.Temperature)
	assert.Equal(t, 0.5, *pipeline.Temperature)
	assert.Nil(t, pipeline.TopP)
}

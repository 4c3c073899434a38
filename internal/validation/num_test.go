package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumRange_InclusiveBounds(t *testing.T) {
	ctx := newTestContext(t)
	r := Range{Min: 0, Max: 10}

	assert.Nil(t, NewNum(ctx, 0).Range(r))
	assert.Nil(t, NewNum(ctx, 10).Range(r))

	issue := NewNum(ctx, 10.5).Range(r)
	require.NotNil(t, issue)
	assert.Equal(t, "value 10.5 is outside the range [0, 10]", ctx.Message(issue))
}

func TestNumRange_OpenBoundRendersInfinity(t *testing.T) {
	ctx := newTestContext(t)

	issue := NewNum(ctx, -1).Range(Range{Min: 0, Max: math.Inf(1)})
	require.NotNil(t, issue)
	assert.Equal(t, "value -1 is outside the range [0, +infinity]", ctx.Message(issue))
}

func TestNumBanned(t *testing.T) {
	ctx := newTestContext(t)

	assert.Nil(t, NewNum(ctx, 1).Banned([]float64{0}))

	issue := NewNum(ctx, 0).Banned([]float64{0, 2})
	require.NotNil(t, issue)
	assert.Equal(t, []float64{0}, issue.Fields["Banned"])
}

func TestNumCheck(t *testing.T) {
	ctx := newTestContext(t)

	assert.Empty(t, NewNum(ctx, 3).Check(AnyNumber, nil))

	issues := NewNum(ctx, 0).Check(Range{Min: 1, Max: 2}, []float64{0})
	assert.Equal(t, []string{"out_of_range", "banned"}, issueKeys(issues))
}

package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestController_PromoteAdvancesAndRecomputesGap(t *testing.T) {
	c := NewController(10)
	assert.Equal(t, Stage1, c.Current)
	assert.False(t, c.NGTight())

	ok := c.Promote(100, 20)
	assert.True(t, ok)
	assert.Equal(t, Stage2, c.Current)
	assert.True(t, c.NGTight())
	assert.Equal(t, 80.0, c.Gap)
}

func TestController_PromoteStopsAtEnumerate(t *testing.T) {
	c := NewController(1)
	for i := 0; i < 10; i++ {
		c.Promote(10, 0)
	}
	assert.Equal(t, StageEnumerate, c.Current)
	assert.False(t, c.Promote(10, 0))
}

func TestController_RollbackResetsToStage1(t *testing.T) {
	c := NewController(10)
	c.Promote(10, 0)
	c.Promote(10, 0)
	c.Rollback(5, 1)
	assert.Equal(t, Stage1, c.Current)
	assert.Equal(t, 4.0, c.Gap)
}

func TestController_NoteIterationBudget(t *testing.T) {
	c := NewController(2)
	assert.False(t, c.NoteIteration())
	assert.False(t, c.NoteIteration())
	assert.True(t, c.NoteIteration())
}

func TestController_StageGates(t *testing.T) {
	c := NewController(0)
	assert.False(t, c.HeuristicFixingEnabled())
	assert.False(t, c.ExactEliminationEnabled())
	assert.False(t, c.JumpArcsEnabled())

	c.Current = Stage3
	assert.True(t, c.HeuristicFixingEnabled())
	assert.False(t, c.ExactEliminationEnabled())

	c.Current = Stage4
	assert.True(t, c.ExactEliminationEnabled())
	assert.True(t, c.JumpArcsEnabled())
}

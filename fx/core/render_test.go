package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_OneDrawPerNonEmptyGroup(t *testing.T) {
	m := newTestManager()
	for _, name := range []string{"sparks", "empty", "blood"} {
		require.NoError(t, m.CreateGroup(name, ""))
	}
	_, _ = m.Emit("sparks", mgl32.Vec3{}, 12)
	_, _ = m.Emit("blood", mgl32.Vec3{}, 3)
	m.Update(NominalStep, identityCamera)

	sub := &recordingSubmitter{}
	draws := m.Submit(sub)

	assert.Equal(t, 2, draws)
	assert.Equal(t, []drawCall{
		{group: "blood", vertexCount: QuadVertexCount, instanceCount: 3},
		{group: "sparks", vertexCount: QuadVertexCount, instanceCount: 12},
	}, sub.calls)
}

func TestSubmit_BeforeUpdateDrawsNothing(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.CreateGroup("g", ""))
	_, _ = m.Emit("g", mgl32.Vec3{}, 5)

	// Emission alone does not produce instance records.
	sub := &recordingSubmitter{}
	assert.Zero(t, m.Submit(sub))
	assert.Empty(t, sub.calls)
}

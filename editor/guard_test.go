package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lbe/editor"
)

func TestSyncGuard_Cycle(t *testing.T) {
	var g editor.SyncGuard

	_, emitted := g.LastEmitted()
	assert.False(t, emitted)
	assert.Equal(t, editor.GuardIdle, g.State())
	assert.True(t, g.Accept("<p>A</p>"), "nothing emitted yet, everything is accepted")

	g.Begin("<p>B</p>")
	assert.Equal(t, editor.GuardEmitting, g.State())
	assert.False(t, g.Accept("<p>B</p>"), "echo")

	_, ok := g.End()
	assert.False(t, ok)
	assert.Equal(t, editor.GuardIdle, g.State())

	last, emitted := g.LastEmitted()
	assert.True(t, emitted)
	assert.Equal(t, "<p>B</p>", last)

	assert.False(t, g.Accept("<p>B</p>"), "echo after emission")
	assert.True(t, g.Accept("<p>C</p>"))
}

func TestSyncGuard_PendingChange(t *testing.T) {
	var g editor.SyncGuard

	g.Begin("<p>B</p>")
	assert.False(t, g.Accept("<p>C</p>"), "held while emitting")

	pending, ok := g.End()
	assert.True(t, ok)
	assert.Equal(t, "<p>C</p>", pending)

	_, ok = g.End()
	assert.False(t, ok, "pending change is returned once")
}

func TestSyncGuard_Reset(t *testing.T) {
	var g editor.SyncGuard

	g.Begin("<p>B</p>")
	g.Reset()
	assert.Equal(t, editor.GuardIdle, g.State())
	assert.True(t, g.Accept("<p>B</p>"))
	assert.Equal(t, "emitting", editor.GuardEmitting.String())
}

func TestSyncGuard_Forget(t *testing.T) {
	var g editor.SyncGuard

	g.Begin("<p>B</p>")
	g.End()
	g.Forget()

	_, emitted := g.LastEmitted()
	assert.False(t, emitted)
	assert.True(t, g.Accept("<p>B</p>"), "earlier emission is not an echo anymore")
}

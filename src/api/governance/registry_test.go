package governance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/treasury-gov/src/api/governance"
)

func TestRegisterRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.addVoter(t, "alice", 1)
	ctx := context.Background()

	err := f.svc.Register(ctx, "alice", "bob", 5)
	assert.ErrorIs(t, err, governance.ErrUnauthorized)

	err = f.svc.Register(ctx, "nobody", "bob", 5)
	assert.ErrorIs(t, err, governance.ErrUnauthorized)
}

func TestRegisterAndDeactivate(t *testing.T) {
	f := newFixture(t)
	f.addAdmin(t, "root")
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "root", "bob", 5))

	w, err := f.svc.WeightOf("bob")
	require.NoError(t, err)
	assert.Equal(t, int64(5), w)

	err = f.svc.Register(ctx, "root", "bob", 9)
	assert.ErrorIs(t, err, governance.ErrAlreadyRegistered)

	require.NoError(t, f.svc.Deactivate(ctx, "root", "bob"))
	_, err = f.svc.WeightOf("bob")
	assert.ErrorIs(t, err, governance.ErrNotRegistered)

	// The identity is retired, not freed for reuse.
	err = f.svc.Register(ctx, "root", "bob", 1)
	assert.ErrorIs(t, err, governance.ErrAlreadyRegistered)

	err = f.svc.Deactivate(ctx, "root", "ghost")
	assert.ErrorIs(t, err, governance.ErrNotRegistered)
}

func TestRegisterDefaultsWeight(t *testing.T) {
	f := newFixture(t)
	f.addAdmin(t, "root")

	require.NoError(t, f.svc.Register(context.Background(), "root", "bob", 0))
	w, err := f.svc.WeightOf("bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), w)
}

func TestIsAdmin(t *testing.T) {
	f := newFixture(t)
	f.addAdmin(t, "root")
	f.addVoter(t, "alice", 1)

	assert.True(t, f.svc.IsAdmin("root"))
	assert.False(t, f.svc.IsAdmin("alice"))
	assert.False(t, f.svc.IsAdmin("ghost"))

	require.NoError(t, f.svc.Deactivate(context.Background(), "root", "root"))
	assert.False(t, f.svc.IsAdmin("root"))
}

package pawn_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/pkg/clock"
	pawnrepo "github.com/Toakan-Network/RW-MassAffect/internal/repositories/pawn"
	"github.com/Toakan-Network/RW-MassAffect/internal/testutils"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	fixed := &clock.Fixed{At: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := pawnrepo.NewInMemory(fixed)

	t.Run("put then get returns a copy", func(t *testing.T) {
		p := testutils.CreateTestPawn()
		_, err := repo.Put(ctx, pawnrepo.PutInput{Pawn: p})
		require.NoError(t, err)

		got, err := repo.Get(ctx, pawnrepo.GetInput{ID: p.ID})
		require.NoError(t, err)
		assert.Equal(t, p, got.Pawn)

		got.Pawn.Label = "changed"
		again, err := repo.Get(ctx, pawnrepo.GetInput{ID: p.ID})
		require.NoError(t, err)
		assert.Equal(t, p.Label, again.Pawn.Label)
	})

	t.Run("stored snapshot is isolated from callers", func(t *testing.T) {
		p := testutils.CreateTestRescuer()
		p.ID = "pawn-isolated"
		p.Gear = []pawn.Apparel{{Label: "parka", Mass: 3}}
		p.Carrying.Gear = []pawn.Apparel{{Label: "duster", Mass: 2}}
		want := p.Clone()

		_, err := repo.Put(ctx, pawnrepo.PutInput{Pawn: p})
		require.NoError(t, err)

		p.Gear[0].Mass = 99
		p.Carrying.Mass = 99
		p.Carrying.Gear[0].Mass = 99
		p.Position.Roofed = !p.Position.Roofed

		got, err := repo.Get(ctx, pawnrepo.GetInput{ID: p.ID})
		require.NoError(t, err)
		assert.Equal(t, want, got.Pawn)

		got.Pawn.Gear[0].Mass = 50
		got.Pawn.Carrying.Gear = append(got.Pawn.Carrying.Gear, pawn.Apparel{Mass: 50})
		got.Pawn.Position.WeatherMoveSpeedMultiplier = 0.1

		again, err := repo.Get(ctx, pawnrepo.GetInput{ID: p.ID})
		require.NoError(t, err)
		assert.Equal(t, want, again.Pawn)
	})

	t.Run("ttl expires", func(t *testing.T) {
		p := testutils.CreateTestRescuer()
		_, err := repo.Put(ctx, pawnrepo.PutInput{Pawn: p, TTL: time.Minute})
		require.NoError(t, err)

		_, err = repo.Get(ctx, pawnrepo.GetInput{ID: p.ID})
		require.NoError(t, err)

		fixed.Advance(time.Minute)
		_, err = repo.Get(ctx, pawnrepo.GetInput{ID: p.ID})
		assert.True(t, errors.IsNotFound(err))

		_, err = repo.Delete(ctx, pawnrepo.DeleteInput{ID: p.ID})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("delete", func(t *testing.T) {
		_, err := repo.Delete(ctx, pawnrepo.DeleteInput{ID: testutils.TestPawnID})
		require.NoError(t, err)

		_, err = repo.Get(ctx, pawnrepo.GetInput{ID: testutils.TestPawnID})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("validation", func(t *testing.T) {
		_, err := repo.Get(ctx, pawnrepo.GetInput{})
		assert.True(t, errors.IsInvalidArgument(err))

		_, err = repo.Put(ctx, pawnrepo.PutInput{})
		assert.True(t, errors.IsInvalidArgument(err))

		_, err = repo.Delete(ctx, pawnrepo.DeleteInput{})
		assert.True(t, errors.IsInvalidArgument(err))
	})
}

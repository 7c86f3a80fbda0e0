package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainer_AddAndRemove(t *testing.T) {
	t.Run("adds until full then refuses", func(t *testing.T) {
		c, err := NewContainer("G1", 2)
		require.NoError(t, err)

		require.NoError(t, c.Add(Individual{Surname: "A", Advantage: 1}))
		require.NoError(t, c.Add(Individual{Surname: "B", Advantage: 2}))
		require.True(t, c.IsFull())
		require.Equal(t, 0, c.Room())

		err = c.Add(Individual{Surname: "C"})
		require.ErrorIs(t, err, ErrCapacityExceeded)
		require.Contains(t, err.Error(), "G1")
		require.Equal(t, 2, c.Len())
	})

	t.Run("remove last undoes in reverse order", func(t *testing.T) {
		c, err := NewContainer("G1", 3)
		require.NoError(t, err)
		require.NoError(t, c.Add(Individual{Surname: "A"}))
		require.NoError(t, c.Add(Individual{Surname: "B"}))

		last, err := c.RemoveLast()
		require.NoError(t, err)
		require.Equal(t, "B", last.Surname)
		require.Equal(t, []Individual{{Surname: "A"}}, c.Members())

		_, err = c.RemoveLast()
		require.NoError(t, err)
		_, err = c.RemoveLast()
		require.ErrorIs(t, err, ErrContainerEmpty)
	})

	t.Run("zero capacity container is always full", func(t *testing.T) {
		c, err := NewContainer("G0", 0)
		require.NoError(t, err)
		require.True(t, c.IsFull())
		require.ErrorIs(t, c.Add(Individual{}), ErrCapacityExceeded)
	})

	t.Run("negative capacity is a sizing error", func(t *testing.T) {
		_, err := NewContainer("bad", -1)
		require.True(t, errors.Is(err, ErrSizingMismatch))
	})
}

func TestContainer_Queries(t *testing.T) {
	c, err := NewContainer("G1", 4)
	require.NoError(t, err)
	require.NoError(t, c.Add(Individual{Surname: "A", Advantage: 5, Leader: true}))
	require.NoError(t, c.Add(Individual{Surname: "B", Advantage: 2.5, Polarity: Pol(3)}))
	require.NoError(t, c.Add(Individual{Surname: "C", Advantage: 1, Polarity: Pol(1)}))

	require.InDelta(t, 8.5, c.TotalAdvantage(), 1e-9)
	require.True(t, c.HasLeader())
	require.Equal(t, []int{1, 3}, c.OccupiedPolarities())
	require.True(t, c.HasPolarity(3))
	require.False(t, c.HasPolarity(2))
	require.False(t, c.HasPolarityConflict())

	require.True(t, c.CanAccept(Individual{Polarity: Pol(2)}))
	require.False(t, c.CanAccept(Individual{Polarity: Pol(1)}))
	require.True(t, c.CanAccept(Individual{}))

	require.NoError(t, c.Add(Individual{Surname: "D", Polarity: Pol(1)}))
	require.True(t, c.HasPolarityConflict())
	require.False(t, c.CanAccept(Individual{}), "full container accepts nobody")
}

func TestContainer_MembersIsACopy(t *testing.T) {
	c, err := NewContainer("G1", 1)
	require.NoError(t, err)
	require.NoError(t, c.Add(Individual{Surname: "A"}))

	members := c.Members()
	members[0].Surname = "changed"
	require.Equal(t, "A", c.Members()[0].Surname)
}

func TestContainer_Clone(t *testing.T) {
	c, err := NewContainer("G1", 2)
	require.NoError(t, err)
	require.NoError(t, c.Add(Individual{Surname: "A"}))

	cp := c.Clone()
	require.NoError(t, cp.Add(Individual{Surname: "B"}))

	require.Equal(t, 1, c.Len())
	require.Equal(t, 2, cp.Len())
	require.Equal(t, "G1", cp.Name())
	require.Equal(t, 2, cp.Capacity())
}

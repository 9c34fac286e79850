package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConflict(t *testing.T) {
	existing := []ExistingRule{
		{ID: "r1", Rule: recurringRule(540, 720, time.Monday)},
		{ID: "r2", Rule: recurringRule(540, 720, time.Wednesday)},
	}

	t.Run("clear candidate passes", func(t *testing.T) {
		err := CheckConflict(recurringRule(720, 780, time.Monday), existing)
		assert.NoError(t, err)
	})

	t.Run("overlap reports the colliding rule's ID", func(t *testing.T) {
		err := CheckConflict(recurringRule(600, 660, time.Wednesday), existing)
		require.Error(t, err)
		e := AsError(err)
		require.NotNil(t, e)
		assert.Equal(t, KindConflict, e.Kind)
		assert.Equal(t, "r2", e.ConflictID)
		assert.True(t, IsConflict(err))
	})

	t.Run("empty existing set always passes", func(t *testing.T) {
		assert.NoError(t, CheckConflict(recurringRule(540, 720, time.Monday), nil))
	})
}

func TestCheckContainment(t *testing.T) {
	base := recurringRule(540, 1020, time.Monday)

	assert.NoError(t, CheckContainment(540, 1020, base), "exact bounds are contained")
	assert.NoError(t, CheckContainment(600, 660, base))

	err := CheckContainment(500, 660, base)
	assert.True(t, IsKind(err, KindInvalidRange), "start before base")

	err = CheckContainment(600, 1080, base)
	assert.True(t, IsKind(err, KindInvalidRange), "end past base")
}

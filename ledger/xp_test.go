package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyXP_NoLevelUp(t *testing.T) {
	level, xp, leveledUp, err := ApplyXP(1, 40, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, level)
	assert.Equal(t, 70, xp)
	assert.False(t, leveledUp)
}

func TestApplyXP_SingleRollover(t *testing.T) {
	level, xp, leveledUp, err := ApplyXP(1, 90, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, level)
	assert.Equal(t, 20, xp)
	assert.True(t, leveledUp)
}

func TestApplyXP_MultiLevelRollover(t *testing.T) {
	// 250 from a fresh level 1 clears level 1 (100) and level 2 (200 total
	// needed, only 150 left) so the grant lands mid level 2.
	level, xp, leveledUp, err := ApplyXP(1, 0, 250)
	require.NoError(t, err)
	assert.Equal(t, 2, level)
	assert.Equal(t, 150, xp)
	assert.True(t, leveledUp)
}

func TestApplyXP_LargeGrantCrossesSeveralLevels(t *testing.T) {
	// 100+200+300 = 600 clears levels 1..3 exactly, leaving 0 into level 4.
	level, xp, leveledUp, err := ApplyXP(1, 0, 600)
	require.NoError(t, err)
	assert.Equal(t, 4, level)
	assert.Equal(t, 0, xp)
	assert.True(t, leveledUp)
}

func TestApplyXP_ZeroGrantIsNoop(t *testing.T) {
	level, xp, leveledUp, err := ApplyXP(3, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, level)
	assert.Equal(t, 50, xp)
	assert.False(t, leveledUp)
}

func TestApplyXP_NegativeGrantRejected(t *testing.T) {
	level, xp, leveledUp, err := ApplyXP(3, 50, -10)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 3, level)
	assert.Equal(t, 50, xp)
	assert.False(t, leveledUp)
}

func TestApplyXP_RestingXPBelowThreshold(t *testing.T) {
	for _, gained := range []int{0, 1, 99, 100, 999, 12345} {
		level, xp, _, err := ApplyXP(1, 0, gained)
		require.NoError(t, err)
		assert.Less(t, xp, XPThresholdForLevel(level), "gained=%d", gained)
	}
}

func TestClampStat(t *testing.T) {
	assert.Equal(t, 52, ClampStat(50, 2))
	assert.Equal(t, 100, ClampStat(98, 10))
	assert.Equal(t, 0, ClampStat(3, -10))
	assert.Equal(t, 100, ClampStat(100, 0))
}

func TestRewardForDifficulty(t *testing.T) {
	r, err := RewardForDifficulty("EASY")
	require.NoError(t, err)
	assert.Equal(t, Reward{XP: 15, StatBoost: 1}, r)

	r, err = RewardForDifficulty("EPIC")
	require.NoError(t, err)
	assert.Equal(t, Reward{XP: 100, StatBoost: 10}, r)

	_, err = RewardForDifficulty("IMPOSSIBLE")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

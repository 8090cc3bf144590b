package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateAchievements_EmptySnapshotUnlocksNothing(t *testing.T) {
	got := EvaluateAchievements(MetricsSnapshot{Level: 1}, nil)
	assert.Empty(t, got)
}

func TestEvaluateAchievements_FirstQuest(t *testing.T) {
	got := EvaluateAchievements(MetricsSnapshot{Level: 1, QuestsCompleted: 1}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "first_quest", got[0].ID)
}

func TestEvaluateAchievements_SkipsAlreadyUnlocked(t *testing.T) {
	snapshot := MetricsSnapshot{Level: 1, QuestsCompleted: 12}

	got := EvaluateAchievements(snapshot, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "first_quest", got[0].ID)
	assert.Equal(t, "quest_10", got[1].ID)

	got = EvaluateAchievements(snapshot, map[string]bool{"first_quest": true})
	require.Len(t, got, 1)
	assert.Equal(t, "quest_10", got[0].ID)

	got = EvaluateAchievements(snapshot, map[string]bool{"first_quest": true, "quest_10": true})
	assert.Empty(t, got)
}

func TestEvaluateAchievements_StableDefinitionOrder(t *testing.T) {
	// A snapshot qualifying for everything must come back in table order.
	snapshot := MetricsSnapshot{
		Level:              25,
		QuestsCompleted:    60,
		HabitCompletions:   120,
		LongestHabitStreak: 40,
		JournalEntries:     10,
		Health:             90, Energy: 90, Wisdom: 90, Social: 90, Wealth: 90,
	}

	got := EvaluateAchievements(snapshot, nil)
	require.Len(t, got, len(Definitions()))
	for i, def := range Definitions() {
		assert.Equal(t, def.ID, got[i].ID)
	}
}

func TestEvaluateAchievements_BalancedRequiresAllStats(t *testing.T) {
	snapshot := MetricsSnapshot{
		Level:  1,
		Health: 90, Energy: 90, Wisdom: 90, Social: 90, Wealth: 79,
	}
	got := EvaluateAchievements(snapshot, nil)
	assert.Empty(t, got)

	snapshot.Wealth = 80
	got = EvaluateAchievements(snapshot, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "balanced_80", got[0].ID)
}

func TestDefinitionByID(t *testing.T) {
	def, ok := DefinitionByID("streak_7")
	require.True(t, ok)
	assert.Equal(t, "One Week Strong", def.Name)
	assert.Equal(t, 25, def.XPReward)

	_, ok = DefinitionByID("does_not_exist")
	assert.False(t, ok)
}

func TestDefinitions_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Definitions() {
		assert.False(t, seen[def.ID], "duplicate id %s", def.ID)
		seen[def.ID] = true
		assert.NotNil(t, def.Qualifies)
		assert.Greater(t, def.XPReward, 0)
	}
}

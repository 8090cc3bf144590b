package ledger

import "strconv"

// MetricsSnapshot aggregates a user's progression counters at one point in
// time. Building it requires storage reads; evaluating it does not.
type MetricsSnapshot struct {
	Level               int
	QuestsCompleted     int
	HabitCompletions    int
	LongestHabitStreak  int
	GlobalLongestStreak int
	JournalEntries      int
	Health              int
	Energy              int
	Wisdom              int
	Social              int
	Wealth              int
}

// AchievementDef is a code-defined achievement. Unlock facts are persisted per
// user; the definitions themselves never change at runtime.
type AchievementDef struct {
	ID          string
	Name        string
	Description string
	Category    string
	XPReward    int
	Qualifies   func(MetricsSnapshot) bool
}

func levelAchievement(id, name string, level, xp int) AchievementDef {
	return AchievementDef{
		ID: id, Name: name,
		Description: "Reach level " + strconv.Itoa(level),
		Category:    "level", XPReward: xp,
		Qualifies: func(m MetricsSnapshot) bool { return m.Level >= level },
	}
}

func questAchievement(id, name string, count, xp int) AchievementDef {
	return AchievementDef{
		ID: id, Name: name,
		Description: "Complete " + strconv.Itoa(count) + " quests",
		Category:    "quest", XPReward: xp,
		Qualifies: func(m MetricsSnapshot) bool { return m.QuestsCompleted >= count },
	}
}

func streakAchievement(id, name string, days, xp int) AchievementDef {
	return AchievementDef{
		ID: id, Name: name,
		Description: "Hold a " + strconv.Itoa(days) + "-day habit streak",
		Category:    "streak", XPReward: xp,
		Qualifies: func(m MetricsSnapshot) bool { return m.LongestHabitStreak >= days },
	}
}

var definitions = []AchievementDef{
	questAchievement("first_quest", "First Steps", 1, 10),
	questAchievement("quest_10", "Adventurer", 10, 25),
	questAchievement("quest_50", "Quest Veteran", 50, 100),
	{
		ID: "first_habit", Name: "Creature of Habit",
		Description: "Log a habit completion", Category: "habit", XPReward: 10,
		Qualifies: func(m MetricsSnapshot) bool { return m.HabitCompletions >= 1 },
	},
	{
		ID: "habit_100", Name: "Century of Discipline",
		Description: "Log 100 habit completions", Category: "habit", XPReward: 100,
		Qualifies: func(m MetricsSnapshot) bool { return m.HabitCompletions >= 100 },
	},
	streakAchievement("streak_7", "One Week Strong", 7, 25),
	streakAchievement("streak_30", "Unbreakable", 30, 150),
	levelAchievement("level_5", "Rising Star", 5, 25),
	levelAchievement("level_10", "Seasoned", 10, 50),
	levelAchievement("level_20", "Master of Self", 20, 200),
	{
		ID: "journal_7", Name: "Dear Diary",
		Description: "Write 7 journal entries", Category: "journal", XPReward: 25,
		Qualifies: func(m MetricsSnapshot) bool { return m.JournalEntries >= 7 },
	},
	{
		ID: "balanced_80", Name: "Balanced Life",
		Description: "Raise every stat to 80", Category: "stats", XPReward: 150,
		Qualifies: func(m MetricsSnapshot) bool {
			return m.Health >= 80 && m.Energy >= 80 && m.Wisdom >= 80 && m.Social >= 80 && m.Wealth >= 80
		},
	},
}

// Definitions returns the static achievement table in stable insertion order.
func Definitions() []AchievementDef {
	return definitions
}

// DefinitionByID looks up a single achievement definition.
func DefinitionByID(id string) (AchievementDef, bool) {
	for _, def := range definitions {
		if def.ID == id {
			return def, true
		}
	}
	return AchievementDef{}, false
}

// EvaluateAchievements returns the definitions whose predicate holds for the
// snapshot and that are not yet unlocked, in definition order. Pure function;
// persisting the unlocks is the caller's concern.
func EvaluateAchievements(snapshot MetricsSnapshot, alreadyUnlocked map[string]bool) []AchievementDef {
	var qualifying []AchievementDef
	for _, def := range definitions {
		if alreadyUnlocked[def.ID] {
			continue
		}
		if def.Qualifies(snapshot) {
			qualifying = append(qualifying, def)
		}
	}
	return qualifying
}

package game

// Achievement is an unlockable badge.
type Achievement struct {
	ID          string
	Title       string
	Description string
	check       func(AchievementContext) bool
}

// AchievementContext is the post-lesson view achievements are checked against.
type AchievementContext struct {
	LessonsCompleted int
	Accuracy         int
	FirstTryPerfect  bool
	Streak           int
	TotalXP          int
}

// Achievement IDs.
const (
	AchFirstLesson     = "first_lesson"
	AchPerfectLesson   = "perfect_lesson"
	AchFirstTryPerfect = "first_try_perfect"
	AchStreak3         = "streak_3"
	AchStreak7         = "streak_7"
	AchStreak30        = "streak_30"
	AchStreak100       = "streak_100"
	AchXP1000          = "xp_1000"
)

var achievements = []Achievement{
	{ID: AchFirstLesson, Title: "First Step", Description: "Complete your first lesson",
		check: func(c AchievementContext) bool { return c.LessonsCompleted >= 1 }},
	{ID: AchPerfectLesson, Title: "Flawless", Description: "Finish a lesson with 100% accuracy",
		check: func(c AchievementContext) bool { return c.Accuracy == 100 }},
	{ID: AchFirstTryPerfect, Title: "Steady Mind", Description: "Answer every question right on the first try",
		check: func(c AchievementContext) bool { return c.FirstTryPerfect }},
	{ID: AchStreak3, Title: "Kindled", Description: "Reach a 3-day streak",
		check: func(c AchievementContext) bool { return c.Streak >= 3 }},
	{ID: AchStreak7, Title: "Devoted Week", Description: "Reach a 7-day streak",
		check: func(c AchievementContext) bool { return c.Streak >= 7 }},
	{ID: AchStreak30, Title: "Month of Practice", Description: "Reach a 30-day streak",
		check: func(c AchievementContext) bool { return c.Streak >= 30 }},
	{ID: AchStreak100, Title: "Sthita Prajna", Description: "Reach a 100-day streak",
		check: func(c AchievementContext) bool { return c.Streak >= 100 }},
	{ID: AchXP1000, Title: "Scholar", Description: "Earn 1000 XP",
		check: func(c AchievementContext) bool { return c.TotalXP >= 1000 }},
}

// AllAchievements returns the achievement table in unlock-suggestion order.
func AllAchievements() []Achievement {
	out := make([]Achievement, len(achievements))
	copy(out, achievements)
	return out
}

// AchievementByID looks up an achievement.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// CheckAchievements returns newly unlocked achievements and records them on s.
func (s *GameState) CheckAchievements(c AchievementContext) []Achievement {
	var unlocked []Achievement
	for _, a := range achievements {
		if s.HasAchievement(a.ID) || !a.check(c) {
			continue
		}
		s.Achievements = append(s.Achievements, a.ID)
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// NextLocked returns the first achievement not yet unlocked, if any.
func (s *GameState) NextLocked() (Achievement, bool) {
	for _, a := range achievements {
		if !s.HasAchievement(a.ID) {
			return a, true
		}
	}
	return Achievement{}, false
}

package quests

type template struct {
	Type        QuestType
	Title       string
	Description string
	Icon        string
	Color       string
	Target      int
	XP          int
	Gems        int
}

const (
	DailyQuestCount  = 3
	WeeklyQuestCount = 2

	DailyBonusXP  = 50
	WeeklyBonusXP = 200
)

var dailyPool = []template{
	{CompleteLessons, "Daily Practice", "Complete 1 lesson", "book", "#58CC02", 1, 10, 5},
	{CompleteLessons, "Triple Study", "Complete 3 lessons", "books", "#58CC02", 3, 30, 10},
	{EarnXP, "XP Seeker", "Earn 50 XP", "bolt", "#FFC800", 50, 20, 5},
	{EarnXP, "XP Hunter", "Earn 100 XP", "bolt", "#FF9600", 100, 30, 10},
	{PerfectLessons, "Flawless Recital", "Finish a lesson with 100% accuracy", "star", "#CE82FF", 1, 25, 10},
	{MaintainStreak, "Keep the Flame", "Extend your streak today", "flame", "#FF4B4B", 1, 15, 5},
	{StudyMinutes, "Quiet Ten", "Study for 10 minutes", "clock", "#1CB0F6", 10, 20, 5},
	{EarlyBird, "Brahma Muhurta", "Finish a lesson before 9 AM", "sunrise", "#FFB020", 1, 20, 10},
	{CompleteUnit, "Unit Finisher", "Complete a unit", "trophy", "#2B70C9", 1, 40, 15},
}

var weeklyPool = []template{
	{CompleteLessons, "Weekly Scholar", "Complete 15 lessons this week", "books", "#58CC02", 15, 150, 30},
	{EarnXP, "XP Marathon", "Earn 750 XP this week", "bolt", "#FF9600", 750, 200, 40},
	{PerfectLessons, "Perfectionist", "Finish 5 perfect lessons", "star", "#CE82FF", 5, 150, 35},
	{MaintainStreak, "Unbroken Week", "Extend your streak 7 times", "flame", "#FF4B4B", 7, 250, 50},
	{StudyMinutes, "Hour of Study", "Study for 60 minutes", "clock", "#1CB0F6", 60, 150, 30},
	{CompleteUnit, "Chapter Climber", "Complete 3 units", "trophy", "#2B70C9", 3, 200, 40},
}

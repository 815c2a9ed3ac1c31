package game

import "math"

// Gem bonuses for a completed lesson.
const (
	BaseLessonGems       = 10
	PerfectAccuracyBonus = 15
	FirstTryPerfectBonus = 10
	WeekStreakBonus      = 5  // streak >= 7
	MonthStreakBonus     = 10 // streak >= 30

	XPPerCorrectAnswer = 10
)

// LessonResult is the raw performance of one finished lesson.
type LessonResult struct {
	Correct         int
	Total           int
	FirstTryPerfect bool
}

// Accuracy returns the rounded percentage of correct answers (0-100).
func Accuracy(correct, total int) int {
	if total <= 0 || correct <= 0 {
		return 0
	}
	if correct >= total {
		return 100
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}

// Accuracy returns the lesson's percentage score.
func (r LessonResult) Accuracy() int {
	return Accuracy(r.Correct, r.Total)
}

// LessonXP is a flat 10 XP per correct answer.
func LessonXP(correct int) int {
	if correct < 0 {
		return 0
	}
	return correct * XPPerCorrectAnswer
}

// LessonGems returns the gems for a lesson given the streak after it was recorded.
func LessonGems(accuracy int, firstTryPerfect bool, streak int) int {
	gems := BaseLessonGems
	if accuracy == 100 {
		gems += PerfectAccuracyBonus
	}
	if firstTryPerfect {
		gems += FirstTryPerfectBonus
	}
	if streak >= 7 {
		gems += WeekStreakBonus
	}
	if streak >= 30 {
		gems += MonthStreakBonus
	}
	return gems
}

// MasteryStars maps accuracy to a 1-5 star rating.
func MasteryStars(accuracy int) int {
	if accuracy >= 100 {
		return 5
	}
	stars := accuracy / 20
	if stars < 1 {
		return 1
	}
	return stars
}

// LessonReward bundles everything a lesson pays out.
type LessonReward struct {
	XP       int
	Gems     int
	Accuracy int
	Stars    int
}

// CalculateReward applies all reward formulas to r with the current streak.
func CalculateReward(r LessonResult, streak int) LessonReward {
	acc := r.Accuracy()
	return LessonReward{
		XP:       LessonXP(r.Correct),
		Gems:     LessonGems(acc, r.FirstTryPerfect, streak),
		Accuracy: acc,
		Stars:    MasteryStars(acc),
	}
}

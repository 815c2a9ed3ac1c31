package streak

// Milestone is a one-time reward for reaching a streak length.
type Milestone struct {
	Days  int
	XP    int
	Gems  int
	Title string
}

var milestones = []Milestone{
	{Days: 7, XP: 100, Gems: 5, Title: "Week Warrior"},
	{Days: 14, XP: 200, Gems: 10, Title: "Fortnight of Focus"},
	{Days: 30, XP: 500, Gems: 25, Title: "Monthly Devotee"},
	{Days: 50, XP: 750, Gems: 40, Title: "Steadfast Seeker"},
	{Days: 100, XP: 1500, Gems: 75, Title: "Century of Study"},
	{Days: 365, XP: 5000, Gems: 250, Title: "Year with the Gita"},
}

// Milestones returns the milestone table in ascending order.
func Milestones() []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	return out
}

// NextMilestone returns the first milestone beyond streak.
func NextMilestone(streak int) (Milestone, bool) {
	for _, m := range milestones {
		if m.Days > streak {
			return m, true
		}
	}
	return Milestone{}, false
}

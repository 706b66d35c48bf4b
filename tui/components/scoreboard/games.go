package scoreboard

import "fmt"

// Game is one finished game on the summaries screen.
type Game struct {
	Away      string
	Home      string
	AwayScore int
	HomeScore int
	// Excitement is the 1-10 score shown in the pill.
	Excitement int
	Labels     []string
}

// Matchup renders the teams and final score.
func (g Game) Matchup() string {
	return fmt.Sprintf("%s %3d  @  %s %3d", g.Away, g.AwayScore, g.Home, g.HomeScore)
}

var sampleGames = []Game{
	{Away: "LAL", Home: "BOS", AwayScore: 112, HomeScore: 114, Excitement: 10, Labels: []string{"Buzzer Beater", "Comeback"}},
	{Away: "GSW", Home: "DEN", AwayScore: 121, HomeScore: 119, Excitement: 9, Labels: []string{"Clutch Shots", "Shootout"}},
	{Away: "MIA", Home: "NYK", AwayScore: 98, HomeScore: 101, Excitement: 7, Labels: []string{"Defensive Battle"}},
	{Away: "PHX", Home: "DAL", AwayScore: 130, HomeScore: 111, Excitement: 4, Labels: []string{"Scoring Explosion"}},
	{Away: "CHI", Home: "MIL", AwayScore: 95, HomeScore: 127, Excitement: 2, Labels: []string{"Blowout"}},
	{Away: "SAC", Home: "MIN", AwayScore: 108, HomeScore: 106, Excitement: 8, Labels: []string{"Overtime", "Lead Changes"}},
}

// GamesForDay returns the games of the day at offset from yesterday. The
// same offset always yields the same slate.
func GamesForDay(offset int) []Game {
	n := len(sampleGames)
	start := ((offset % n) + n) % n
	count := 3 + start%2

	games := make([]Game, 0, count)
	for i := 0; i < count; i++ {
		games = append(games, sampleGames[(start+i)%n])
	}
	return games
}

// DayLabel names the day at offset from yesterday.
func DayLabel(offset int) string {
	switch {
	case offset == 0:
		return "Yesterday"
	case offset == 1:
		return "Today"
	case offset == 2:
		return "Tomorrow"
	case offset < 0:
		return fmt.Sprintf("%d days ago", 1-offset)
	default:
		return fmt.Sprintf("In %d days", offset-1)
	}
}

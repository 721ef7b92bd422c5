package sports

import "strings"

// Sport identifies one varsity program: the slug of its schedule page, the
// display sport name, and the gender the page covers.
type Sport struct {
	Slug   string
	Name   string
	Gender string
}

// LiveSport maps a live-feed sport code to the (sport, gender) pair it
// reports on. Only sports with a live stats feed appear here.
type LiveSport struct {
	Code   string
	Name   string
	Gender string
}

// HomeCity is the program's home city, used for score-orientation
// normalization.
const HomeCity = "Ithaca"

// ScheduleSports lists every schedule page the batch ingestion scrapes.
var ScheduleSports = []Sport{
	{Slug: "baseball", Name: "Baseball", Gender: "Mens"},
	{Slug: "mens-basketball", Name: "Basketball", Gender: "Mens"},
	{Slug: "womens-basketball", Name: "Basketball", Gender: "Womens"},
	{Slug: "mens-cross-country", Name: "Cross Country", Gender: "Mens"},
	{Slug: "womens-cross-country", Name: "Cross Country", Gender: "Womens"},
	{Slug: "field-hockey", Name: "Field Hockey", Gender: "Womens"},
	{Slug: "football", Name: "Football", Gender: "Mens"},
	{Slug: "mens-golf", Name: "Golf", Gender: "Mens"},
	{Slug: "mens-ice-hockey", Name: "Ice Hockey", Gender: "Mens"},
	{Slug: "womens-ice-hockey", Name: "Ice Hockey", Gender: "Womens"},
	{Slug: "mens-lacrosse", Name: "Lacrosse", Gender: "Mens"},
	{Slug: "womens-lacrosse", Name: "Lacrosse", Gender: "Womens"},
	{Slug: "mens-soccer", Name: "Soccer", Gender: "Mens"},
	{Slug: "womens-soccer", Name: "Soccer", Gender: "Womens"},
	{Slug: "softball", Name: "Softball", Gender: "Womens"},
	{Slug: "sprint-football", Name: "Sprint Football", Gender: "Mens"},
	{Slug: "mens-squash", Name: "Squash", Gender: "Mens"},
	{Slug: "womens-squash", Name: "Squash", Gender: "Womens"},
	{Slug: "mens-swimming-and-diving", Name: "Swimming & Diving", Gender: "Mens"},
	{Slug: "womens-swimming-and-diving", Name: "Swimming & Diving", Gender: "Womens"},
	{Slug: "mens-tennis", Name: "Tennis", Gender: "Mens"},
	{Slug: "womens-tennis", Name: "Tennis", Gender: "Womens"},
	{Slug: "mens-track-and-field", Name: "Track & Field", Gender: "Mens"},
	{Slug: "womens-track-and-field", Name: "Track & Field", Gender: "Womens"},
	{Slug: "womens-volleyball", Name: "Volleyball", Gender: "Womens"},
	{Slug: "wrestling", Name: "Wrestling", Gender: "Mens"},
}

// LiveSports lists the sport codes the live-score feed serves.
var LiveSports = []LiveSport{
	{Code: "football", Name: "Football", Gender: "Mens"},
	{Code: "mbball", Name: "Basketball", Gender: "Mens"},
	{Code: "wbball", Name: "Basketball", Gender: "Womens"},
	{Code: "mice", Name: "Ice Hockey", Gender: "Mens"},
	{Code: "wice", Name: "Ice Hockey", Gender: "Womens"},
	{Code: "mlax", Name: "Lacrosse", Gender: "Mens"},
	{Code: "wlax", Name: "Lacrosse", Gender: "Womens"},
	{Code: "msoc", Name: "Soccer", Gender: "Mens"},
	{Code: "wsoc", Name: "Soccer", Gender: "Womens"},
}

// placeholderTeamNames are the tournament-round labels a schedule page uses
// before the real opponent of a bracket slot is known.
var placeholderTeamNames = map[string]struct{}{
	"First Round":                           {},
	"Second Round":                          {},
	"Third Round":                           {},
	"Quarterfinals":                         {},
	"Semifinals":                            {},
	"Championship":                          {},
	"College Cup Semifinals":                {},
	"College Cup Championship Game":         {},
	"ECAC Hockey First Round":               {},
	"ECAC Hockey Quarterfinals":             {},
	"ECAC Hockey Semifinals":                {},
	"ECAC Hockey Championship Game":         {},
	"Regional Semifinals":                   {},
	"Regional Championship":                 {},
	"National Semifinals":                   {},
	"National Championship":                 {},
	"NCAA Wrestling Championships":          {},
	"NCAA Northeast Regional Championships": {},
	"NCAA Cross Country Championships":      {},
	"TBD":                                   {},
}

// IsPlaceholderTeam reports whether a team name is a stand-in tournament
// slot rather than a real opponent.
func IsPlaceholderTeam(name string) bool {
	_, ok := placeholderTeamNames[name]
	return ok
}

// lossIndicators are matched case-sensitively: a lowercase "l" in an
// opponent name must not read as a loss.
var lossIndicators = []string{"L", "Loss", "Defeated"}

// IsLoss reports whether a scraped result string records a Cornell loss.
func IsLoss(result string) bool {
	if result == "" {
		return false
	}
	for _, ind := range lossIndicators {
		if strings.Contains(result, ind) {
			return true
		}
	}
	return false
}

// LiveSportFor returns the live-feed code for a (sport, gender) pair, if
// the sport has a live feed at all.
func LiveSportFor(name, gender string) (LiveSport, bool) {
	for _, ls := range LiveSports {
		if strings.EqualFold(ls.Name, name) && strings.EqualFold(ls.Gender, gender) {
			return ls, true
		}
	}
	return LiveSport{}, false
}

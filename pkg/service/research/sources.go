package research

// source is one curated crash safety research page. The query builder picks
// sources whose tags intersect the scenario keywords; untagged scenarios
// still fetch the general sources.
type source struct {
	URL  string
	Tags []string
}

// Curated public research index. Scraping arbitrary search results proved
// too brittle; these pages are stable and cover the gender bias and
// restraint topics the narrative layer asks about.
var defaultSources = []source{
	{
		URL:  "https://www.iihs.org/topics/fatality-statistics/detail/males-and-females",
		Tags: []string{"female", "male", "gender"},
	},
	{
		URL:  "https://www.nhtsa.gov/risky-driving/seat-belts",
		Tags: []string{"seatbelt", "unbelted", "restraint"},
	},
	{
		URL:  "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC3217478/",
		Tags: []string{"female", "injury", "odds"},
	},
	{
		URL:  "https://www.nhtsa.gov/road-safety/pregnant-women",
		Tags: []string{"pregnant", "pregnancy"},
	},
	{
		URL:  "https://www.iihs.org/topics/side-impact-crashes",
		Tags: []string{"side", "intrusion"},
	},
}

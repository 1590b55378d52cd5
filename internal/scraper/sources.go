package scraper

// YouthSources are forums and feeds where youth discussion concentrates.
// Ordered so Reddit listings come before the news feed, matching how the
// youth corpus has historically been assembled.
var YouthSources = []Source{
	{Name: "Reddit Indian Teenagers", URL: "https://www.reddit.com/r/IndianTeenagers/hot.json", Type: "reddit"},
	{Name: "Reddit Indian Students", URL: "https://www.reddit.com/r/IndianStudents/hot.json", Type: "reddit"},
	{Name: "Reddit Developers India", URL: "https://www.reddit.com/r/developersIndia/hot.json", Type: "reddit"},
	{Name: "BBC India RSS", URL: "https://feeds.bbci.co.uk/news/world/asia/india/rss.xml", Type: "rss"},
}

// PoliticalSources are mainstream national coverage feeds.
var PoliticalSources = []Source{
	{Name: "TOI Education RSS", URL: "https://timesofindia.indiatimes.com/rssfeeds/1221656.cms", Type: "rss"},
	{Name: "The Hindu National RSS", URL: "https://www.thehindu.com/news/national/feeder/default.rss", Type: "rss"},
	{Name: "Hindustan Times Education RSS", URL: "https://www.hindustantimes.com/rss/education/rssfeed.xml", Type: "rss"},
}

// AccessibleSources are the feeds tried for the live missing-topics table.
// Reddit listings are excluded here: the endpoint is hit often and the
// listing endpoints rate-limit aggressively.
var AccessibleSources = []Source{
	{Name: "BBC India RSS", URL: "https://feeds.bbci.co.uk/news/world/asia/india/rss.xml", Type: "rss"},
	{Name: "TOI Education RSS", URL: "https://timesofindia.indiatimes.com/rssfeeds/1221656.cms", Type: "rss"},
	{Name: "Hindustan Times Education RSS", URL: "https://www.hindustantimes.com/rss/education/rssfeed.xml", Type: "rss"},
	{Name: "The Hindu National RSS", URL: "https://www.thehindu.com/news/national/feeder/default.rss", Type: "rss"},
	{Name: "India Today Education RSS", URL: "https://www.indiatoday.in/rss/1206614", Type: "rss"},
}

// PolicySources are the government portals checked by the source-status
// endpoint and scraped by the live policy fetcher.
var PolicySources = map[string]string{
	"pib_releases":      "https://pib.gov.in/PressReleasePage.aspx",
	"rbi_notifications": "https://www.rbi.org.in/Scripts/BS_PressReleaseDisplay.aspx",
	"sebi_updates":      "https://www.sebi.gov.in/sebiweb/other/OtherAction.do?doRecent=yes",
	"ministry_health":   "https://www.mohfw.gov.in/media/disease-alerts",
	"finance_ministry":  "https://finmin.nic.in/press_room/press_release",
}

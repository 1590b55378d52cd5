package gap

import "strings"

// Entry is one weighted keyword. Lexicons are slices, not maps: matching
// walks them in declaration order, and that order decides how topics are
// first encountered when gaps tie on score.
type Entry struct {
	Keyword string
	Weight  int
}

// YouthLexicon weights issues by how strongly they register in youth
// discussions. Multi-word keywords match as plain substrings, so a phrase
// entry also fires inside longer phrases.
var YouthLexicon = []Entry{
	// Education
	{"education", 10}, {"student", 10}, {"university", 8}, {"college", 8}, {"school", 6},
	{"tuition fees", 9}, {"student loan", 9}, {"education loan", 9}, {"college debt", 8},
	{"exam pressure", 8}, {"board exams", 7}, {"entrance exam", 7}, {"competitive exams", 7},
	{"online classes", 7}, {"digital learning", 6}, {"remote education", 6},
	{"campus placement", 8}, {"job placement", 7}, {"career guidance", 7},

	// Employment and careers
	{"job", 9}, {"career", 9}, {"employment", 8}, {"unemployment", 9}, {"hiring", 7},
	{"job market", 8}, {"job search", 8}, {"resume", 6}, {"interview", 6},
	{"salary", 7}, {"low salary", 8}, {"wage", 6}, {"income", 6},
	{"work life balance", 8}, {"overtime", 6}, {"workplace stress", 7},
	{"internship", 7}, {"fresher", 7}, {"entry level", 6}, {"experience required", 7},

	// Entrepreneurship
	{"startup", 8}, {"entrepreneur", 8}, {"business", 6}, {"innovation", 7},
	{"funding", 7}, {"investor", 6}, {"venture capital", 6}, {"angel investor", 6},
	{"business plan", 6}, {"market research", 6}, {"customer acquisition", 6},

	// Technology
	{"technology", 7}, {"tech", 7}, {"digital", 6}, {"internet", 5}, {"mobile", 5},
	{"app development", 7}, {"coding", 7}, {"programming", 7}, {"software", 6},
	{"artificial intelligence", 7}, {"ai", 7}, {"machine learning", 6},
	{"cybersecurity", 6}, {"data privacy", 7}, {"online safety", 6},
	{"digital divide", 7}, {"internet access", 6}, {"broadband", 5},

	// Mental health
	{"mental health", 9}, {"depression", 8}, {"anxiety", 8}, {"therapy", 7},
	{"stress", 7}, {"burnout", 7}, {"suicide", 8}, {"self harm", 8},
	{"counseling", 7}, {"psychologist", 6}, {"psychiatrist", 6},
	{"meditation", 5}, {"mindfulness", 5}, {"wellness", 6},

	// Climate and environment
	{"climate change", 8}, {"environment", 7}, {"pollution", 7}, {"sustainability", 6},
	{"global warming", 7}, {"carbon footprint", 6}, {"renewable energy", 6},
	{"air quality", 7}, {"water pollution", 6}, {"waste management", 6},
	{"green energy", 6}, {"solar power", 5}, {"electric vehicle", 6},

	// Social media
	{"social media", 6}, {"instagram", 5}, {"tiktok", 5}, {"youtube", 5},
	{"facebook", 5}, {"twitter", 5}, {"linkedin", 5}, {"snapchat", 4},
	{"online harassment", 7}, {"cyberbullying", 7}, {"fake news", 6},
	{"digital addiction", 7}, {"screen time", 6}, {"social media detox", 6},

	// Housing and living costs
	{"housing", 7}, {"rent", 6}, {"home", 6}, {"affordable", 7},
	{"rental crisis", 8}, {"housing shortage", 7}, {"real estate", 6},
	{"mortgage", 6}, {"property prices", 6}, {"landlord", 5},
	{"shared accommodation", 6}, {"pg", 6}, {"hostel", 6},

	// Transportation
	{"transportation", 6}, {"public transport", 6}, {"metro", 5}, {"bus", 4},
	{"traffic", 6}, {"commute", 6}, {"fuel prices", 6}, {"petrol", 5}, {"diesel", 5},
	{"ride sharing", 5}, {"uber", 5}, {"ola", 5}, {"auto rickshaw", 4},

	// Healthcare
	{"healthcare", 7}, {"medical", 6}, {"hospital", 5}, {"doctor", 5},
	{"health insurance", 7}, {"medical bills", 7}, {"pharmacy", 5},
	{"mental healthcare", 8}, {"therapy cost", 7}, {"medication", 6},

	// Politics and governance
	{"politics", 5}, {"government", 5}, {"policy", 6}, {"reform", 6},
	{"election", 6}, {"voting", 6}, {"democracy", 6}, {"corruption", 7},
	{"transparency", 6}, {"accountability", 6}, {"governance", 6},

	// Rights and social issues
	{"rights", 6}, {"freedom", 6}, {"equality", 7}, {"justice", 6},
	{"discrimination", 7}, {"racism", 7}, {"sexism", 7}, {"caste", 7},
	{"lgbtq", 7}, {"gender equality", 7}, {"women rights", 7},
	{"freedom of speech", 7}, {"censorship", 6}, {"privacy rights", 7},

	// Future and aspirations
	{"future", 8}, {"dream", 7}, {"aspiration", 7}, {"goal", 6},
	{"career goals", 8}, {"life goals", 7}, {"ambition", 7},
	{"success", 6}, {"achievement", 6}, {"motivation", 6},

	// Skills
	{"skill", 7}, {"training", 6}, {"development", 6}, {"learning", 6},
	{"skill development", 8}, {"upskilling", 7}, {"reskilling", 7},
	{"certification", 6}, {"course", 6}, {"workshop", 5},
	{"soft skills", 6}, {"communication skills", 6}, {"leadership", 6},
}

// PoliticalLexicon weights topics by prominence in government and
// policy-focused coverage.
var PoliticalLexicon = []Entry{
	// Government and administration
	{"government", 10}, {"minister", 9}, {"parliament", 8}, {"assembly", 7},
	{"prime minister", 10}, {"chief minister", 9}, {"bureaucracy", 7},
	{"civil service", 7}, {"ias", 7}, {"ips", 6}, {"irs", 6},
	{"governance", 8}, {"administration", 7}, {"public administration", 7},

	// Policy and programs
	{"policy", 9}, {"scheme", 8}, {"program", 7}, {"initiative", 7},
	{"government scheme", 9}, {"welfare scheme", 8}, {"subsidy", 7},
	{"beneficiary", 6}, {"targeted", 6}, {"implementation", 7},
	{"monitoring", 6}, {"evaluation", 6}, {"impact assessment", 6},

	// Economy and finance
	{"budget", 8}, {"finance", 7}, {"economy", 8}, {"gdp", 7},
	{"union budget", 9}, {"state budget", 8}, {"fiscal policy", 8},
	{"monetary policy", 7}, {"rbi", 7}, {"reserve bank", 7},
	{"economic growth", 8}, {"inflation", 7}, {"unemployment rate", 7},
	{"tax collection", 7}, {"revenue", 6}, {"expenditure", 6},

	// Elections and democracy
	{"election", 9}, {"vote", 8}, {"campaign", 7}, {"candidate", 7},
	{"voting", 8}, {"electoral", 7}, {"constituency", 6}, {"mp", 7}, {"mla", 6},
	{"political party", 8}, {"opposition", 7}, {"coalition", 6},
	{"democracy", 8}, {"constitution", 8}, {"fundamental rights", 7},

	// Legislation and law
	{"law", 8}, {"act", 7}, {"bill", 7}, {"legislation", 8},
	{"parliamentary", 8}, {"legislative", 7}, {"amendment", 7},
	{"supreme court", 8}, {"high court", 7}, {"judiciary", 7},
	{"legal framework", 7}, {"constitutional", 7}, {"statutory", 6},

	// Infrastructure and development
	{"infrastructure", 7}, {"development", 7}, {"project", 6},
	{"smart city", 7}, {"digital india", 7}, {"make in india", 7},
	{"highway", 6}, {"railway", 6}, {"metro", 6}, {"airport", 6},
	{"urban development", 7}, {"rural development", 7},
	{"housing for all", 7}, {"swachh bharat", 6},

	// Defense and security
	{"defense", 6}, {"security", 7}, {"military", 6},
	{"national security", 8}, {"border security", 7}, {"terrorism", 7},
	{"army", 6}, {"navy", 6}, {"air force", 6}, {"paramilitary", 6},
	{"intelligence", 6}, {"cyber security", 6}, {"internal security", 7},

	// Foreign policy
	{"foreign policy", 7}, {"diplomacy", 6}, {"international", 6},
	{"bilateral", 6}, {"multilateral", 6}, {"trade agreement", 6},
	{"embassy", 5}, {"consulate", 5}, {"visa", 5}, {"immigration", 6},
	{"un", 6}, {"wto", 5}, {"saarc", 5}, {"brics", 5},

	// Agriculture and rural
	{"agriculture", 6}, {"farmer", 6}, {"rural", 6},
	{"farmers protest", 8}, {"agricultural policy", 7}, {"crop insurance", 6},
	{"minimum support price", 7}, {"msp", 7}, {"mandi", 6},
	{"rural employment", 7}, {"mnrega", 7}, {"panchayat", 6},

	// Energy and environment
	{"energy", 6}, {"power", 6}, {"electricity", 5},
	{"renewable energy", 6}, {"solar power", 5}, {"wind energy", 5},
	{"coal", 5}, {"petroleum", 5}, {"natural gas", 5},
	{"environmental policy", 6}, {"climate policy", 6}, {"green energy", 5},

	// Taxation
	{"tax", 7}, {"gst", 6}, {"fiscal", 6},
	{"income tax", 7}, {"corporate tax", 6}, {"property tax", 5},
	{"tax evasion", 6}, {"black money", 6}, {"demonetization", 7},
	{"tax reform", 7}, {"simplification", 6},

	// Welfare
	{"welfare", 6}, {"social", 6}, {"public", 6},
	{"social security", 7}, {"pension", 6}, {"healthcare policy", 7},
	{"education policy", 7}, {"skill development", 6}, {"employment generation", 7},
	{"women empowerment", 7}, {"child welfare", 6}, {"senior citizens", 6},

	// Accountability
	{"corruption", 6}, {"transparency", 6}, {"accountability", 6},
	{"rti", 6}, {"right to information", 6}, {"whistleblower", 5},
	{"audit", 5}, {"cag", 5}, {"vigilance", 5}, {"ethics", 5},
	{"good governance", 7}, {"e-governance", 6}, {"digital governance", 6},
}

// ScoreContent matches every lexicon entry as a case-insensitive substring
// of content. Overlapping matches all count: "student loan" also fires
// "student" and "loan"-free entries independently. Returns the summed
// count*weight score and the matched keywords in lexicon order.
func ScoreContent(content string, lexicon []Entry) (int, []string) {
	lower := strings.ToLower(content)
	total := 0
	var found []string

	for _, entry := range lexicon {
		if !strings.Contains(lower, entry.Keyword) {
			continue
		}
		count := strings.Count(lower, entry.Keyword)
		total += count * entry.Weight
		found = append(found, entry.Keyword)
	}
	return total, found
}

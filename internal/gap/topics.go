package gap

import "strings"

// topicNames maps raw lexicon keywords to the issue names shown to users.
// Keywords without an entry fall back to title-cased text.
var topicNames = map[string]string{
	// Education
	"education":         "Education System & Access",
	"student":           "Student Life & Challenges",
	"university":        "Higher Education Issues",
	"college":           "College Education Problems",
	"tuition fees":      "Tuition Fee Crisis",
	"student loan":      "Student Loan Burden",
	"education loan":    "Education Loan Crisis",
	"college debt":      "College Debt Crisis",
	"exam pressure":     "Exam Pressure & Stress",
	"board exams":       "Board Exam System",
	"entrance exam":     "Entrance Exam Competition",
	"competitive exams": "Competitive Exam Pressure",
	"online classes":    "Online Learning Challenges",
	"digital learning":  "Digital Education Gap",
	"campus placement":  "Campus Placement Issues",
	"job placement":     "Job Placement Problems",

	// Employment
	"job":                 "Job Market Crisis",
	"career":              "Career Development Challenges",
	"employment":          "Employment Opportunities",
	"unemployment":        "Youth Unemployment Crisis",
	"job market":          "Job Market Conditions",
	"job search":          "Job Search Difficulties",
	"salary":              "Salary & Compensation Issues",
	"low salary":          "Low Salary Problem",
	"work life balance":   "Work-Life Balance",
	"workplace stress":    "Workplace Stress & Burnout",
	"internship":          "Internship Opportunities",
	"fresher":             "Fresher Job Challenges",
	"entry level":         "Entry-Level Job Crisis",
	"experience required": "Experience Requirement Problem",

	// Mental health
	"mental health":     "Mental Health Crisis",
	"depression":        "Depression & Mental Illness",
	"anxiety":           "Anxiety & Stress Disorders",
	"therapy":           "Mental Health Therapy Access",
	"stress":            "Stress & Pressure",
	"burnout":           "Burnout & Exhaustion",
	"suicide":           "Suicide Prevention",
	"self harm":         "Self-Harm & Mental Health",
	"counseling":        "Mental Health Counseling",
	"mental healthcare": "Mental Healthcare Access",
	"therapy cost":      "Mental Health Treatment Cost",

	// Technology
	"technology":              "Technology Access & Skills",
	"tech":                    "Tech Industry Opportunities",
	"digital":                 "Digital Divide & Access",
	"app development":         "App Development Opportunities",
	"coding":                  "Coding & Programming Skills",
	"programming":             "Programming Education",
	"artificial intelligence": "AI & Machine Learning",
	"ai":                      "Artificial Intelligence Impact",
	"cybersecurity":           "Cybersecurity & Online Safety",
	"data privacy":            "Data Privacy & Protection",
	"online safety":           "Online Safety & Security",
	"digital divide":          "Digital Divide & Inequality",
	"internet access":         "Internet Access & Connectivity",

	// Climate
	"climate change":   "Climate Change & Environment",
	"environment":      "Environmental Protection",
	"pollution":        "Pollution & Air Quality",
	"global warming":   "Global Warming Concerns",
	"air quality":      "Air Quality & Pollution",
	"water pollution":  "Water Pollution Crisis",
	"renewable energy": "Renewable Energy Transition",
	"green energy":     "Green Energy & Sustainability",

	// Social media
	"social media":      "Social Media Impact",
	"instagram":         "Instagram & Social Media",
	"tiktok":            "TikTok & Short Videos",
	"youtube":           "YouTube & Content Creation",
	"online harassment": "Online Harassment & Bullying",
	"cyberbullying":     "Cyberbullying & Online Safety",
	"fake news":         "Fake News & Misinformation",
	"digital addiction": "Digital Addiction & Screen Time",
	"screen time":       "Screen Time & Digital Wellness",

	// Housing
	"housing":              "Housing Affordability Crisis",
	"rent":                 "Rental Housing Crisis",
	"rental crisis":        "Rental Housing Crisis",
	"housing shortage":     "Housing Shortage Problem",
	"real estate":          "Real Estate & Property",
	"property prices":      "Property Price Inflation",
	"shared accommodation": "Shared Housing & PG",
	"pg":                   "PG & Hostel Accommodation",
	"hostel":               "Hostel & Student Housing",

	// Transportation
	"transportation":   "Public Transportation",
	"public transport": "Public Transport System",
	"metro":            "Metro & Urban Transport",
	"traffic":          "Traffic & Commute Issues",
	"commute":          "Daily Commute Problems",
	"fuel prices":      "Fuel Price Inflation",
	"petrol":           "Petrol & Diesel Prices",
	"ride sharing":     "Ride-Sharing & Mobility",

	// Healthcare
	"healthcare":       "Healthcare Access & Quality",
	"medical":          "Medical Care & Treatment",
	"health insurance": "Health Insurance Coverage",
	"medical bills":    "Medical Bills & Healthcare Cost",
	"pharmacy":         "Pharmacy & Medicine Access",

	// Skills
	"skill":                "Skill Development & Training",
	"skill development":    "Skill Development Programs",
	"upskilling":           "Upskilling & Career Growth",
	"reskilling":           "Reskilling & Career Change",
	"certification":        "Professional Certification",
	"course":               "Online Courses & Learning",
	"soft skills":          "Soft Skills Development",
	"communication skills": "Communication Skills",
	"leadership":           "Leadership Development",

	// Future and aspirations
	"future":       "Future Planning & Aspirations",
	"dream":        "Dreams & Life Goals",
	"aspiration":   "Career Aspirations",
	"career goals": "Career Goals & Planning",
	"life goals":   "Life Goals & Ambitions",
	"success":      "Success & Achievement",
	"motivation":   "Motivation & Inspiration",

	// Rights and social issues
	"rights":            "Human Rights & Freedoms",
	"freedom":           "Freedom & Liberty",
	"equality":          "Equality & Social Justice",
	"justice":           "Justice & Fairness",
	"discrimination":    "Discrimination & Bias",
	"racism":            "Racism & Prejudice",
	"sexism":            "Sexism & Gender Bias",
	"caste":             "Caste Discrimination",
	"lgbtq":             "LGBTQ+ Rights & Acceptance",
	"gender equality":   "Gender Equality & Women Rights",
	"women rights":      "Women Rights & Empowerment",
	"freedom of speech": "Freedom of Speech & Expression",
	"censorship":        "Censorship & Free Speech",
	"privacy rights":    "Privacy Rights & Data Protection",
}

// DescribeTopic returns the human-readable issue name for a lexicon keyword.
func DescribeTopic(keyword string) string {
	if name, ok := topicNames[keyword]; ok {
		return name
	}
	return titleCase(keyword)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

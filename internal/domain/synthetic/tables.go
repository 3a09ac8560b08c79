package synthetic

import "strings"

type priceRange struct {
	min float64
	max float64
}

var defaultPriceRange = priceRange{min: 1000, max: 3000}

// Rupees per quintal.
var commodityRanges = map[string]priceRange{
	"rice":         {min: 2000, max: 3000},
	"paddy":        {min: 1900, max: 2400},
	"wheat":        {min: 2100, max: 2700},
	"maize":        {min: 1700, max: 2300},
	"ragi":         {min: 3000, max: 3900},
	"tomato":       {min: 800, max: 2500},
	"onion":        {min: 1000, max: 3000},
	"potato":       {min: 900, max: 1800},
	"banana":       {min: 1500, max: 3500},
	"coconut":      {min: 2500, max: 4000},
	"cotton":       {min: 5500, max: 7500},
	"groundnut":    {min: 4500, max: 6500},
	"soybean":      {min: 3800, max: 4800},
	"turmeric":     {min: 6000, max: 9000},
	"chilli":       {min: 7000, max: 12000},
	"black pepper": {min: 45000, max: 60000},
	"cardamom":     {min: 110000, max: 150000},
	"rubber":       {min: 15000, max: 18000},
	"arecanut":     {min: 35000, max: 48000},
	"sugarcane":    {min: 290, max: 350},
}

var defaultVarieties = []string{"Local", "Hybrid", "Other"}

var commodityVarieties = map[string][]string{
	"rice":         {"Sona Masoori", "Matta", "Ponni"},
	"paddy":        {"Jyothi", "Uma", "Common"},
	"wheat":        {"Lokwan", "Sharbati", "Dara"},
	"maize":        {"Yellow", "Hybrid", "Local"},
	"tomato":       {"Hybrid", "Local", "Deshi"},
	"onion":        {"Red", "Bellary", "Pole"},
	"potato":       {"Jyoti", "Chipsona", "Local"},
	"banana":       {"Nendran", "Robusta", "Palayamthodan"},
	"coconut":      {"Milling", "Ball", "Tender"},
	"cotton":       {"H-4", "DCH-32", "Shankar-6"},
	"groundnut":    {"Bold", "Java", "TMV-2"},
	"turmeric":     {"Finger", "Bulb", "Erode"},
	"chilli":       {"Guntur Sannam", "Byadgi", "Teja"},
	"black pepper": {"Ungarbled", "Garbled", "Malabar"},
	"cardamom":     {"Bold", "Medium", "Small"},
	"rubber":       {"RSS-4", "RSS-5", "ISNR-20"},
}

var stateDistricts = map[string][]string{
	"kerala":         {"Ernakulam", "Thrissur", "Palakkad", "Kozhikode", "Thiruvananthapuram"},
	"tamil nadu":     {"Coimbatore", "Madurai", "Thanjavur", "Salem"},
	"karnataka":      {"Mysuru", "Belagavi", "Mandya", "Dharwad"},
	"andhra pradesh": {"Guntur", "Krishna", "Kurnool", "Anantapur"},
	"telangana":      {"Warangal", "Nizamabad", "Karimnagar", "Khammam"},
	"maharashtra":    {"Nashik", "Pune", "Nagpur", "Kolhapur"},
	"punjab":         {"Ludhiana", "Amritsar", "Patiala", "Bathinda"},
	"uttar pradesh":  {"Lucknow", "Agra", "Varanasi", "Meerut"},
	"west bengal":    {"Bardhaman", "Hooghly", "Nadia", "Murshidabad"},
	"gujarat":        {"Rajkot", "Ahmedabad", "Junagadh", "Anand"},
}

var defaultDistricts = []string{"Central"}

type namePool struct {
	first []string
	last  []string
	// full is used for states whose names do not split into parts.
	full []string
}

var stateNames = map[string]namePool{
	"kerala": {
		first: []string{"Anil", "Lakshmi", "Suresh", "Deepa", "Rajesh", "Sreeja", "Manoj", "Bindu"},
		last:  []string{"Nair", "Menon", "Pillai", "Varghese", "Kurup", "Thomas", "Warrier"},
	},
	"tamil nadu": {
		first: []string{"Karthik", "Meena", "Senthil", "Kavitha", "Murugan", "Revathi", "Arun"},
		last:  []string{"Subramanian", "Rajan", "Krishnan", "Natarajan", "Pandian", "Selvam"},
	},
	"karnataka": {
		first: []string{"Manjunath", "Shwetha", "Raghavendra", "Pavithra", "Basavaraj", "Rekha"},
		last:  []string{"Gowda", "Hegde", "Patil", "Shetty", "Kulkarni", "Rao"},
	},
	"andhra pradesh": {
		first: []string{"Venkata", "Padma", "Srinivas", "Lalitha", "Ravi", "Sujatha"},
		last:  []string{"Reddy", "Naidu", "Chowdary", "Varma", "Prasad"},
	},
	"telangana": {
		first: []string{"Ramesh", "Swathi", "Naresh", "Anitha", "Mahesh", "Sravani"},
		last:  []string{"Goud", "Rao", "Reddy", "Yadav", "Chary"},
	},
	"maharashtra": {
		first: []string{"Sachin", "Priya", "Ganesh", "Sunita", "Vijay", "Ashwini"},
		last:  []string{"Patil", "Deshmukh", "Jadhav", "Pawar", "Kulkarni", "Shinde"},
	},
	"punjab": {
		first: []string{"Gurpreet", "Harjit", "Manpreet", "Simran", "Jaspal", "Navneet"},
		last:  []string{"Singh", "Kaur", "Sandhu", "Gill", "Dhillon", "Brar"},
	},
	"gujarat": {
		first: []string{"Hitesh", "Nisha", "Jignesh", "Komal", "Bhavesh", "Hetal"},
		last:  []string{"Patel", "Shah", "Desai", "Joshi", "Parmar"},
	},
	"west bengal": {
		full: []string{"Subhas Ghosh", "Mitali Das", "Arindam Banerjee", "Rupa Mondal", "Sourav Chatterjee", "Tanima Roy"},
	},
}

var defaultNames = namePool{
	full: []string{"Ramesh Kumar", "Sunita Devi", "Amit Sharma", "Kavita Singh", "Vijay Yadav", "Neha Gupta", "Rakesh Verma", "Pooja Mishra"},
}

var stateLanguages = map[string][]string{
	"kerala":         {"Malayalam", "English"},
	"tamil nadu":     {"Tamil", "English"},
	"karnataka":      {"Kannada", "English"},
	"andhra pradesh": {"Telugu", "English"},
	"telangana":      {"Telugu", "Urdu", "English"},
	"maharashtra":    {"Marathi", "Hindi", "English"},
	"punjab":         {"Punjabi", "Hindi", "English"},
	"gujarat":        {"Gujarati", "Hindi", "English"},
	"west bengal":    {"Bengali", "English"},
	"uttar pradesh":  {"Hindi", "English"},
}

var defaultLanguages = []string{"Hindi", "English"}

var designations = []string{
	"Agricultural Officer",
	"Assistant Director of Agriculture",
	"Agricultural Extension Officer",
	"Subject Matter Specialist",
	"Block Technology Manager",
}

var specializations = []string{
	"Crop Protection",
	"Soil Health Management",
	"Horticulture",
	"Organic Farming",
	"Water Management",
	"Farm Mechanization",
}

var departments = []string{
	"Department of Agriculture",
	"Krishi Vigyan Kendra",
	"Agricultural Technology Management Agency",
	"Department of Horticulture",
}

var phonePrefixes = []string{"94", "98", "97", "99", "70", "80", "88", "63"}

var emailDomains = []string{"gov.in", "nic.in", "icar.gov.in", "kvk.org.in"}

var availableHours = []string{
	"Mon-Fri 10:00-17:00",
	"Mon-Sat 09:30-16:30",
	"Tue-Sat 10:00-16:00",
	"Mon-Fri 09:00-13:00",
}

func tableKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Districts returns the known districts of a state, or a single placeholder.
func Districts(state string) []string {
	if districts, ok := stateDistricts[tableKey(state)]; ok {
		return districts
	}
	return defaultDistricts
}

package synthetic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
)

// GenerateOfficer derives an extension officer from (state, district, index).
// Nothing here reads a clock or a random source.
func GenerateOfficer(state, district string, index int) agri.Officer {
	key := tableKey(state)
	seed := func(salt string) int64 {
		return Hash(state + strconv.Itoa(index) + salt)
	}

	name, emailLocal := officerName(key, index)
	pin := 500000 + Hash(district+state+strconv.Itoa(index))%50000

	langs := append([]string(nil), languagesFor(key)...)
	if !contains(langs, "Hindi") && seed("hindi")%2 == 0 {
		langs = append(langs, "Hindi")
	}

	fee := 0
	if h := seed("fee"); h%3 != 0 {
		fee = 100 + int(h%5)*50
	}

	return agri.Officer{
		Name:            name,
		Designation:     designations[index%len(designations)],
		Department:      departments[index%len(departments)],
		Specialization:  specializations[index%len(specializations)],
		State:           state,
		District:        district,
		Address:         fmt.Sprintf("Krishi Bhavan, %s, %s - %d", district, state, pin),
		Phone:           fmt.Sprintf("+91 %s%08d", pick(phonePrefixes, seed("phone")), seed("digits")%100000000),
		Email:           emailLocal + "@" + pick(emailDomains, seed("email")),
		AvailableHours:  pick(availableHours, seed("hours")),
		ExperienceYears: 3 + int(seed("experience")%25),
		Languages:       langs,
		Rating:          math.Round((3.5+float64(seed("rating")%15)/10)*10) / 10,
		IsAvailable:     seed("available")%10 < 8,
		ConsultationFee: fee,
	}
}

// GenerateOfficers returns count officers for a district.
func GenerateOfficers(state, district string, count int) []agri.Officer {
	out := make([]agri.Officer, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, GenerateOfficer(state, district, i))
	}
	return out
}

func officerName(stateKey string, index int) (string, string) {
	pool, ok := stateNames[stateKey]
	if !ok {
		pool = defaultNames
	}
	if len(pool.full) > 0 {
		name := pool.full[index%len(pool.full)]
		return name, strings.ToLower(strings.ReplaceAll(name, " ", "."))
	}
	first := pool.first[index%len(pool.first)]
	last := pool.last[index%len(pool.last)]
	return first + " " + last, strings.ToLower(first + "." + last)
}

func languagesFor(stateKey string) []string {
	if langs, ok := stateLanguages[stateKey]; ok {
		return langs
	}
	return defaultLanguages
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

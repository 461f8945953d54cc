package riot

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors returned by the URL builders.
var (
	ErrUnknownRegion   = errors.New("unknown region")
	ErrUnknownTier     = errors.New("unknown tier")
	ErrUnknownDivision = errors.New("unknown division")
	ErrApexDivision    = errors.New("apex tiers do not have divisions")
)

// regionBaseURLs maps region codes to their platform API base URLs
var regionBaseURLs = map[string]string{
	"NA":  "https://na1.api.riotgames.com",
	"EUW": "https://euw1.api.riotgames.com",
	"EUN": "https://eun1.api.riotgames.com",
	"BR":  "https://br1.api.riotgames.com",
	"JP":  "https://jp1.api.riotgames.com",
	"KR":  "https://kr.api.riotgames.com",
	"LA":  "https://la1.api.riotgames.com",
	"OC":  "https://oc1.api.riotgames.com",
	"TR":  "https://tr1.api.riotgames.com",
	"RU":  "https://ru.api.riotgames.com",
	"PH":  "https://ph2.api.riotgames.com",
	"SG":  "https://sg2.api.riotgames.com",
	"TH":  "https://th2.api.riotgames.com",
	"TW":  "https://tw2.api.riotgames.com",
	"VN":  "https://vn2.api.riotgames.com",
}

// divisionNumerals maps division codes to the Roman numerals the API expects.
// The empty division is valid for apex tiers only.
var divisionNumerals = map[string]string{
	"1": "I",
	"2": "II",
	"3": "III",
	"4": "IV",
	"":  "",
}

// validTiers is the set of ranked tiers accepted by league-v4
var validTiers = map[string]bool{
	"iron":        true,
	"bronze":      true,
	"silver":      true,
	"gold":        true,
	"platinum":    true,
	"diamond":     true,
	"master":      true,
	"grandmaster": true,
	"challenger":  true,
}

// BaseURL returns the platform API base URL for a region code
func BaseURL(region string) (string, error) {
	baseURL, ok := regionBaseURLs[strings.ToUpper(region)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return baseURL, nil
}

// Regions returns all known region codes
func Regions() []string {
	regions := make([]string, 0, len(regionBaseURLs))
	for region := range regionBaseURLs {
		regions = append(regions, region)
	}
	return regions
}

// IsApexTier reports whether a tier uses the apex league endpoint
// (a single league list with no divisions or pagination)
func IsApexTier(tier string) bool {
	switch strings.ToLower(tier) {
	case "master", "grandmaster", "challenger":
		return true
	}
	return false
}

// LeaguePath builds the league-v4 request path for a tier, division and page.
// Apex tiers map to the whole-league endpoint and must not carry a division;
// all other tiers map to the paginated entries endpoint.
func LeaguePath(tier, division string, page int) (string, error) {
	tier = strings.ToLower(tier)
	if !validTiers[tier] {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}

	numeral, ok := divisionNumerals[division]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDivision, division)
	}

	if IsApexTier(tier) {
		if numeral != "" {
			return "", fmt.Errorf("%w: tier %q", ErrApexDivision, tier)
		}
		return fmt.Sprintf("/lol/league/v4/%sleagues/by-queue/RANKED_SOLO_5x5", tier), nil
	}

	return fmt.Sprintf("/lol/league/v4/entries/RANKED_SOLO_5x5/%s/%s?page=%d",
		strings.ToUpper(tier), numeral, page), nil
}

// SummonerPath builds the summoner-v4 request path for an encrypted summoner ID
func SummonerPath(summonerID string) string {
	return fmt.Sprintf("/lol/summoner/v4/summoners/%s", summonerID)
}

// DivisionNumeral converts a division code ("1".."4" or empty) to its Roman
// numeral as stored alongside collected summoners
func DivisionNumeral(division string) (string, error) {
	numeral, ok := divisionNumerals[division]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDivision, division)
	}
	return numeral, nil
}

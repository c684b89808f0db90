// Package country provides the ISO country reference table shared by the API
// and the ranking engine's collaborators. Codes are ISO 3166-1 alpha-2 plus
// the GLOBAL sentinel handled by callers via model.CountryGlobal.
package country

import "sort"

// Info describes one country for dropdowns and region grouping.
type Info struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Region names, in display order.
const (
	RegionNorthAmerica = "North America"
	RegionLatinAmerica = "Latin America"
	RegionEurope       = "Europe"
	RegionMiddleEast   = "Middle East"
	RegionAfrica       = "Africa"
	RegionAsiaPacific  = "Asia Pacific"
)

var countries = []Info{
	{"US", "United States", RegionNorthAmerica},
	{"CA", "Canada", RegionNorthAmerica},
	{"MX", "Mexico", RegionLatinAmerica},
	{"BR", "Brazil", RegionLatinAmerica},
	{"AR", "Argentina", RegionLatinAmerica},
	{"CL", "Chile", RegionLatinAmerica},
	{"CO", "Colombia", RegionLatinAmerica},
	{"PE", "Peru", RegionLatinAmerica},
	{"GB", "United Kingdom", RegionEurope},
	{"FR", "France", RegionEurope},
	{"DE", "Germany", RegionEurope},
	{"IT", "Italy", RegionEurope},
	{"ES", "Spain", RegionEurope},
	{"PT", "Portugal", RegionEurope},
	{"NL", "Netherlands", RegionEurope},
	{"BE", "Belgium", RegionEurope},
	{"LU", "Luxembourg", RegionEurope},
	{"CH", "Switzerland", RegionEurope},
	{"AT", "Austria", RegionEurope},
	{"IE", "Ireland", RegionEurope},
	{"SE", "Sweden", RegionEurope},
	{"NO", "Norway", RegionEurope},
	{"DK", "Denmark", RegionEurope},
	{"FI", "Finland", RegionEurope},
	{"PL", "Poland", RegionEurope},
	{"CZ", "Czechia", RegionEurope},
	{"RO", "Romania", RegionEurope},
	{"GR", "Greece", RegionEurope},
	{"TR", "Turkey", RegionEurope},
	{"AE", "United Arab Emirates", RegionMiddleEast},
	{"SA", "Saudi Arabia", RegionMiddleEast},
	{"QA", "Qatar", RegionMiddleEast},
	{"KW", "Kuwait", RegionMiddleEast},
	{"BH", "Bahrain", RegionMiddleEast},
	{"OM", "Oman", RegionMiddleEast},
	{"IL", "Israel", RegionMiddleEast},
	{"JO", "Jordan", RegionMiddleEast},
	{"EG", "Egypt", RegionAfrica},
	{"MA", "Morocco", RegionAfrica},
	{"DZ", "Algeria", RegionAfrica},
	{"TN", "Tunisia", RegionAfrica},
	{"NG", "Nigeria", RegionAfrica},
	{"GH", "Ghana", RegionAfrica},
	{"KE", "Kenya", RegionAfrica},
	{"TZ", "Tanzania", RegionAfrica},
	{"CI", "Ivory Coast", RegionAfrica},
	{"SN", "Senegal", RegionAfrica},
	{"ZA", "South Africa", RegionAfrica},
	{"AO", "Angola", RegionAfrica},
	{"MZ", "Mozambique", RegionAfrica},
	{"CN", "China", RegionAsiaPacific},
	{"JP", "Japan", RegionAsiaPacific},
	{"KR", "South Korea", RegionAsiaPacific},
	{"IN", "India", RegionAsiaPacific},
	{"ID", "Indonesia", RegionAsiaPacific},
	{"MY", "Malaysia", RegionAsiaPacific},
	{"TH", "Thailand", RegionAsiaPacific},
	{"VN", "Vietnam", RegionAsiaPacific},
	{"PH", "Philippines", RegionAsiaPacific},
	{"BD", "Bangladesh", RegionAsiaPacific},
	{"PK", "Pakistan", RegionAsiaPacific},
	{"UZ", "Uzbekistan", RegionAsiaPacific},
	{"KZ", "Kazakhstan", RegionAsiaPacific},
	{"SG", "Singapore", RegionAsiaPacific},
	{"AU", "Australia", RegionAsiaPacific},
	{"NZ", "New Zealand", RegionAsiaPacific},
}

var byCode = func() map[string]Info {
	m := make(map[string]Info, len(countries))
	for _, c := range countries {
		m[c.Code] = c
	}
	return m
}()

// All returns the full country table.
func All() []Info {
	out := make([]Info, len(countries))
	copy(out, countries)
	return out
}

// Regions returns the region names in display order.
func Regions() []string {
	return []string{
		RegionNorthAmerica,
		RegionLatinAmerica,
		RegionEurope,
		RegionMiddleEast,
		RegionAfrica,
		RegionAsiaPacific,
	}
}

// Lookup returns the Info for a code.
func Lookup(code string) (Info, bool) {
	c, ok := byCode[code]
	return c, ok
}

// Name returns the display name for a code, falling back to the code itself.
func Name(code string) string {
	if c, ok := byCode[code]; ok {
		return c.Name
	}
	return code
}

// RegionsOf derives the sorted, de-duplicated region list for a bank's country
// coverage. The GLOBAL sentinel maps to the "Global" pseudo region.
func RegionsOf(codes []string) []string {
	seen := make(map[string]bool)
	for _, code := range codes {
		if code == "GLOBAL" {
			seen["Global"] = true
			continue
		}
		if c, ok := byCode[code]; ok {
			seen[c.Region] = true
		}
	}
	regions := make([]string, 0, len(seen))
	for r := range seen {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

package utils

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidState is returned when NormalizeUSState is given an unknown value.
var ErrInvalidState = errors.New("invalid US state or territory")

var nonAlpha = regexp.MustCompile(`[^A-Z]`)

// usStates maps canonical USPS codes and full state names (uppercased, no
// punctuation) to the two-letter code stored on property addresses.
var usStates = map[string]string{
	"AL": "AL", "ALABAMA": "AL",
	"AK": "AK", "ALASKA": "AK",
	"AZ": "AZ", "ARIZONA": "AZ",
	"AR": "AR", "ARKANSAS": "AR",
	"CA": "CA", "CALIFORNIA": "CA",
	"CO": "CO", "COLORADO": "CO",
	"CT": "CT", "CONNECTICUT": "CT",
	"DE": "DE", "DELAWARE": "DE",
	"FL": "FL", "FLORIDA": "FL",
	"GA": "GA", "GEORGIA": "GA",
	"HI": "HI", "HAWAII": "HI",
	"ID": "ID", "IDAHO": "ID",
	"IL": "IL", "ILLINOIS": "IL",
	"IN": "IN", "INDIANA": "IN",
	"IA": "IA", "IOWA": "IA",
	"KS": "KS", "KANSAS": "KS",
	"KY": "KY", "KENTUCKY": "KY",
	"LA": "LA", "LOUISIANA": "LA",
	"ME": "ME", "MAINE": "ME",
	"MD": "MD", "MARYLAND": "MD",
	"MA": "MA", "MASSACHUSETTS": "MA",
	"MI": "MI", "MICHIGAN": "MI",
	"MN": "MN", "MINNESOTA": "MN",
	"MS": "MS", "MISSISSIPPI": "MS",
	"MO": "MO", "MISSOURI": "MO",
	"MT": "MT", "MONTANA": "MT",
	"NE": "NE", "NEBRASKA": "NE",
	"NV": "NV", "NEVADA": "NV",
	"NH": "NH", "NEWHAMPSHIRE": "NH",
	"NJ": "NJ", "NEWJERSEY": "NJ",
	"NM": "NM", "NEWMEXICO": "NM",
	"NY": "NY", "NEWYORK": "NY",
	"NC": "NC", "NORTHCAROLINA": "NC",
	"ND": "ND", "NORTHDAKOTA": "ND",
	"OH": "OH", "OHIO": "OH",
	"OK": "OK", "OKLAHOMA": "OK",
	"OR": "OR", "OREGON": "OR",
	"PA": "PA", "PENNSYLVANIA": "PA",
	"RI": "RI", "RHODEISLAND": "RI",
	"SC": "SC", "SOUTHCAROLINA": "SC",
	"SD": "SD", "SOUTHDAKOTA": "SD",
	"TN": "TN", "TENNESSEE": "TN",
	"TX": "TX", "TEXAS": "TX",
	"UT": "UT", "UTAH": "UT",
	"VT": "VT", "VERMONT": "VT",
	"VA": "VA", "VIRGINIA": "VA",
	"WA": "WA", "WASHINGTON": "WA",
	"WV": "WV", "WESTVIRGINIA": "WV",
	"WI": "WI", "WISCONSIN": "WI",
	"WY": "WY", "WYOMING": "WY",
	"DC": "DC", "DISTRICTOFCOLUMBIA": "DC",
	"PR": "PR", "PUERTORICO": "PR",
	"GU": "GU", "GUAM": "GU",
	"VI": "VI", "VIRGINISLANDS": "VI",
	"AS": "AS", "AMERICANSAMOA": "AS",
	"MP": "MP", "NORTHERNMARIANAISLANDS": "MP",
}

// NormalizeUSState accepts a two-letter code or a full state name (any
// casing, punctuation ignored) and returns the canonical USPS code.
func NormalizeUSState(input string) (string, error) {
	key := nonAlpha.ReplaceAllString(strings.ToUpper(strings.TrimSpace(input)), "")
	if code, ok := usStates[key]; ok {
		return code, nil
	}
	return "", ErrInvalidState
}

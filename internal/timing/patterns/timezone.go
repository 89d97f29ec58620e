package patterns

import "strings"

// zoneOffsets maps US timezone abbreviations to their standard-time UTC
// offset in hours. Deliberately DST-naive: recommendations shift by the
// standard offset year-round. Swapping this for a full tz database would
// change recommended times, so the table is the contract.
var zoneOffsets = map[string]int{
	"ET":   -5,
	"EST":  -5,
	"EDT":  -5,
	"CT":   -6,
	"CST":  -6,
	"CDT":  -6,
	"MT":   -7,
	"MST":  -7,
	"MDT":  -7,
	"PT":   -8,
	"PST":  -8,
	"PDT":  -8,
	"AKST": -9,
	"HST":  -10,
}

// ZoneOffset returns the standard UTC offset in hours for a US timezone
// abbreviation. ok is false for unknown abbreviations; callers skip the
// adjustment rather than guess.
func ZoneOffset(abbr string) (offset int, ok bool) {
	offset, ok = zoneOffsets[strings.ToUpper(strings.TrimSpace(abbr))]
	return offset, ok
}

// ZoneShift returns the hour delta between two zone abbreviations
// (to minus from). ok is false when either abbreviation is unknown.
func ZoneShift(from, to string) (hours int, ok bool) {
	fromOff, okFrom := ZoneOffset(from)
	toOff, okTo := ZoneOffset(to)
	if !okFrom || !okTo {
		return 0, false
	}
	return toOff - fromOff, true
}

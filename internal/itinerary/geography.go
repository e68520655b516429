package itinerary

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Relevance weights used when ranking stops for a segment.
const (
	relevanceExactCity   = 50
	relevancePartialCity = 30
	relevanceCorridor    = 20
	relevanceSameState   = 15
)

var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR", "california": "CA",
	"colorado": "CO", "connecticut": "CT", "delaware": "DE", "florida": "FL", "georgia": "GA",
	"hawaii": "HI", "idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
	"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS", "missouri": "MO",
	"montana": "MT", "nebraska": "NE", "nevada": "NV", "new hampshire": "NH", "new jersey": "NJ",
	"new mexico": "NM", "new york": "NY", "north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
}

// Corridor is the fixed, ordered sequence of states a route passes through.
type Corridor struct {
	name   string
	states []string
	index  map[string]int
}

// NewCorridor creates a corridor from states listed in traversal order.
func NewCorridor(name string, states []string) *Corridor {
	c := &Corridor{
		name:   name,
		states: make([]string, len(states)),
		index:  make(map[string]int, len(states)),
	}
	for i, s := range states {
		code := strings.ToUpper(strings.TrimSpace(s))
		c.states[i] = code
		c.index[code] = i
	}
	return c
}

// DefaultCorridor returns the Route 66 corridor, Chicago to Santa Monica.
func DefaultCorridor() *Corridor {
	return Defaults().Corridor()
}

// Name returns the display name of the corridor.
func (c *Corridor) Name() string { return c.name }

// States returns a copy of the ordered state codes.
func (c *Corridor) States() []string {
	out := make([]string, len(c.states))
	copy(out, c.states)
	return out
}

// StateOf returns the corridor index of a state code.
func (c *Corridor) StateOf(code string) (int, bool) {
	idx, ok := c.index[strings.ToUpper(strings.TrimSpace(code))]
	return idx, ok
}

// StateIndex resolves a city label ("Chicago, IL"), a state code or a full state
// name to its corridor index.
func (c *Corridor) StateIndex(label string) (int, bool) {
	code := stateCode(label)
	if code == "" {
		return 0, false
	}
	return c.StateOf(code)
}

// IsBetween reports whether the stop's state lies within the inclusive range of the
// two endpoint states. Any unresolvable state yields false.
func (c *Corridor) IsBetween(stop Stop, startLabel, endLabel string) bool {
	si, ok := c.StateOf(stop.State)
	if !ok {
		return false
	}
	a, ok := c.StateIndex(startLabel)
	if !ok {
		return false
	}
	b, ok := c.StateIndex(endLabel)
	if !ok {
		return false
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return si >= lo && si <= hi
}

// Direction returns +1 when travelling in corridor order and -1 in reverse.
func (c *Corridor) Direction(startLabel, endLabel string) int {
	a, okA := c.StateIndex(startLabel)
	b, okB := c.StateIndex(endLabel)
	if okA && okB && b < a {
		return -1
	}
	return 1
}

// Relevance scores how well a stop fits a segment's start/end pair.
func (c *Corridor) Relevance(stop Stop, seg DailySegment) int {
	score := 0

	stopCity := normalizeText(stop.City)
	startCity := cityPart(seg.StartCity)
	endCity := cityPart(seg.EndCity)

	switch {
	case stopCity != "" && (stopCity == startCity || stopCity == endCity):
		score += relevanceExactCity
	case partialMatch(stopCity, startCity) || partialMatch(stopCity, endCity):
		score += relevancePartialCity
	}

	if c.IsBetween(stop, seg.StartCity, seg.EndCity) {
		score += relevanceCorridor
	}

	state := strings.ToUpper(strings.TrimSpace(stop.State))
	if state != "" && (state == stateCode(seg.StartCity) || state == stateCode(seg.EndCity)) {
		score += relevanceSameState
	}

	return score
}

// ScoredStop pairs a stop with its relevance for one segment.
type ScoredStop struct {
	Stop  Stop
	Score int
}

// RankStops orders stops by relevance to the segment, highest first.
// Ties keep input order so identical inputs always rank identically.
func (c *Corridor) RankStops(stops []Stop, seg DailySegment) []ScoredStop {
	ranked := make([]ScoredStop, len(stops))
	for i, s := range stops {
		ranked[i] = ScoredStop{Stop: s, Score: c.Relevance(s, seg)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// ResolveCity finds the stop a user supplied label refers to. Destination stops win
// over other categories; among equals the first stop in the pool wins.
func ResolveCity(label string, stops []Stop) (Stop, bool) {
	want := normalizeText(label)
	if want == "" {
		return Stop{}, false
	}
	wantCity := cityPart(label)
	wantState := stateCode(label)

	matchers := []func(Stop) bool{
		func(s Stop) bool { return s.IsDestination() && normalizeText(s.Label()) == want },
		func(s Stop) bool { return normalizeText(s.Label()) == want },
		func(s Stop) bool {
			return s.IsDestination() && wantState != "" && normalizeText(s.City) == wantCity && strings.EqualFold(s.State, wantState)
		},
		func(s Stop) bool { return s.IsDestination() && normalizeText(s.Name) == want },
		func(s Stop) bool {
			return s.IsDestination() && wantState == "" && normalizeText(s.City) == wantCity
		},
	}
	for _, match := range matchers {
		for _, s := range stops {
			if match(s) {
				return s, true
			}
		}
	}
	return Stop{}, false
}

// stateCode extracts a two-letter state code from a label. It accepts
// "City, ST", "City, State Name", a bare code or a bare state name.
func stateCode(label string) string {
	part := label
	if i := strings.LastIndex(label, ","); i >= 0 {
		part = label[i+1:]
	}
	part = normalizeText(part)
	if part == "" {
		return ""
	}
	if code, ok := stateNames[part]; ok {
		return code
	}
	if len(part) == 2 {
		code := strings.ToUpper(part)
		for _, known := range stateNames {
			if known == code {
				return code
			}
		}
	}
	return ""
}

// cityPart returns the normalized city portion of a "City, ST" label.
func cityPart(label string) string {
	if i := strings.LastIndex(label, ","); i >= 0 {
		return normalizeText(label[:i])
	}
	return normalizeText(label)
}

func partialMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// normalizeText folds case, strips diacritics and collapses whitespace.
func normalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	result = cases.Fold().String(result)
	return strings.Join(strings.Fields(result), " ")
}

package domain

import "time"

// Factor is a named signal contributing to a recommendation, with a
// direction and a weight in [0,10].
type Factor struct {
	Factor      string `json:"factor"`
	Impact      string `json:"impact"`
	Weight      int    `json:"weight"`
	Description string `json:"description"`
}

// Warning flags a timing risk surfaced to the user.
type Warning struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Recommendation is the computed submission-time suggestion. It is a value
// object: never persisted on its own, only embedded in a TimingRecord.
type Recommendation struct {
	RecommendedTime time.Time `json:"recommended_time"`
	DayOfWeek       string    `json:"day_of_week"`
	HourOfDay       int       `json:"hour_of_day"`
	Confidence      int       `json:"confidence"`
	Reasoning       string    `json:"reasoning"`
	Factors         []Factor  `json:"factors"`
	Warnings        []Warning `json:"warnings"`
}

// PositiveFactorCount returns the number of positive-impact factors
func (r *Recommendation) PositiveFactorCount() int {
	n := 0
	for _, f := range r.Factors {
		if f.Impact == ImpactPositive {
			n++
		}
	}
	return n
}

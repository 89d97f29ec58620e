package domain

// RecomputeMetrics derives Metrics from a submission history. Pure
// function; all ratios are 0, never NaN, when their denominator is 0.
func RecomputeMetrics(history []SubmissionEntry) Metrics {
	m := Metrics{TotalSubmissions: len(history)}

	if len(history) == 0 {
		return m
	}

	var (
		responses         int
		responseHours     float64
		followed          int
		followedPositive  int
		unfollowed        int
		unfollowedPos     int
	)

	for _, e := range history {
		if e.ResponseReceived {
			responses++
			if e.ResponseTime != nil {
				responseHours += *e.ResponseTime
			}
		}

		positive := e.ResponseReceived && e.ResponseType == ResponseTypePositive
		if e.FollowedRecommendation {
			followed++
			if positive {
				followedPositive++
			}
		} else {
			unfollowed++
			if positive {
				unfollowedPos++
			}
		}
	}

	m.ResponseRate = float64(responses) / float64(len(history)) * 100

	if responses > 0 {
		m.AverageResponseTime = responseHours / float64(responses)
	}

	if followed > 0 {
		m.OptimalTimeSuccessRate = float64(followedPositive) / float64(followed) * 100
	}

	if unfollowed > 0 {
		m.NonOptimalTimeSuccessRate = float64(unfollowedPos) / float64(unfollowed) * 100
	}

	return m
}

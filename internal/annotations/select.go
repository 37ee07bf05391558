package annotations

import "sort"

// Select keeps the target number of queries with the strongest positive
// signal. Queries with fewer than minPositives candidates at or above the
// threshold are excluded entirely. The sort is stable, so queries with equal
// positive counts keep their feed encounter order.
func Select(queries []Query, target, minPositives, threshold int) []Query {
	eligible := make([]Query, 0, len(queries))
	for _, q := range queries {
		if CountPositives(q.Candidates, threshold) >= minPositives {
			eligible = append(eligible, q)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return CountPositives(eligible[i].Candidates, threshold) >
			CountPositives(eligible[j].Candidates, threshold)
	})

	if len(eligible) > target {
		eligible = eligible[:target]
	}
	return eligible
}

// Sample bounds a query's candidate list: every positive is kept, and
// negatives fill whatever remains of the maxCandidates budget in their
// original order. When positives alone exceed the budget they are all kept
// anyway; the cap protects positives, it does not truncate them.
func Sample(candidates []Candidate, maxCandidates, threshold int) []Candidate {
	var positives, negatives []Candidate
	for _, c := range candidates {
		if c.Relevance >= threshold {
			positives = append(positives, c)
		} else {
			negatives = append(negatives, c)
		}
	}

	budget := maxCandidates - len(positives)
	if budget < 0 {
		budget = 0
	}
	if len(negatives) > budget {
		negatives = negatives[:budget]
	}

	sampled := make([]Candidate, 0, len(positives)+len(negatives))
	sampled = append(sampled, positives...)
	sampled = append(sampled, negatives...)
	return sampled
}

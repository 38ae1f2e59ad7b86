package grammar

import (
	"github.com/npillmayer/pcfg"
)

// Estimate computes maximum-likelihood probabilities for a sequence of rule
// observations: count(rule) / count(rules sharing its LHS). Duplicates in
// rules are meaningful.
func Estimate(rules []Rule) map[Rule]float64 {
	counts := make(map[Rule]int, len(rules))
	totals := make(map[string]int)
	for _, r := range rules {
		counts[r]++
		totals[r.LHS]++
	}
	probs := make(map[Rule]float64, len(counts))
	for r, c := range counts {
		probs[r] = float64(c) / float64(totals[r.LHS])
	}
	return probs
}

// WithUnknown appends exactly one observation of tag ➞ <UNK> for every
// distinct tag to a sequence of lexicon rule observations.
func WithUnknown(lexicon []Rule, tags []string) []Rule {
	augmented := make([]Rule, len(lexicon), len(lexicon)+len(tags))
	copy(augmented, lexicon)
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		augmented = append(augmented, NewRule(tag, pcfg.UnknownToken))
	}
	return augmented
}

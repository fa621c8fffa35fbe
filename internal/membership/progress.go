package membership

// Progress reports where a customer stands in the tier ladder.
type Progress struct {
	Current        Tier
	Next           Tier
	TotalSpending  int64
	SpendingToNext int64
}

// HasNext reports whether a higher tier exists.
func (p Progress) HasNext() bool {
	return p.Next != ""
}

// ForSpending returns the highest tier whose threshold total meets.
// Negative totals are treated as zero.
func ForSpending(total int64) Tier {
	current := tiers[0].Tier
	for _, info := range tiers {
		if total >= info.MinSpending {
			current = info.Tier
		}
	}
	return current
}

// ProgressFor computes the current tier, the next tier and the remaining spend.
func ProgressFor(total int64) Progress {
	if total < 0 {
		total = 0
	}
	current := ForSpending(total)
	p := Progress{Current: current, TotalSpending: total}

	i, _ := index(current)
	if i+1 < len(tiers) {
		next := tiers[i+1]
		p.Next = next.Tier
		p.SpendingToNext = max(0, next.MinSpending-total)
	}
	return p
}

package recommend

import "strings"

// TagScore rewards coverage of the selected tags: MaxTagScore × |selected ∩ game| / |selected|.
// Tags the user did not ask for never lower the score.
func (e *Engine) TagScore(gameTags, selected []string) float64 {
	return e.cfg.MaxTagScore * overlapRatio(gameTags, selected)
}

// PreferredScore is TagScore over the preferred tags, scaled by PreferredWeight
// so that preferences never outweigh explicit selections.
func (e *Engine) PreferredScore(gameTags, preferred []string) float64 {
	return e.cfg.PreferredWeight * e.cfg.MaxTagScore * overlapRatio(gameTags, preferred)
}

// DifficultyScore scores how close a game is to the desired difficulty.
// desired == nil ignores difficulty entirely.
func (e *Engine) DifficultyScore(gameDifficulty int, desired *int) float64 {
	if desired == nil {
		return 0
	}
	diff := gameDifficulty - *desired
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return e.cfg.MaxDifficultyScore
	case 1:
		return e.cfg.MaxDifficultyScore * e.cfg.NearDifficultyFactor
	default:
		return 0
	}
}

// overlapRatio returns |wanted ∩ have| / |wanted| over trimmed, non-empty tag sets.
func overlapRatio(have, wanted []string) float64 {
	if len(have) == 0 || len(wanted) == 0 {
		return 0
	}
	want := tagSet(wanted)
	if len(want) == 0 {
		return 0
	}
	got := tagSet(have)

	overlap := 0
	for t := range want {
		if _, ok := got[t]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(want))
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

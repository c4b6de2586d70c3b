package usecase

// maxTitleKeyLen bounds title-derived group keys
const maxTitleKeyLen = 120

// groupKeyFor picks the dedup identity for a candidate: the link when
// present, otherwise the normalized title. Empty means no usable key.
func groupKeyFor(c candidate) string {
	if c.product.Link != "" {
		return c.product.Link
	}
	key := NormalizeTitleKey(c.product.Title)
	if len(key) > maxTitleKeyLen {
		key = key[:maxTitleKeyLen]
	}
	return key
}

// Deduplicate merges candidates that refer to the same product. The first
// candidate seen for a group key starts as the winner; a later candidate
// replaces it when it is strictly cheaper (both prices known), or, when
// prices cannot be compared side by side, when it has a strictly higher
// rating. Input order is preserved for the surviving winners, so sorting
// before dedup keeps the result rank-stable.
func Deduplicate(candidates []candidate) []candidate {
	winners := make(map[string]int, len(candidates))
	out := make([]candidate, 0, len(candidates))

	for _, c := range candidates {
		key := groupKeyFor(c)
		if key == "" {
			continue
		}

		idx, seen := winners[key]
		if !seen {
			winners[key] = len(out)
			out = append(out, c)
			continue
		}

		if betterDuplicate(c, out[idx]) {
			out[idx] = c
		}
	}
	return out
}

// betterDuplicate reports whether the challenger should replace the current
// group winner.
func betterDuplicate(challenger, winner candidate) bool {
	cp, wp := challenger.product.Price, winner.product.Price
	if cp != nil && wp != nil {
		return *cp < *wp
	}
	return ratingOrZero(challenger) > ratingOrZero(winner)
}

func ratingOrZero(c candidate) float64 {
	if c.product.Rating == nil {
		return 0
	}
	return *c.product.Rating
}

package rewards

// Rank is the preparedness tier earned from total points.
type Rank string

const (
	RankNovice    Rank = "novice"
	RankPrepared  Rank = "prepared"
	RankResponder Rank = "responder"
	RankGuardian  Rank = "guardian"
)

// AllRanks returns all ranks in order from lowest to highest.
func AllRanks() []Rank {
	return []Rank{RankNovice, RankPrepared, RankResponder, RankGuardian}
}

// DisplayName returns a human-readable label for the rank.
func (r Rank) DisplayName() string {
	switch r {
	case RankNovice:
		return "Novice"
	case RankPrepared:
		return "Prepared"
	case RankResponder:
		return "Responder"
	case RankGuardian:
		return "Guardian"
	default:
		return string(r)
	}
}

// RankFor returns the rank for a point total.
func RankFor(points int) Rank {
	switch {
	case points >= 3000:
		return RankGuardian
	case points >= 1500:
		return RankResponder
	case points >= 500:
		return RankPrepared
	default:
		return RankNovice
	}
}

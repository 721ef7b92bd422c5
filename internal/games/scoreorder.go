package games

import (
	"strconv"

	"github.com/cornellappdev/score/internal/models"
	"github.com/cornellappdev/score/internal/sports"
)

// ScoreOrderNormalizer enforces a deterministic home/away orientation for
// the per-period score breakdown, regardless of which side the upstream
// page happened to list first. It is a pure function over the candidate's
// raw scraped fields and is recomputed from scratch on every
// reconciliation, so repeated ingestion never double-reverses.
type ScoreOrderNormalizer struct {
	homeCity string
}

// NewScoreOrderNormalizer creates a normalizer oriented around the
// program's home city.
func NewScoreOrderNormalizer() *ScoreOrderNormalizer {
	return &ScoreOrderNormalizer{homeCity: sports.HomeCity}
}

// Normalize returns the orientation-fixed breakdown for a candidate.
func (n *ScoreOrderNormalizer) Normalize(cand Candidate) models.ScoreBreakdown {
	breakdown := cand.ScoreBreakdown
	if !breakdown.Valid() {
		return breakdown
	}

	home := cand.City == n.homeCity

	// Rule A: home games list the home program's periods first.
	if home {
		breakdown = breakdown.Reversed()
	}

	// Rule B: the hockey pages order sides unreliably, so cross-check the
	// breakdown against the final box-score event and reverse again if the
	// two disagree. This can undo Rule A.
	if cand.Sport == "Ice Hockey" && len(cand.BoxScore) > 0 {
		breakdown = crossCheckFinalScore(breakdown, cand.BoxScore, home)
	}

	return breakdown
}

// crossCheckFinalScore compares the last scoring event that carries both
// side scores against the last element of each side's period array. If the
// arrays disagree as ordered but agree when swapped, the breakdown is
// reversed.
func crossCheckFinalScore(breakdown models.ScoreBreakdown, boxScore []models.PlayEvent, home bool) models.ScoreBreakdown {
	var final *models.PlayEvent
	for i := len(boxScore) - 1; i >= 0; i-- {
		if boxScore[i].CorScore != nil && boxScore[i].OppScore != nil {
			final = &boxScore[i]
			break
		}
	}
	if final == nil {
		return breakdown
	}

	corIdx := 1
	if home {
		corIdx = 0
	}

	corLast := breakdown[corIdx][len(breakdown[corIdx])-1]
	oppLast := breakdown[1-corIdx][len(breakdown[1-corIdx])-1]
	cor := strconv.Itoa(*final.CorScore)
	opp := strconv.Itoa(*final.OppScore)

	asOrdered := corLast == cor && oppLast == opp
	swapped := corLast == opp && oppLast == cor
	if !asOrdered && swapped {
		return breakdown.Reversed()
	}
	return breakdown
}

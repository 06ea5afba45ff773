package arena

import "math"

const (
	KFactor       = 32.0
	InitialRating = 1500
)

// CalculateElo returns the new rating for player A.
// score is 1.0 for a win, 0.5 for a draw, and 0.0 for a loss.
func CalculateElo(ratingA, ratingB int, score float64) int {
	expectedScoreA := 1.0 / (1.0 + math.Pow(10.0, float64(ratingB-ratingA)/400.0))
	newRating := float64(ratingA) + KFactor*(score-expectedScoreA)

	if newRating < 0 {
		return 0
	}
	return int(math.Round(newRating))
}

// EloDifference estimates how much stronger A is from its points fraction.
// It is infinite when one side scored everything.
func (s Summary) EloDifference() float64 {
	score := s.ScoreA()
	return -math.Log10(1/score-1) * 400
}

// LOS is the likelihood that A is the stronger engine, ignoring draws.
func (s Summary) LOS() float64 {
	decisive := s.WinsA + s.WinsB
	if decisive == 0 {
		return 0.5
	}
	return 0.5 + 0.5*math.Erf(float64(s.WinsA-s.WinsB)/math.Sqrt(2*float64(decisive)))
}

func (r GameResult) scoreA() float64 {
	switch r {
	case ResultEngineA:
		return 1
	case ResultEngineB:
		return 0
	default:
		return 0.5
	}
}

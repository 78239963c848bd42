package service

import (
	"math"
	"math/rand"
	"time"

	"github.com/waterops/backend/internal/domain"
	"github.com/waterops/backend/pkg/utils"
)

// DirectionService regenerates direction-level flow targets and the hourly
// plan/actual trend.
type DirectionService struct{}

// NewDirectionService creates a new direction service
func NewDirectionService() *DirectionService {
	return &DirectionService{}
}

var directionNames = []string{"Direction A", "Direction B", "Direction C", "Direction D"}

// Generate builds the plan-vs-actual comparison for each direction.
func (s *DirectionService) Generate(seed int64) []domain.DirectionTarget {
	rng := rand.New(rand.NewSource(seed + seedOffsetDirections))

	targets := make([]domain.DirectionTarget, 0, len(directionNames))
	for _, name := range directionNames {
		plan := float64(70 + rng.Intn(81))
		actual := plan + float64(-25+rng.Intn(54))
		dev := utils.RoundTo((actual-plan)/plan*100, 1)

		targets = append(targets, domain.DirectionTarget{
			Direction:      name,
			PlanFlow:       plan,
			ActualFlow:     actual,
			DeviationPct:   dev,
			DeviationLevel: domain.DeviationLevelFor(dev),
		})
	}

	return targets
}

// Trend builds the hourly plan/actual series ending at the current hour. The
// plan follows a slow sine swing around a stable base; the actual adds
// Gaussian noise.
func (s *DirectionService) Trend(seed int64, hours int, now time.Time) []domain.TrendPoint {
	rng := rand.New(rand.NewSource(seed + seedOffsetTrend))

	base := float64(85 + rng.Intn(51))
	end := now.Truncate(time.Hour)

	points := make([]domain.TrendPoint, 0, hours)
	for i := 0; i < hours; i++ {
		plan := base + math.Trunc(4*math.Sin(float64(i)/3))
		actual := plan + rng.NormFloat64()*8

		points = append(points, domain.TrendPoint{
			Time:         end.Add(-time.Duration(hours-1-i) * time.Hour),
			PlanFlow:     plan,
			ActualFlow:   utils.RoundTo(actual, 2),
			DeviationPct: utils.RoundTo((actual-plan)/plan*100, 2),
		})
	}

	return points
}

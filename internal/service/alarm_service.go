package service

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/waterops/backend/internal/domain"
)

const alarmCount = 36

// AlarmService regenerates the alarm backlog for a seed.
type AlarmService struct{}

// NewAlarmService creates a new alarm service
func NewAlarmService() *AlarmService {
	return &AlarmService{}
}

var alarmTypes = []struct {
	code, message string
}{
	{"COMM_LOSS", "Communication loss detected"},
	{"COMM_DELAY", "Communication latency threshold exceeded"},
	{"WL_HIGH", "Water level high alarm"},
	{"WL_LOW", "Water level low alarm"},
	{"MODE_MISMATCH", "Local/Remote mode mismatch"},
	{"POWER", "Power supply abnormal"},
	{"SENSOR_FAULT", "Sensor fault / out-of-range"},
}

// Generate builds the alarm list for a seed, newest first. The headworks hub
// never raises alarms.
func (s *AlarmService) Generate(stations []domain.Station, seed int64, now time.Time) []domain.Alarm {
	rng := rand.New(rand.NewSource(seed + seedOffsetAlarms))

	candidates := stations
	if len(candidates) > 1 {
		candidates = stations[1:]
	}
	if len(candidates) == 0 {
		return nil
	}

	alarms := make([]domain.Alarm, 0, alarmCount)
	for i := 0; i < alarmCount; i++ {
		station := candidates[rng.Intn(len(candidates))]
		severity := pickWeighted(rng, []string{domain.SeverityCritical, domain.SeverityWarning}, []int{35, 65})
		acked := pickWeighted(rng, []string{"yes", "no"}, []int{68, 32}) == "yes"
		at := alarmTypes[rng.Intn(len(alarmTypes))]

		alarms = append(alarms, domain.Alarm{
			ID:       uuid.New().String(),
			Time:     now.Add(-time.Duration(1+rng.Intn(2880)) * time.Minute),
			Station:  station.ID,
			Severity: severity,
			Type:     at.code,
			Message:  fmt.Sprintf("%s at %s", at.message, station.ID),
			Acked:    acked,
		})
	}

	sort.SliceStable(alarms, func(i, j int) bool {
		return alarms[i].Time.After(alarms[j].Time)
	})

	return alarms
}

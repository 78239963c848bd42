package service

import (
	"math/rand"
	"time"

	"github.com/waterops/backend/internal/domain"
)

// StationService regenerates the station topology for a seed. The station set
// and edges are fixed; only the operational state (status, mode, freshness,
// comm latency) is drawn.
type StationService struct{}

// NewStationService creates a new station service
func NewStationService() *StationService {
	return &StationService{}
}

var stationDefs = []struct {
	id, label, typ string
}{
	{"HW", "Headworks", domain.TypeHub},
	{"B.Sd.1", "B.Sd.1", domain.TypeTC},
	{"B.Cpl.5", "B.Cpl.5", domain.TypeTC},
	{"B.Sd.3", "B.Sd.3", domain.TypeSPC},
	{"B.Gs.11", "B.Gs.11", domain.TypeSPC},
	{"B.Cpl.1.4", "B.Cpl.1.4", domain.TypeSPC},
	{"B.Bt.15", "B.Bt.15", domain.TypeSPC},
	{"B.Ut.10", "B.Ut.10", domain.TypeSPC},
	{"B.Bt.4", "B.Bt.4", domain.TypeGate},
	{"B.Bt.21", "B.Bt.21", domain.TypeGate},
	{"B.Bt.9", "B.Bt.9", domain.TypeGate},
	{"B.Bt.17", "B.Bt.17", domain.TypeGate},
}

var stationEdges = []domain.Edge{
	{From: "HW", To: "B.Sd.1"},
	{From: "HW", To: "B.Cpl.5"},
	{From: "HW", To: "B.Sd.3"},
	{From: "B.Sd.3", To: "B.Cpl.1.4"},
	{From: "B.Cpl.1.4", To: "B.Bt.15"},
	{From: "B.Bt.15", To: "B.Ut.10"},
	{From: "B.Cpl.5", To: "B.Gs.11"},
	{From: "B.Gs.11", To: "B.Bt.4"},
	{From: "B.Gs.11", To: "B.Bt.21"},
	{From: "B.Gs.11", To: "B.Bt.9"},
	{From: "B.Gs.11", To: "B.Bt.17"},
}

var (
	statusOptions = []string{domain.StatusOK, domain.StatusWarn, domain.StatusAlarm, domain.StatusOffline}
	statusWeights = []int{72, 14, 10, 4}
	modeOptions   = []string{domain.ModeAuto, domain.ModeManual, domain.ModeProgram}
	modeWeights   = []int{65, 22, 13}
)

// Generate builds the station list and topology edges for a seed. The
// headworks hub is always healthy and automatic; every other station draws
// its state.
func (s *StationService) Generate(seed int64, now time.Time) ([]domain.Station, []domain.Edge) {
	rng := rand.New(rand.NewSource(seed + seedOffsetStations))

	stations := make([]domain.Station, 0, len(stationDefs))
	for _, def := range stationDefs {
		st := domain.Station{
			ID:    def.id,
			Label: def.label,
			Type:  def.typ,
		}

		if def.id == "HW" {
			st.Status = domain.StatusOK
			st.Mode = domain.ModeAuto
		} else {
			st.Status = pickWeighted(rng, statusOptions, statusWeights)
			st.Mode = pickWeighted(rng, modeOptions, modeWeights)
		}

		st.LastUpdate = now.Add(-time.Duration(5+rng.Intn(2396)) * time.Second)
		if st.Status != domain.StatusOffline {
			rtt := 20 + rng.Intn(501)
			st.CommRTTMillis = &rtt
		}
		if st.Mode == domain.ModeManual {
			st.ManualSinceMin = 5 + rng.Intn(356)
		}

		stations = append(stations, st)
	}

	edges := make([]domain.Edge, len(stationEdges))
	copy(edges, stationEdges)

	return stations, edges
}

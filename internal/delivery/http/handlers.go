package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/waterops/backend/internal/config"
	"github.com/waterops/backend/internal/domain"
	"github.com/waterops/backend/internal/geo"
	"github.com/waterops/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	cfg          *config.Config
	netCfg       *config.NetworkConfig
	network      geo.Network
	dashboardSvc *service.DashboardService
	trafficSvc   *service.TrafficService
	stationSvc   *service.StationService
	alarmSvc     *service.AlarmService
	directionSvc *service.DirectionService
}

// NewHandler creates a new handler
func NewHandler(
	cfg *config.Config,
	netCfg *config.NetworkConfig,
	dashboardSvc *service.DashboardService,
	trafficSvc *service.TrafficService,
	stationSvc *service.StationService,
	alarmSvc *service.AlarmService,
	directionSvc *service.DirectionService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		netCfg:       netCfg,
		network:      netCfg.Network(),
		dashboardSvc: dashboardSvc,
		trafficSvc:   trafficSvc,
		stationSvc:   stationSvc,
		alarmSvc:     alarmSvc,
		directionSvc: directionSvc,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "waterops-backend",
		"version": "1.0.0",
	})
}

// GetDashboard returns the full regenerated snapshot for a seed
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	snapshot := h.dashboardSvc.Snapshot(c.Context(), h.seed(c), h.thresholds(c))

	return c.JSON(domain.SnapshotResponse{
		Data:    snapshot,
		Success: true,
	})
}

// GetStations returns stations and topology edges, with optional status/mode/
// search filters
func (h *Handler) GetStations(c *fiber.Ctx) error {
	stations, edges := h.stationSvc.Generate(h.seed(c), time.Now())

	statusFilter := csvSet(c.Query("status"))
	modeFilter := csvSet(c.Query("mode"))
	search := strings.ToLower(c.Query("search"))

	var filtered []domain.Station
	for _, st := range stations {
		if statusFilter != nil && !statusFilter[st.Status] {
			continue
		}
		if modeFilter != nil && !modeFilter[st.Mode] {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(st.ID), search) {
			continue
		}
		filtered = append(filtered, st)
	}

	// Drop edges whose endpoints were filtered out.
	kept := make(map[string]bool, len(filtered))
	for _, st := range filtered {
		kept[st.ID] = true
	}
	var filteredEdges []domain.Edge
	for _, e := range edges {
		if kept[e.From] && kept[e.To] {
			filteredEdges = append(filteredEdges, e)
		}
	}

	return c.JSON(domain.StationsResponse{
		Stations: filtered,
		Edges:    filteredEdges,
		Success:  true,
	})
}

// GetAlarms returns the alarm list for a seed, newest first
func (h *Handler) GetAlarms(c *fiber.Ctx) error {
	now := time.Now()
	seed := h.seed(c)
	stations, _ := h.stationSvc.Generate(seed, now)
	alarms := h.alarmSvc.Generate(stations, seed, now)

	limit := c.QueryInt("limit", 0)
	if limit > 0 && limit < len(alarms) {
		alarms = alarms[:limit]
	}

	return c.JSON(domain.AlarmsResponse{
		Alarms:  alarms,
		Count:   len(alarms),
		Success: true,
	})
}

// GetDirections returns the direction flow targets for a seed
func (h *Handler) GetDirections(c *fiber.Ctx) error {
	return c.JSON(domain.DirectionsResponse{
		Directions: h.directionSvc.Generate(h.seed(c)),
		Success:    true,
	})
}

// GetTrend returns the hourly plan/actual series for a seed
func (h *Handler) GetTrend(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 168 { // max one week
		hours = 24
	}

	return c.JSON(domain.TrendResponse{
		Trend:   h.directionSvc.Trend(h.seed(c), hours, time.Now()),
		Success: true,
	})
}

// GetCongestion returns the intersection congestion view for a seed
func (h *Handler) GetCongestion(c *fiber.Ctx) error {
	return c.JSON(domain.CongestionResponse{
		Data:    h.trafficSvc.Congestion(h.seed(c), time.Now()),
		Success: true,
	})
}

// GetHistory returns persisted snapshot summaries within a time range
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 { // max 30 days
		hours = 24
	}

	to := time.Now()
	from := to.Add(-time.Duration(hours) * time.Hour)

	data, err := h.dashboardSvc.History(c.Context(), from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch snapshot history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// Snap projects a point onto the road network and optionally derives offset
// markers around the snapped point
func (h *Handler) Snap(c *fiber.Ctx) error {
	var req domain.SnapRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Lon < -180 || req.Lon > 180 || req.Lat < -90 || req.Lat > 90 {
		return fiber.NewError(fiber.StatusBadRequest, "Coordinates out of range")
	}

	proj, err := geo.SnapToNetwork(geo.GeoPoint{Lon: req.Lon, Lat: req.Lat}, h.network, h.netCfg.Origin)
	if errors.Is(err, geo.ErrEmptyNetwork) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Network has no segment to snap to")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Projection failed")
	}

	resp := domain.SnapResponse{
		Projection: proj,
		Success:    true,
	}

	if req.OffsetM > 0 {
		perp := geo.Perpendicular(proj.Tangent)
		dirs := []struct {
			label string
			dir   geo.LocalPoint
		}{
			{domain.ApproachAhead, proj.Tangent},
			{domain.ApproachBack, geo.LocalPoint{X: -proj.Tangent.X, Y: -proj.Tangent.Y}},
			{domain.ApproachLeft, perp},
			{domain.ApproachRight, geo.LocalPoint{X: -perp.X, Y: -perp.Y}},
		}
		for _, d := range dirs {
			loc, offErr := geo.Offset(proj.Point, d.dir, req.OffsetM, h.netCfg.Origin)
			if offErr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Offset failed")
			}
			resp.Markers = append(resp.Markers, domain.SnapMarker{Label: d.label, Location: loc})
		}
	}

	return c.JSON(resp)
}

func (h *Handler) seed(c *fiber.Ctx) int64 {
	return int64(c.QueryInt("seed", int(h.cfg.DefaultSeed)))
}

func (h *Handler) thresholds(c *fiber.Ctx) domain.Thresholds {
	return domain.Thresholds{
		StaleSeconds:  c.QueryInt("stale_s", h.cfg.StaleSeconds),
		ManualMinutes: c.QueryInt("manual_min", h.cfg.ManualMinutes),
		DeviationPct:  queryFloat(c, "deviation_pct", h.cfg.DeviationPct),
	}
}

func csvSet(value string) map[string]bool {
	if value == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, part := range strings.Split(value, ",") {
		set[strings.TrimSpace(part)] = true
	}
	return set
}

// queryFloat falls back to the default only when the parameter is absent or
// unparseable, so an explicit zero stays zero.
func queryFloat(c *fiber.Ctx, key string, defaultValue float64) float64 {
	if c.Query(key) == "" {
		return defaultValue
	}
	return c.QueryFloat(key, defaultValue)
}

package appearance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sixdouglas/suncalc"

	"github.com/mimimiku778/auto-darkmode/internal/solar"
	"github.com/mimimiku778/auto-darkmode/pkg/config"
	"github.com/mimimiku778/auto-darkmode/pkg/mqtt"
)

// ModeEvent is the message published when the agent switches the appearance
// mode.
type ModeEvent struct {
	ID        string `json:"id"`
	Host      string `json:"host"`
	Mode      Mode   `json:"mode"`
	Previous  Mode   `json:"previous"`
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}

// Agent runs one darkmode evaluation cycle per invocation: it computes the
// day's sunrise and sunset for the configured location, decides the target
// mode and applies it to the host when it differs from the current one.
// Scheduling is left to a systemd timer or cron.
type Agent struct {
	cfg       *config.Config
	store     ModeStore
	publisher mqtt.Client // nil when event publishing is disabled
	logger    *slog.Logger

	// now is replaceable in tests. The UTC offset for the decision is taken
	// from the returned instant's zone, so daylight-saving transitions are
	// picked up on every run.
	now func() time.Time
}

// NewAgent creates a new darkmode agent. publisher may be nil.
func NewAgent(cfg *config.Config, store ModeStore, publisher mqtt.Client, logger *slog.Logger) *Agent {
	return &Agent{
		cfg:       cfg,
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Run performs a single evaluation cycle.
func (a *Agent) Run(ctx context.Context) error {
	now := a.now()
	_, offsetSec := now.Zone()
	utcOffset := float64(offsetSec) / 3600

	date := solar.DateOf(now)
	sunrise, sunset := solar.ComputeSolarEvents(a.cfg.Latitude, a.cfg.Longitude, date)

	a.logSunContext(now)

	decision := Decide(sunrise, sunset, now, utcOffset)
	if decision.Indeterminate {
		// The daytime comparison cannot be performed today at this
		// latitude. Leave the host untouched rather than guessing.
		a.logger.Warn("Cannot determine appearance mode, skipping",
			"reason", decision.Reason,
			"latitude", a.cfg.Latitude,
			"longitude", a.cfg.Longitude)
		return nil
	}

	current, err := a.store.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current appearance mode: %w", err)
	}

	if current == decision.Mode {
		a.logger.Info("Appearance mode already correct",
			"mode", current,
			"sunrise", decision.Sunrise.String(),
			"sunset", decision.Sunset.String(),
			"now", decision.Now.String())
		return nil
	}

	if err := a.store.Apply(ctx, decision.Mode); err != nil {
		return fmt.Errorf("failed to apply appearance mode: %w", err)
	}

	a.logger.Info("Switched appearance mode",
		"mode", decision.Mode,
		"previous", current,
		"reason", decision.Reason,
		"sunrise", decision.Sunrise.String(),
		"sunset", decision.Sunset.String(),
		"now", decision.Now.String())

	if a.publisher != nil {
		if err := a.publishTransition(now, current, decision); err != nil {
			// The mode change itself succeeded; a lost event is not worth
			// failing the run over.
			a.logger.Warn("Failed to publish mode event", "error", err)
		}
	}

	return nil
}

// publishTransition publishes a retained mode event so late subscribers see
// the host's current appearance state.
func (a *Agent) publishTransition(now time.Time, previous Mode, decision Decision) error {
	event := ModeEvent{
		ID:        uuid.NewString(),
		Host:      a.cfg.Host,
		Mode:      decision.Mode,
		Previous:  previous,
		Sunrise:   decision.Sunrise.String(),
		Sunset:    decision.Sunset.String(),
		Reason:    decision.Reason,
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal mode event: %w", err)
	}

	topic := mqtt.AppearanceTopic(a.cfg.Host)
	if err := a.publisher.Publish(topic, 0, true, payload); err != nil {
		return err
	}

	a.logger.Debug("Published mode event", "topic", topic, "event_id", event.ID)
	return nil
}

// logSunContext logs the sun's current position for debugging. This is
// context only; the switching decision comes from the horizon-crossing
// calculation, not from the instantaneous altitude.
func (a *Agent) logSunContext(now time.Time) {
	position := suncalc.GetPosition(now, a.cfg.Latitude, a.cfg.Longitude)
	altitudeDegrees := position.Altitude * (180.0 / math.Pi)

	a.logger.Debug("Sun position context",
		"altitude_deg", fmt.Sprintf("%.1f", altitudeDegrees),
		"above_horizon", altitudeDegrees > 0,
		"golden_hour", altitudeDegrees > 0 && altitudeDegrees < 6)
}

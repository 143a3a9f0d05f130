package appearance

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

const (
	gsettingsSchema = "org.gnome.desktop.interface"
	gsettingsKey    = "color-scheme"

	schemePreferDark = "prefer-dark"
	schemeDefault    = "default"
)

// ModeStore reads and writes the host's current appearance mode. It is an
// interface so the agent can be tested without a desktop session.
type ModeStore interface {
	// Current returns the mode the host is showing right now.
	Current(ctx context.Context) (Mode, error)

	// Apply sets the host to the given mode.
	Apply(ctx context.Context, mode Mode) error
}

// GSettings is a ModeStore backed by the GNOME gsettings command and the
// org.gnome.desktop.interface color-scheme key.
type GSettings struct {
	logger *slog.Logger
}

// NewGSettings creates a gsettings-backed mode store.
func NewGSettings(logger *slog.Logger) *GSettings {
	return &GSettings{logger: logger}
}

func (g *GSettings) Current(ctx context.Context) (Mode, error) {
	out, err := exec.CommandContext(ctx, "gsettings", "get", gsettingsSchema, gsettingsKey).Output()
	if err != nil {
		return "", fmt.Errorf("failed to read color scheme: %w", err)
	}

	mode := ParseColorScheme(string(out))
	g.logger.Debug("Read current color scheme", "raw", strings.TrimSpace(string(out)), "mode", mode)
	return mode, nil
}

func (g *GSettings) Apply(ctx context.Context, mode Mode) error {
	scheme := SchemeFor(mode)
	if err := exec.CommandContext(ctx, "gsettings", "set", gsettingsSchema, gsettingsKey, scheme).Run(); err != nil {
		return fmt.Errorf("failed to set color scheme to %s: %w", scheme, err)
	}

	g.logger.Debug("Applied color scheme", "scheme", scheme, "mode", mode)
	return nil
}

// ParseColorScheme maps gsettings output to a Mode. gsettings prints GVariant
// strings, so the value arrives single-quoted with a trailing newline.
// Anything other than prefer-dark (including prefer-light) counts as light.
func ParseColorScheme(output string) Mode {
	scheme := strings.Trim(strings.TrimSpace(output), "'")
	if scheme == schemePreferDark {
		return ModeDark
	}
	return ModeLight
}

// SchemeFor returns the color-scheme value to write for a mode.
func SchemeFor(mode Mode) string {
	if mode == ModeDark {
		return schemePreferDark
	}
	return schemeDefault
}

package halcyon

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ============================================================================
// Options
// ============================================================================

// Options tunes dispatcher behavior that is a matter of taste rather than
// semantics. The zero value is not useful; start from DefaultOptions.
type Options struct {
	// DoubleClickMs is the longest gap between presses that still counts as
	// part of a multi-click run.
	DoubleClickMs int `toml:"double_click_ms"`

	// DoubleClickDistance is how far the cursor may drift between presses
	// before the click count resets, in window units.
	DoubleClickDistance float32 `toml:"double_click_distance"`

	// DebugLog, when non-empty, is the file the dispatch trace is written to
	// (only when tracing is enabled in the environment).
	DebugLog string `toml:"debug_log"`
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		DoubleClickMs:       500,
		DoubleClickDistance: 4,
	}
}

// LoadOptions reads a TOML options file, layering it over the defaults.
// Fields absent from the file keep their default values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options %s: %w", path, err)
	}
	return opts, nil
}

func (o Options) doubleClickWindow() time.Duration {
	return time.Duration(o.DoubleClickMs) * time.Millisecond
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"swipetabs/internal/eventbus"
)

// Tab bar strategies
const (
	StrategyDrag   = "drag"
	StrategyNative = "native"
)

// Page style interpolators
const (
	StyleHorizontal = "horizontal"
	StyleFade       = "fade"
)

// DefaultFileName is the config file looked up in the user config dir
const DefaultFileName = "config.toml"

// Config represents the application configuration
type Config struct {
	Version       int                `toml:"version" yaml:"version"`
	Strategy      string             `toml:"strategy" yaml:"strategy"`
	Platform      string             `toml:"platform" yaml:"platform"`
	VelocityScale map[string]float64 `toml:"velocity_scale" yaml:"velocity_scale"`
	Animation     AnimationSettings  `toml:"animation" yaml:"animation"`
	Pager         PagerSettings      `toml:"pager" yaml:"pager"`
	UISettings    UISettings         `toml:"ui" yaml:"ui"`
	Routes        []RouteConfig      `toml:"routes" yaml:"routes"`
}

// AnimationSettings configures the settle spring and the fling decay
type AnimationSettings struct {
	SpringTension     float64 `toml:"spring_tension" yaml:"spring_tension"`
	SpringFriction    float64 `toml:"spring_friction" yaml:"spring_friction"`
	DecayDeceleration float64 `toml:"decay_deceleration" yaml:"decay_deceleration"`
	FPS               int     `toml:"fps" yaml:"fps"`
}

// PagerSettings configures the page swipe gesture
type PagerSettings struct {
	RespondThreshold  float64 `toml:"respond_threshold" yaml:"respond_threshold"`
	DistanceThreshold float64 `toml:"distance_threshold" yaml:"distance_threshold"`
	VelocityThreshold float64 `toml:"velocity_threshold" yaml:"velocity_threshold"`
	Style             string  `toml:"style" yaml:"style"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowIndicator bool `toml:"show_indicator" yaml:"show_indicator"`
	ShowHelp      bool `toml:"show_help" yaml:"show_help"`
}

// RouteConfig is one tab and the text its page shows
type RouteConfig struct {
	Key   string `toml:"key" yaml:"key"`
	Title string `toml:"title" yaml:"title"`
	Badge string `toml:"badge,omitempty" yaml:"badge,omitempty"`
	Body  string `toml:"body" yaml:"body"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "swipetabs", DefaultFileName),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the default file, returning defaults when
// it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		cs.publishLoaded(cfg, "")
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to the default file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. The format follows
// the extension: .yaml/.yml is YAML, anything else TOML.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so omitted sections keep sane values
	cfg := DefaultConfig()
	cfg.Routes = nil
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cs.publishLoaded(cfg, path)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = toml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Publish ConfigSaved event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}

	return nil
}

func (cs *configService) publishLoaded(cfg *Config, path string) {
	if cs.bus == nil {
		return
	}
	cs.bus.Publish(eventbus.ConfigLoadedEvent{
		Path:     path,
		Strategy: cfg.Strategy,
		Routes:   len(cfg.Routes),
	})
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// normalize fills zero values with defaults and generates missing route keys
func (c *Config) normalize() {
	def := DefaultConfig()

	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Strategy == "" {
		c.Strategy = def.Strategy
	}
	if c.Platform == "" {
		c.Platform = def.Platform
	}
	if c.VelocityScale == nil {
		c.VelocityScale = def.VelocityScale
	}
	for platform, scale := range def.VelocityScale {
		if _, ok := c.VelocityScale[platform]; !ok {
			c.VelocityScale[platform] = scale
		}
	}
	if c.Animation.SpringTension == 0 {
		c.Animation.SpringTension = def.Animation.SpringTension
	}
	if c.Animation.SpringFriction == 0 {
		c.Animation.SpringFriction = def.Animation.SpringFriction
	}
	if c.Animation.DecayDeceleration == 0 {
		c.Animation.DecayDeceleration = def.Animation.DecayDeceleration
	}
	if c.Animation.FPS == 0 {
		c.Animation.FPS = def.Animation.FPS
	}
	if c.Pager.Style == "" {
		c.Pager.Style = def.Pager.Style
	}
	if len(c.Routes) == 0 {
		c.Routes = def.Routes
	}
	for i := range c.Routes {
		if c.Routes[i].Key == "" {
			c.Routes[i].Key = uuid.NewString()
		}
	}
}

// Validate checks the configuration for values the tab view cannot use
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyDrag, StrategyNative:
	default:
		return fmt.Errorf("unknown strategy %q (want %q or %q)", c.Strategy, StrategyDrag, StrategyNative)
	}
	switch c.Pager.Style {
	case StyleHorizontal, StyleFade:
	default:
		return fmt.Errorf("unknown pager style %q", c.Pager.Style)
	}
	if _, ok := c.VelocityScale[c.Platform]; !ok {
		return fmt.Errorf("no velocity scale for platform %q", c.Platform)
	}
	if c.Animation.DecayDeceleration <= 0 || c.Animation.DecayDeceleration >= 1 {
		return fmt.Errorf("decay_deceleration must be in (0, 1), got %v", c.Animation.DecayDeceleration)
	}
	if c.Animation.SpringTension <= 0 || c.Animation.SpringFriction <= 0 {
		return fmt.Errorf("spring tension and friction must be positive")
	}
	if len(c.Routes) == 0 {
		return fmt.Errorf("at least one route is required")
	}
	seen := make(map[string]bool, len(c.Routes))
	for _, r := range c.Routes {
		if seen[r.Key] {
			return fmt.Errorf("duplicate route key %q", r.Key)
		}
		seen[r.Key] = true
	}
	return nil
}

// VelocityScaleFor returns the release-velocity multiplier for the configured
// platform
func (c *Config) VelocityScaleFor() float64 {
	if scale, ok := c.VelocityScale[c.Platform]; ok {
		return scale
	}
	return 1
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Strategy: StrategyDrag,
		Platform: "terminal",
		// Android reports gesture velocity in different units than iOS;
		// the terminal recognizer reports cells per millisecond.
		VelocityScale: map[string]float64{
			"terminal": 1,
			"ios":      1,
			"android":  1000000,
		},
		Animation: AnimationSettings{
			SpringTension:     300,
			SpringFriction:    35,
			DecayDeceleration: 0.998,
			FPS:               60,
		},
		Pager: PagerSettings{
			RespondThreshold:  2,
			DistanceThreshold: 0.33,
			VelocityThreshold: 0.5,
			Style:             StyleHorizontal,
		},
		UISettings: UISettings{
			ShowIndicator: true,
			ShowHelp:      true,
		},
		Routes: []RouteConfig{
			{Key: "inbox", Title: "Inbox", Badge: "3", Body: "Drag the tab strip or swipe this page sideways."},
			{Key: "starred", Title: "Starred", Body: "Nothing starred yet."},
			{Key: "sent", Title: "Sent", Body: "Sent messages."},
			{Key: "drafts", Title: "Drafts", Body: "Drafts are kept locally."},
			{Key: "archive", Title: "Archive", Body: "Archived conversations."},
		},
	}
}

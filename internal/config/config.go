// Package config holds every tunable of the export pipeline. It plays the
// same role the teacher's internal/config.Config played (a single struct
// threaded through every stage constructor) but is loaded through viper
// instead of being hand-assembled with nested struct literals, so a
// settings file or flags can override any default.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Diff holds the frame differencer's tunables (spec §4.3).
type Diff struct {
	SampleInterval       int     `mapstructure:"sample_interval"`
	DownsampleFactor     int     `mapstructure:"downsample_factor"`
	PixelThreshold       int     `mapstructure:"pixel_threshold"`
	CursorExcludeRadius  float64 `mapstructure:"cursor_exclude_radius"`
	MinRegionSize        float64 `mapstructure:"min_region_size"`
	MaxChangeFraction    float64 `mapstructure:"max_change_fraction"`
}

// HalfLives holds the zoom/pan half-life pair (seconds) for one transition kind.
type HalfLives struct {
	Zoom float64 `mapstructure:"zoom"`
	Pan  float64 `mapstructure:"pan"`
}

// Zoom holds the zoom planner's tunables (spec §4.4).
type Zoom struct {
	IdleZoomOutMs         int64     `mapstructure:"idle_zoom_out_ms"`
	AnimationSpeedScale   float64   `mapstructure:"animation_speed_scale"`
	MaxZoom               float64   `mapstructure:"max_zoom"`
	AutoZoomEnabled       bool      `mapstructure:"auto_zoom_enabled"`
	MinKeyframeIntervalMs int64     `mapstructure:"min_keyframe_interval_ms"`
	ZoomIn                HalfLives `mapstructure:"zoom_in"`
	SceneToScene          HalfLives `mapstructure:"scene_to_scene"`
	ZoomOut               HalfLives `mapstructure:"zoom_out"`
}

// Scene holds the scene splitter's tunables (spec §4.2).
type Scene struct {
	IdleGapMs         int64   `mapstructure:"idle_gap_ms"`
	SubSplitAreaFrac  float64 `mapstructure:"sub_split_area_frac"`
	SubSplitMinPoints int     `mapstructure:"sub_split_min_points"`
	SubSplitGapMs     int64   `mapstructure:"sub_split_gap_ms"`
	SubSplitJumpPx    float64 `mapstructure:"sub_split_jump_px"`
	MinBBoxSize       float64 `mapstructure:"min_bbox_size"`
	BBoxPadding       float64 `mapstructure:"bbox_padding"`
	MergeCenterDist   float64 `mapstructure:"merge_center_dist"`
	KeyBorrowWindowMs int64   `mapstructure:"key_borrow_window_ms"`
}

// Shadow holds drop-shadow parameters for the compositor.
type Shadow struct {
	Enabled bool    `mapstructure:"enabled"`
	OffsetY float64 `mapstructure:"offset_y"`
	Blur    float64 `mapstructure:"blur"`
	Opacity float64 `mapstructure:"opacity"`
}

// Background describes the compositor's canvas background.
type Background struct {
	Kind     string  `mapstructure:"kind"` // "solid" | "gradient" | "transparent"
	ColorA   string  `mapstructure:"color_a"`
	ColorB   string  `mapstructure:"color_b"`
	AngleDeg float64 `mapstructure:"angle_deg"`
}

// ClickRing styles the click-ring overlay effect.
type ClickRing struct {
	Color      string  `mapstructure:"color"`
	MaxRadius  float64 `mapstructure:"max_radius"`
	DurationMs int64   `mapstructure:"duration_ms"`
}

// Style holds the compositor's output style (spec §4.7).
type Style struct {
	OutputWidth          int        `mapstructure:"output_width"`
	OutputHeight         int        `mapstructure:"output_height"`
	CanvasWidth          int        `mapstructure:"canvas_width"`
	CanvasHeight         int        `mapstructure:"canvas_height"`
	BorderRadius         float64    `mapstructure:"border_radius"`
	CursorSpritePath     string     `mapstructure:"cursor_sprite_path"`
	CursorSizeMultiplier float64    `mapstructure:"cursor_size_multiplier"`
	MotionBlurEnabled    bool       `mapstructure:"motion_blur_enabled"`
	Shadow               Shadow     `mapstructure:"shadow"`
	Background           Background `mapstructure:"background"`
	ClickRing            ClickRing  `mapstructure:"click_ring"`
}

// Recording holds the narrow recording-agent collaborator's tunables.
type Recording struct {
	TargetFPS int    `mapstructure:"target_fps"`
	OutputDir string `mapstructure:"output_dir"`
}

// Processing holds parallelism knobs. No stage reads them: the frame
// differencer runs one goroutine per sampled pair regardless.
type Processing struct {
	Parallel bool `mapstructure:"parallel"`
	Workers  int  `mapstructure:"workers"`
}

// Encoder holds the encoder invoker's tunables (spec §4.9).
type Encoder struct {
	Binary  string `mapstructure:"binary"`
	Format  string `mapstructure:"format"`
	Quality string `mapstructure:"quality"`
}

// Config is the root configuration threaded through every pipeline stage.
type Config struct {
	Recording  Recording  `mapstructure:"recording"`
	Processing Processing `mapstructure:"processing"`
	Diff       Diff       `mapstructure:"diff"`
	Scene      Scene      `mapstructure:"scene"`
	Zoom       Zoom       `mapstructure:"zoom"`
	Style      Style      `mapstructure:"style"`
	Encoder    Encoder    `mapstructure:"encoder"`
}

// Default returns the pipeline's baked-in defaults, covering every literal
// spec.md names (§4.2-§4.7) the way the teacher's NewConfig() baked in its
// own literals.
func Default() *Config {
	v := newViper()
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("config: default values failed to unmarshal: %v", err))
	}
	return cfg
}

// Load reads configuration from the given path (YAML, TOML, or JSON, by
// extension) layered over the baked-in defaults, following the same
// viper-plus-defaults shape LanternOps-breeze's agent config uses.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DEMOREEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("recording.target_fps", 30)
	v.SetDefault("recording.output_dir", "output")

	v.SetDefault("processing.parallel", true)
	v.SetDefault("processing.workers", 4)

	v.SetDefault("diff.sample_interval", 5)
	v.SetDefault("diff.downsample_factor", 4)
	v.SetDefault("diff.pixel_threshold", 10)
	v.SetDefault("diff.cursor_exclude_radius", 50.0)
	v.SetDefault("diff.min_region_size", 50.0)
	v.SetDefault("diff.max_change_fraction", 0.5)

	v.SetDefault("scene.idle_gap_ms", 1500)
	v.SetDefault("scene.sub_split_area_frac", 0.25)
	v.SetDefault("scene.sub_split_min_points", 3)
	v.SetDefault("scene.sub_split_gap_ms", 800)
	v.SetDefault("scene.sub_split_jump_px", 250.0)
	v.SetDefault("scene.min_bbox_size", 200.0)
	v.SetDefault("scene.bbox_padding", 80.0)
	v.SetDefault("scene.merge_center_dist", 150.0)
	v.SetDefault("scene.key_borrow_window_ms", 2000)

	v.SetDefault("zoom.idle_zoom_out_ms", 3000)
	v.SetDefault("zoom.animation_speed_scale", 1.0)
	v.SetDefault("zoom.max_zoom", 3.0)
	v.SetDefault("zoom.auto_zoom_enabled", true)
	v.SetDefault("zoom.min_keyframe_interval_ms", 800)
	v.SetDefault("zoom.zoom_in.zoom", 0.20)
	v.SetDefault("zoom.zoom_in.pan", 0.20)
	v.SetDefault("zoom.scene_to_scene.zoom", 0.25)
	v.SetDefault("zoom.scene_to_scene.pan", 0.25)
	v.SetDefault("zoom.zoom_out.zoom", 0.35)
	v.SetDefault("zoom.zoom_out.pan", 0.30)

	v.SetDefault("style.output_width", 1920)
	v.SetDefault("style.output_height", 1080)
	v.SetDefault("style.canvas_width", 2200)
	v.SetDefault("style.canvas_height", 1300)
	v.SetDefault("style.border_radius", 18.0)
	v.SetDefault("style.cursor_sprite_path", "")
	v.SetDefault("style.cursor_size_multiplier", 1.0)
	v.SetDefault("style.motion_blur_enabled", true)
	v.SetDefault("style.shadow.enabled", true)
	v.SetDefault("style.shadow.offset_y", 24.0)
	v.SetDefault("style.shadow.blur", 60.0)
	v.SetDefault("style.shadow.opacity", 0.45)
	v.SetDefault("style.background.kind", "gradient")
	v.SetDefault("style.background.color_a", "#1e1e2e")
	v.SetDefault("style.background.color_b", "#2a2a40")
	v.SetDefault("style.background.angle_deg", 135.0)
	v.SetDefault("style.click_ring.color", "#ffffffaa")
	v.SetDefault("style.click_ring.max_radius", 40.0)
	v.SetDefault("style.click_ring.duration_ms", 500)

	v.SetDefault("encoder.binary", "ffmpeg")
	v.SetDefault("encoder.format", "mp4")
	v.SetDefault("encoder.quality", "high")

	return v
}

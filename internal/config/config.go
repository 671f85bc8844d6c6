// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Scene      SceneConfig      `yaml:"scene"`
	Camera     CameraConfig     `yaml:"camera"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings. The window size is fixed for the
// whole session; projection math reads it once per frame.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SceneConfig selects the scene description and where its textures live.
type SceneConfig struct {
	File       string `yaml:"file"`        // Empty means the embedded desk scene
	TextureDir string `yaml:"texture_dir"` // Resolves relative texture paths
}

// CameraConfig holds free-look camera tuning.
type CameraConfig struct {
	MovementSpeed    float32 `yaml:"movement_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
}

// ScreenshotConfig holds F12 capture settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Still Life",
			Width:  1000,
			Height: 800,
			VSync:  true,
		},
		Scene: SceneConfig{
			TextureDir: "textures",
		},
		Camera: CameraConfig{
			MovementSpeed:    2.5,
			MouseSensitivity: 0.1,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "stilllife",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	SaveDirectory string
	Confirmations bool
	Grid          GridSettings
	ZoomStep      float64
	DragThreshold float64
	CanvasWidth   float64
	CanvasHeight  float64
	PolygonSides  int
	DebugLog      string
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		Grid:          defaultGridSettings(),
		ZoomStep:      defaultZoomStep,
		DragThreshold: defaultDragThreshold,
		CanvasWidth:   defaultCanvasWidth,
		CanvasHeight:  defaultCanvasHeight,
		PolygonSides:  defaultPolygonSides,
	}
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}
	return loadConfigFile(filepath.Join(homeDir, ".plottermrc"), homeDir)
}

// loadConfigFile reads key = value pairs. A missing file or a bad value
// leaves the default in place.
func loadConfigFile(path, homeDir string) *Config {
	config := defaultConfig()

	values, err := godotenv.Read(path)
	if err != nil {
		return config
	}

	for rawKey, value := range values {
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(rawKey)) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "grid_enabled", "grid":
			config.Grid.Enabled = strings.ToLower(value) == "true"
		case "grid_spacing":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v >= minGridSpacing {
				config.Grid.Spacing = v
			}
		case "grid_color":
			if validColor(value) {
				config.Grid.Color = value
			}
		case "grid_opacity":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 && v <= 1 {
				config.Grid.Opacity = v
			}
		case "zoom_step":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 && v < 1 {
				config.ZoomStep = v
			}
		case "drag_threshold":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 {
				config.DragThreshold = v
			}
		case "canvas_width":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				config.CanvasWidth = v
			}
		case "canvas_height":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				config.CanvasHeight = v
			}
		case "polygon_sides":
			if v, err := strconv.Atoi(value); err == nil {
				config.PolygonSides = clampSides(v)
			}
		case "debug_log":
			config.DebugLog = expandPath(value, homeDir)
		}
	}

	return config
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

package config

import "image/color"

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
	Title  string
	TPS    int // fixed update rate; the motion step is 1/TPS seconds
}

// NetConfig contains connection settings
type NetConfig struct {
	ServerAddress string
	Version       string
	PlayerName    string
	InboxSize     int    // initial inbox capacity
	SentryDSN     string // empty disables anomaly reporting
}

// TankConfig contains tank presentation values
type TankConfig struct {
	BodyWidth          float64
	BodyHeight         float64
	TrackFrames        int
	TrackFrameDuration float64 // seconds per tread frame
	Palette            []color.RGBA
	LocalOutline       color.RGBA
	MarkerFade         float64 // seconds for the destination marker to fade
	MarkerSize         float64
}

// DebugConfig contains debug/testing options
type DebugConfig struct {
	LogLevel  string
	ShowHUD   bool
	Stats     bool
	StatsAddr string
}

// Global configuration instances
var C *Config
var Net NetConfig
var Tank TankConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	LightGreen = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Yellow     = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Background = color.RGBA{R: 0x53, G: 0x47, B: 0x41, A: 255}
)

func init() {
	Reset()
}

// Reset restores every configuration value to its default.
func Reset() {
	C = &Config{
		Width:  960,
		Height: 640,
		Title:  "Tank Arena",
		TPS:    60,
	}

	Net = NetConfig{
		ServerAddress: "localhost:7373",
		Version:       "0.1.0",
		PlayerName:    "Player",
		InboxSize:     256,
	}

	Tank = TankConfig{
		BodyWidth:          36,
		BodyHeight:         28,
		TrackFrames:        4,
		TrackFrameDuration: 0.08,
		Palette: []color.RGBA{
			{R: 70, G: 130, B: 230, A: 255},  // Blue
			{R: 80, G: 190, B: 90, A: 255},   // Green
			{R: 220, G: 70, B: 60, A: 255},   // Red
			{R: 235, G: 200, B: 60, A: 255},  // Yellow
			{R: 170, G: 110, B: 220, A: 255}, // spare colors for unknown kinds
			{R: 240, G: 140, B: 60, A: 255},
		},
		LocalOutline: White,
		MarkerFade:   0.6,
		MarkerSize:   8,
	}

	Debug = DebugConfig{
		LogLevel:  "info",
		ShowHUD:   true,
		StatsAddr: "localhost:18066",
	}
}

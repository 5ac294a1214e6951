package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// File is the on-disk shape of the client configuration. Zero values leave
// the defaults in place.
type File struct {
	Window struct {
		Width  int    `toml:"width"`
		Height int    `toml:"height"`
		TPS    int    `toml:"tps"`
		Title  string `toml:"title"`
	} `toml:"window"`
	Net struct {
		Server    string `toml:"server"`
		Name      string `toml:"name"`
		InboxSize int    `toml:"inbox_size"`
		SentryDSN string `toml:"sentry_dsn"`
	} `toml:"net"`
	Debug struct {
		LogLevel  string `toml:"log_level"`
		ShowHUD   *bool  `toml:"show_hud"`
		Stats     bool   `toml:"stats"`
		StatsAddr string `toml:"stats_addr"`
	} `toml:"debug"`
}

// Load reads a TOML file from path and applies it over the defaults. A missing
// file is not an error.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse applies TOML-encoded configuration over the current values.
func Parse(data []byte) error {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	f.apply()
	return nil
}

func (f *File) apply() {
	if f.Window.Width > 0 {
		C.Width = f.Window.Width
	}
	if f.Window.Height > 0 {
		C.Height = f.Window.Height
	}
	if f.Window.TPS > 0 {
		C.TPS = f.Window.TPS
	}
	if f.Window.Title != "" {
		C.Title = f.Window.Title
	}

	if f.Net.Server != "" {
		Net.ServerAddress = f.Net.Server
	}
	if f.Net.Name != "" {
		Net.PlayerName = f.Net.Name
	}
	if f.Net.InboxSize > 0 {
		Net.InboxSize = f.Net.InboxSize
	}
	if f.Net.SentryDSN != "" {
		Net.SentryDSN = f.Net.SentryDSN
	}

	if f.Debug.LogLevel != "" {
		Debug.LogLevel = f.Debug.LogLevel
	}
	if f.Debug.ShowHUD != nil {
		Debug.ShowHUD = *f.Debug.ShowHUD
	}
	if f.Debug.Stats {
		Debug.Stats = true
	}
	if f.Debug.StatsAddr != "" {
		Debug.StatsAddr = f.Debug.StatsAddr
	}
}

// ParseFlags loads the config file named by -config and then applies the
// remaining command-line overrides.
func ParseFlags(args []string) error {
	fs := flag.NewFlagSet("tankarena", flag.ContinueOnError)
	path := fs.String("config", "tankarena.toml", "Path to a TOML config file")
	server := fs.String("server", "", "Game server address (host:port)")
	name := fs.String("name", "", "Player display name")
	stats := fs.Bool("stats", false, "Serve runtime stats charts")
	logLevel := fs.String("loglevel", "", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := Load(*path); err != nil {
		return err
	}

	if *server != "" {
		Net.ServerAddress = *server
	}
	if *name != "" {
		Net.PlayerName = *name
	}
	if *stats {
		Debug.Stats = true
	}
	if *logLevel != "" {
		Debug.LogLevel = *logLevel
	}
	return nil
}

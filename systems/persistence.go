package systems

import (
	"encoding/json"
	"fmt"

	cfg "github.com/automoto/tankarena/config"
	"github.com/google/uuid"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	ClientID      string `json:"clientId"`
	PlayerName    string `json:"playerName"`
	ServerAddress string `json:"serverAddress"`
}

var gdataManager *gdata.Manager

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "tankarena",
	})
	if err != nil {
		return fmt.Errorf("open settings storage: %w", err)
	}
	gdataManager = m
	return nil
}

// LoadSettings loads settings from disk. It returns nil without an error when
// persistence is unavailable or nothing was saved yet.
func LoadSettings() (*SavedSettings, error) {
	if gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := gdataManager.SaveItem("settings", data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ApplySavedSettings fills connection defaults from saved settings and makes
// sure a client id exists. Call it before the config file and flags are
// parsed so they can override the saved values.
func ApplySavedSettings(saved *SavedSettings) *SavedSettings {
	if saved == nil {
		saved = &SavedSettings{}
	}
	if saved.ClientID == "" {
		saved.ClientID = uuid.NewString()
	}
	if saved.PlayerName != "" {
		cfg.Net.PlayerName = saved.PlayerName
	}
	if saved.ServerAddress != "" {
		cfg.Net.ServerAddress = saved.ServerAddress
	}
	return saved
}

// RememberSettings copies the effective connection settings into saved and
// writes them to disk.
func RememberSettings(saved *SavedSettings) error {
	saved.PlayerName = cfg.Net.PlayerName
	saved.ServerAddress = cfg.Net.ServerAddress
	return SaveSettings(saved)
}

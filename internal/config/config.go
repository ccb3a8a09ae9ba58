package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/marinerstudio/chartsync/internal/model/core"
)

// ChartConfig holds chart rendering settings.
type ChartConfig struct {
	Style             core.ChartStyle
	DefaultLayers     []core.LayerID
	PrimaryOpacity    float64
	DetailOpacity     float64
	NudgeAfterInstall bool
}

// LocationConfig holds location resolver settings.
type LocationConfig struct {
	Timeout          time.Duration
	PollInterval     time.Duration
	AdvisoryDuration time.Duration
	Fallback         core.Coordinate
}

// StorageConfig holds storage backend selection.
type StorageConfig struct {
	Type        string
	SessionName string
	SqlitePath  string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName("chartsyncd.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// SetDefaults registers every default value. Split out so tests and
// config-less runs get the same baseline.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./chartsynclogs")
	viper.SetDefault("sessionName", "primary")

	viper.SetDefault("chart.style", "traditional")
	viper.SetDefault("chart.defaultLayers", []int{0, 1, 2, 6})
	viper.SetDefault("chart.opacity.primary", 1.0)
	viper.SetDefault("chart.opacity.detail", 0.7)
	viper.SetDefault("chart.nudgeAfterInstall", false)

	viper.SetDefault("location.timeoutMs", 2000)
	viper.SetDefault("location.pollIntervalMs", 250)
	viper.SetDefault("location.advisoryMs", 5000)
	viper.SetDefault("location.fallbackLat", 38.9784)
	viper.SetDefault("location.fallbackLon", -76.4951)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.sqlitePath", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "chartsync")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "chartsync-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("monitor.enabled", true)
	viper.SetDefault("monitor.intervalMs", 30000)
}

// GetChartConfig returns the chart rendering settings.
func GetChartConfig() ChartConfig {
	rawLayers := viper.GetIntSlice("chart.defaultLayers")
	ids := make([]core.LayerID, len(rawLayers))
	for i, v := range rawLayers {
		ids[i] = core.LayerID(v)
	}
	return ChartConfig{
		Style:             core.ChartStyle(viper.GetString("chart.style")),
		DefaultLayers:     ids,
		PrimaryOpacity:    viper.GetFloat64("chart.opacity.primary"),
		DetailOpacity:     viper.GetFloat64("chart.opacity.detail"),
		NudgeAfterInstall: viper.GetBool("chart.nudgeAfterInstall"),
	}
}

// GetLocationConfig returns the location resolver settings.
func GetLocationConfig() LocationConfig {
	return LocationConfig{
		Timeout:          time.Duration(viper.GetInt("location.timeoutMs")) * time.Millisecond,
		PollInterval:     time.Duration(viper.GetInt("location.pollIntervalMs")) * time.Millisecond,
		AdvisoryDuration: time.Duration(viper.GetInt("location.advisoryMs")) * time.Millisecond,
		Fallback: core.Coordinate{
			Lat: viper.GetFloat64("location.fallbackLat"),
			Lon: viper.GetFloat64("location.fallbackLon"),
		},
	}
}

// GetStorageConfig returns the storage backend selection.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type:        viper.GetString("storage.type"),
		SessionName: viper.GetString("sessionName"),
		SqlitePath:  viper.GetString("storage.sqlitePath"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetIntSlice returns an int slice config value.
func GetIntSlice(key string) []int {
	return viper.GetIntSlice(key)
}

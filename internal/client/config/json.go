package config

import (
	"encoding/json"
	"os"

	"github.com/mlevkov/authgate/internal/flagx"
	"github.com/mlevkov/authgate/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so the file can write the delay either as "1s" or as
// integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL string          `json:"server_base_url"`
	DatabasePath  string          `json:"database_path"`
	SignOutDelay  *timex.Duration `json:"sign_out_delay"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent flag means no JSON is loaded. Fields missing
// from the file keep their current values. Read or unmarshal errors panic;
// a broken config file should stop startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.SignOutDelay != nil {
		cfg.SignOutDelay = jc.SignOutDelay.Duration
	}
}

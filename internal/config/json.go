package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		VaultName string `json:"vault_name"`
		LogFile   string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`
		DB      struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Dir struct {
			Root string `json:"root"`
		} `json:"dir,omitempty"`
	} `json:"storage,omitempty"`

	Remote struct {
		Kind           string   `json:"kind"`
		Endpoint       string   `json:"endpoint"`
		Bucket         string   `json:"bucket"`
		Region         string   `json:"region"`
		AccessKey      string   `json:"access_key"`
		SecretKey      string   `json:"secret_key"`
		Token          string   `json:"token"`
		Prefix         string   `json:"prefix"`
		UsePathStyle   bool     `json:"use_path_style"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`

	Workers struct {
		FlushInterval Duration `json:"flush_interval"`
		DebounceDelay Duration `json:"debounce_delay"`
		ProbeInterval Duration `json:"probe_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			VaultName: jsonCfg.App.VaultName,
			LogFile:   jsonCfg.App.LogFile,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB:      DB{DSN: jsonCfg.Storage.DB.DSN},
			Dir:     Dir{Root: jsonCfg.Storage.Dir.Root},
		},
		Remote: Remote{
			Kind:           jsonCfg.Remote.Kind,
			Endpoint:       jsonCfg.Remote.Endpoint,
			Bucket:         jsonCfg.Remote.Bucket,
			Region:         jsonCfg.Remote.Region,
			AccessKey:      jsonCfg.Remote.AccessKey,
			SecretKey:      jsonCfg.Remote.SecretKey,
			Token:          jsonCfg.Remote.Token,
			Prefix:         jsonCfg.Remote.Prefix,
			UsePathStyle:   jsonCfg.Remote.UsePathStyle,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Workers: Workers{
			FlushInterval: time.Duration(jsonCfg.Workers.FlushInterval),
			DebounceDelay: time.Duration(jsonCfg.Workers.DebounceDelay),
			ProbeInterval: time.Duration(jsonCfg.Workers.ProbeInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON file parsing.
// Durations are accepted both as strings ("30m") and as nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		MasterSecret  string   `json:"master_secret"`
		KDFSalt       string   `json:"kdf_salt"`
		PINCost       int      `json:"pin_cost"`
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		SQLite struct {
			DSN string `json:"dsn"`
		} `json:"sqlite,omitempty"`

		Files struct {
			DataDir string `json:"data_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Sessions struct {
		Timeout       Duration `json:"timeout"`
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"sessions,omitempty"`

	Classifier struct {
		BaseURL string   `json:"base_url"`
		APIKey  string   `json:"api_key"`
		Model   string   `json:"model"`
		Timeout Duration `json:"timeout"`
	} `json:"classifier,omitempty"`
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
			MasterSecret:  jsonCfg.App.MasterSecret,
			KDFSalt:       jsonCfg.App.KDFSalt,
			PINCost:       jsonCfg.App.PINCost,
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			SQLite: SQLite{
				DSN: jsonCfg.Storage.SQLite.DSN,
			},
			Files: Files{
				DataDir: jsonCfg.Storage.Files.DataDir,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Sessions: Sessions{
			Timeout:       time.Duration(jsonCfg.Sessions.Timeout),
			SweepInterval: time.Duration(jsonCfg.Sessions.SweepInterval),
		},
		Classifier: Classifier{
			BaseURL: jsonCfg.Classifier.BaseURL,
			APIKey:  jsonCfg.Classifier.APIKey,
			Model:   jsonCfg.Classifier.Model,
			Timeout: time.Duration(jsonCfg.Classifier.Timeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration: expected string or number")
	}
}

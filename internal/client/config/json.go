package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/vaultcore/internal/flagx"
	"github.com/dmitrijs2005/vaultcore/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields leave the current value untouched.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	DatabaseDSN        *string         `json:"database_dsn"`
	SettingsDSN        *string         `json:"settings_dsn"`
	ImportWorkers      *int            `json:"import_workers"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	LogFormat          *string         `json:"log_format"`
	S3                 *struct {
		Region    string `json:"region"`
		Endpoint  string `json:"endpoint"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
	} `json:"s3"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	setIf(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.SettingsDSN, jc.SettingsDSN)
	setIf(&cfg.ImportWorkers, jc.ImportWorkers)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.S3 != nil {
		cfg.S3Region = jc.S3.Region
		cfg.S3Endpoint = jc.S3.Endpoint
		cfg.S3AccessKey = jc.S3.AccessKey
		cfg.S3SecretKey = jc.S3.SecretKey
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

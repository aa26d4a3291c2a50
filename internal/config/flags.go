package config

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// ParseFlags parses configuration flags from args (without the program name).
//
// Flags:
//
//	-backend storage backend: local, directory or remote
//	-d local SQLite database path
//	-dir directory backend root
//	-remote-kind object store kind: s3 or http
//	-endpoint object store / gateway base URL
//	-bucket S3 bucket
//	-region S3 region
//	-access-key S3 access key
//	-secret-key S3 secret key
//	-token gateway bearer token
//	-prefix object key prefix
//	-path-style force path-style S3 addressing
//	-request-timeout bound of a single remote call (e.g. "15s")
//	-flush-interval periodic flush interval (e.g. "30s")
//	-debounce quiet period after a write before flushing (e.g. "2s")
//	-probe-interval connectivity probe interval (e.g. "15s")
//	-vault-name name of a freshly created vault
//	-log-file log file path
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet("notevault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Storage.Backend, "backend", "", "Storage backend: local, directory or remote")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Local SQLite database path")
	fs.StringVar(&cfg.Storage.Dir.Root, "dir", "", "Directory backend root")
	fs.StringVar(&cfg.Remote.Kind, "remote-kind", "", "Object store kind: s3 or http")
	fs.StringVar(&cfg.Remote.Endpoint, "endpoint", "", "Object store base URL")
	fs.StringVar(&cfg.Remote.Bucket, "bucket", "", "S3 bucket")
	fs.StringVar(&cfg.Remote.Region, "region", "", "S3 region")
	fs.StringVar(&cfg.Remote.AccessKey, "access-key", "", "S3 access key")
	fs.StringVar(&cfg.Remote.SecretKey, "secret-key", "", "S3 secret key")
	fs.StringVar(&cfg.Remote.Token, "token", "", "Gateway bearer token")
	fs.StringVar(&cfg.Remote.Prefix, "prefix", "", "Object key prefix")
	fs.BoolVar(&cfg.Remote.UsePathStyle, "path-style", false, "Force path-style S3 addressing")
	fs.DurationVar(&cfg.Remote.RequestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 15s)")
	fs.DurationVar(&cfg.Workers.FlushInterval, "flush-interval", 0, "Periodic flush interval (e.g., 30s)")
	fs.DurationVar(&cfg.Workers.DebounceDelay, "debounce", 0, "Flush debounce delay (e.g., 2s)")
	fs.DurationVar(&cfg.Workers.ProbeInterval, "probe-interval", 0, "Connectivity probe interval (e.g., 15s)")
	fs.StringVar(&cfg.App.VaultName, "vault-name", "", "Default vault name")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Log file path")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, nil
}

func commandLineArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

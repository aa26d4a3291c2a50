// Package config provides configuration loading, merging, and validation
// facilities for notevault.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. An optional .env file (loaded into the process environment)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The main entry points are [GetStructuredConfig] for the raw merged view and
// [GetClientConfig] for the validated runtime configuration.
package config

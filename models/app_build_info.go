// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const unknownBuildValue = "N/A"

// AppBuildInfo holds the linker-injected build metadata of the notevault
// binary. Empty values read as "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{version: version, date: date, commit: commit}
}

func (a AppBuildInfo) BuildVersion() string { return orUnknown(a.version) }

func (a AppBuildInfo) BuildDate() string { return orUnknown(a.date) }

func (a AppBuildInfo) BuildCommit() string { return orUnknown(a.commit) }

// String renders the three lines printed at startup.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		a.BuildVersion(), a.BuildDate(), a.BuildCommit())
}

func orUnknown(v string) string {
	if v == "" {
		return unknownBuildValue
	}
	return v
}

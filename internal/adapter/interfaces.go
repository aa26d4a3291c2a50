// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the remote object store notevault
// synchronizes with.
//
// The primary abstraction is [ObjectStore]: get/put/delete of single objects
// by key, paginated listing by prefix and a reachability probe. Two
// implementations ship with the package: an S3 client ([NewS3ObjectStore])
// and a client for a plain HTTP object gateway ([NewHTTPObjectStore]).
//
// Every error returned by an implementation is a [*RemoteError] carrying a
// [Category], so callers can decide between "offline" and "broken" without
// looking at transport details. A missing object wraps [ErrObjectNotFound].
package adapter

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/object_store_mock.go -package=mock

// ObjectStore is a flat key/value object store. Keys are relative to the
// prefix the store was configured with.
type ObjectStore interface {
	// Get returns the object stored under key. A missing object yields an
	// error wrapping [ErrObjectNotFound].
	Get(ctx context.Context, key string) (Object, error)

	// Put stores body under key, replacing any previous object.
	Put(ctx context.Context, key string, body []byte, contentType string) error

	// Delete removes the object. Deleting a missing object succeeds.
	Delete(ctx context.Context, key string) error

	// List returns one page of objects whose keys start with prefix. An empty
	// token requests the first page; an empty NextToken marks the last one.
	List(ctx context.Context, prefix, token string) (ListPage, error)

	// Ping checks that the store is reachable with the configured
	// credentials.
	Ping(ctx context.Context) error
}

// Object is a fetched object.
type Object struct {
	Body        []byte
	ContentType string
}

// ObjectInfo describes a listed object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ListPage is one page of a listing.
type ListPage struct {
	Objects   []ObjectInfo
	NextToken string
}

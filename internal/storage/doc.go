// Package storage defines the contract every notevault backend implements.
//
// Three backends satisfy [Adapter]: the SQLite cache (store.CacheStore), the
// directory tree (fsstore.DirectoryStore) and the local-first synchronizing
// backend over a remote object store (service.RemoteSyncAdapter). The active
// one is chosen by configuration at construction time.
package storage

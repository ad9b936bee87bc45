// Package constants holds configuration values shared across layers.
package constants

const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

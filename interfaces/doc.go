// Package interfaces defines the domain types, gateway contracts and error
// taxonomy shared by the halow dashboard.
//
// It has no dependencies on concrete backends: the storage and registry
// packages implement RecordStore and SecretRegistry, and the api packages
// consume them. Failures crossing these interfaces are classified with the
// sentinels in errors.go so handlers can decide user-visible behavior without
// knowing which backend produced the error.
package interfaces

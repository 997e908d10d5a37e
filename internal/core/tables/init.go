// Package tables registers the conference table kinds with the core registry.
// Import this package to ensure all kinds are registered.
package tables

// This file exists to provide a single import point.
// Each kind file uses init() to register itself.

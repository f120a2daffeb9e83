// Package engineconfig provides environment-driven configuration for the
// Forge effects engine: channel count, fixed-point propagation bounds,
// strict-invariant behavior, and metrics toggles. It follows the same
// env-var-with-secure-defaults-and-validation shape the host RPG engine
// uses for its own server configuration.
package engineconfig

// Package config defines FAP's agent configuration: RPC bind/auth/kill
// switch settings, tree indexer cache tuning, observability buffer
// caps, and action executor gesture timings. It loads from TOML with
// validated defaults, following the teacher's config/config_defaults/
// service split.
package config

// Package config provides configuration management for shadowkit.
//
// This package implements a layered configuration system. Configuration is
// loaded from multiple sources and merged in order, with later sources
// overriding earlier ones.
//
// # Configuration Layers
//
//  1. Default Configuration (embedded in binary)
//     - Latest platform version, internal types allowed, info logging, table output
//
//  2. User Configuration (~/.config/shadowkit/config.yaml)
//     - Personal preferences that apply everywhere
//
//  3. Project Configuration (./.shadowkit/config.yaml)
//     - Project-specific settings shared via version control
//
// An explicit --config flag replaces layers 2 and 3 with a single file.
//
// # Configuration Structure
//
//	platform:
//	  sdk: 33
//	  allowInternalTypes: false
//	logging:
//	  level: debug
//	output:
//	  format: yaml
//
// Fields left out of a layer keep the value of the layer below.
package config

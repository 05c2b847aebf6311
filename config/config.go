// Package config loads a YAML scenario description: the hosts, links,
// services, and users a simulation run bootstraps from, plus the
// routing_weight configuration option spec.md §6 names. Grounded on
// artemnikitin-firework's internal/config package (loader.go's
// Default*/Load* pair, types.go's yaml-tagged structs).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HostConfig describes one substrate.AddHost call.
type HostConfig struct {
	ID         string         `yaml:"id"`
	CPU        float64        `yaml:"cpu"`
	RAM        float64        `yaml:"ram"`
	Storage    float64        `yaml:"storage"`
	Physical   PhysicalConfig `yaml:"physical"`
}

// PhysicalConfig mirrors resource.HostPhysical for YAML loading.
type PhysicalConfig struct {
	CPUFrequencyHz       float64 `yaml:"cpu_frequency_hz"`
	CyclesPerSample      float64 `yaml:"cycles_per_sample"`
	EffectiveCapacitance float64 `yaml:"effective_capacitance"`
	BitsOverhead         float64 `yaml:"bits_overhead"`
}

// LinkConfig describes one substrate.AddLink call.
type LinkConfig struct {
	Src           string  `yaml:"src"`
	Dst           string  `yaml:"dst"`
	BandwidthGbps float64 `yaml:"bandwidth_gbps"`
	DelayMs       float64 `yaml:"delay_ms"`
	Loss          float64 `yaml:"loss"`
}

// ServiceConfig describes one catalog.AddService call.
type ServiceConfig struct {
	ID           string  `yaml:"id"`
	Title        string  `yaml:"title"`
	CPUReq       float64 `yaml:"cpu_req"`
	RAMReq       float64 `yaml:"ram_req"`
	StoreReq     float64 `yaml:"store_req"`
	BandwidthReq float64 `yaml:"bandwidth_req"`
}

// UserConfig describes one substrate.AddUser call plus its attach point.
type UserConfig struct {
	Name          string  `yaml:"name"`
	ChainID       string  `yaml:"chain_id"`
	Bandwidth     float64 `yaml:"bandwidth"`
	Pattern       string  `yaml:"pattern"` // "reserved" | "square" | "saw"
	AttachHostID  string  `yaml:"attach_host_id"`
	AttachBandwidthGbps float64 `yaml:"attach_bandwidth_gbps"`
	AttachDelayMs float64 `yaml:"attach_delay_ms"`
}

// ScenarioConfig is a complete, declarative substrate bootstrap plus
// simulation options.
type ScenarioConfig struct {
	RoutingWeight string          `yaml:"routing_weight"` // "delay" | "bandwidth_inverse"
	Hosts         []HostConfig    `yaml:"hosts"`
	Links         []LinkConfig    `yaml:"links"`
	Services      []ServiceConfig `yaml:"services"`
	Users         []UserConfig    `yaml:"users"`
}

// Default returns a ScenarioConfig with routing_weight defaulted to
// "delay" and everything else empty.
func Default() ScenarioConfig {
	return ScenarioConfig{RoutingWeight: "delay"}
}

// Load reads and parses a scenario file, applying Default()'s defaults
// for any field the file leaves unset.
func Load(path string) (ScenarioConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading scenario config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing scenario config %s: %w", path, err)
	}

	switch cfg.RoutingWeight {
	case "delay", "bandwidth_inverse":
	default:
		return cfg, fmt.Errorf("unsupported routing_weight: %q (expected \"delay\" or \"bandwidth_inverse\")", cfg.RoutingWeight)
	}

	return cfg, nil
}

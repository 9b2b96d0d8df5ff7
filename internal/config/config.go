// Package config loads the gateway's YAML configuration file the way the
// teacher does: a Defaults() struct literal overlaid by whatever the file
// on disk provides, traced with log.Printf as it loads.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var defaultConfigPath = "./configs/viscabridge.yml"

// SerialConfig is the shared RS-232/RS-422 daisy-chain bus (§4.5, §6).
type SerialConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    string `yaml:"port"` // "/dev/ttyUSB0", "COM5"
	Baud    int    `yaml:"baud"` // 9600 at power-on, 38400 once re-addressed
}

// IPCameraConfig is one VISCA-over-IP camera reachable at a fixed
// daisy-chain address (§4.5, §6).
type IPCameraConfig struct {
	Address int    `yaml:"address"`
	Addr    string `yaml:"addr"` // "192.168.1.30:52381"
}

// ServerConfig is the gateway's own outward-facing surfaces: the
// per-camera passthrough base port and the HTTP façade.
type ServerConfig struct {
	PassthroughBasePort int    `yaml:"passthrough_base_port"`
	HTTPHost            string `yaml:"http_host"`
	HTTPPort            int    `yaml:"http_port"`
}

// DiscoveryConfig drives the LAN auto-discovery probe for VISCA-over-IP
// cameras (supplemental feature, grounded on the teacher's WS-Discovery
// multicast listener).
type DiscoveryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	LANIfName string `yaml:"lan_if"`
	PublicIP  string `yaml:"public_ip"`
}

// InputBridgeConfig drives the line-oriented external control surface
// demo (supplemental feature, grounded on the teacher's TTYConfig).
type InputBridgeConfig struct {
	Enabled bool   `yaml:"enabled"`
	Device  string `yaml:"device"`
	Baud    int    `yaml:"baud"`
}

type Config struct {
	ViscaSerial    SerialConfig      `yaml:"viscaSerial"`
	ViscaIPCameras []IPCameraConfig  `yaml:"viscaIPCameras"`
	ViscaServer    ServerConfig      `yaml:"viscaServer"`
	Discovery      DiscoveryConfig   `yaml:"discovery"`
	InputBridge    InputBridgeConfig `yaml:"inputBridge"`
	ReadTimeout    time.Duration     `yaml:"read_timeout"`
	WriteTimeout   time.Duration     `yaml:"write_timeout"`
}

// Load overlays a YAML config file at path (or defaultConfigPath if path
// is empty) onto Defaults(). A missing file is not an error — a gateway
// with no config file just runs with an unaddressed serial port disabled
// and no IP cameras, which is a legitimate all-discovery deployment.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		path = defaultConfigPath
	}

	wd, _ := os.Getwd()
	log.Printf("[config] loading %s (cwd=%s)", path, wd)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[config] %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	log.Printf("[config] loaded: serial.enabled=%v ip_cameras=%d http=%s:%d",
		cfg.ViscaSerial.Enabled, len(cfg.ViscaIPCameras), cfg.ViscaServer.HTTPHost, cfg.ViscaServer.HTTPPort)
	return cfg, nil
}

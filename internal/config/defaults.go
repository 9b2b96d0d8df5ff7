package config

import "time"

func Defaults() *Config {
	return &Config{
		ViscaSerial: SerialConfig{
			Enabled: false,
			Port:    "/dev/ttyUSB0",
			Baud:    9600,
		},
		ViscaServer: ServerConfig{
			PassthroughBasePort: 52380,
			HTTPHost:            "0.0.0.0",
			HTTPPort:            8080,
		},
		Discovery: DiscoveryConfig{
			Enabled:   true,
			LANIfName: "eth0",
		},
		InputBridge: InputBridgeConfig{
			Enabled: false,
			Device:  "/dev/ttyACM0",
			Baud:    9600,
		},
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Package config loads process configuration with viper before the rest
// of each binary's dependency graph gets wired up.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CatalogConfig configures the catalog service.
type CatalogConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	CatalogFile     string        `mapstructure:"catalog_file"`
	RestockInterval time.Duration `mapstructure:"restock_interval"`
	MaxWorkers      int           `mapstructure:"max_workers"`
	FrontEndAddr    string        `mapstructure:"frontend_addr"`
}

// ReplicaAddr is a host:port pair for one order replica peer.
type ReplicaAddr struct {
	ID   int    `mapstructure:"id"`
	Addr string `mapstructure:"addr"`
}

// OrderReplicaConfig configures a single order replica process.
type OrderReplicaConfig struct {
	ComponentID  int           `mapstructure:"component_id"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	OrderLogFile string        `mapstructure:"order_log_file"`
	CatalogAddr  string        `mapstructure:"catalog_addr"`
	Peers        []ReplicaAddr `mapstructure:"peers"`
	MaxWorkers   int           `mapstructure:"max_workers"`
}

// FrontEndConfig configures the front-end process.
type FrontEndConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	GRPCPort     string        `mapstructure:"grpc_port"`
	CatalogAddr  string        `mapstructure:"catalog_addr"`
	Replicas     []ReplicaAddr `mapstructure:"replicas"`
	MaxWorkers   int           `mapstructure:"max_workers"`
	WatchdogTick time.Duration `mapstructure:"watchdog_tick"`
}

func newViper(component string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(component)
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func readOptional(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// LoadCatalog loads the catalog service's configuration.
func LoadCatalog() (*CatalogConfig, error) {
	v := newViper("catalog")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "9001")
	v.SetDefault("catalog_file", "catalog.csv")
	v.SetDefault("restock_interval", 10*time.Second)
	v.SetDefault("max_workers", 100)
	v.SetDefault("frontend_addr", "localhost:9101")
	_ = v.BindEnv("host", "CATALOG_HOST")
	_ = v.BindEnv("port", "CATALOG_PORT")
	_ = v.BindEnv("catalog_file", "CATALOG_FILE")
	_ = v.BindEnv("restock_interval", "RESTOCK_INTERVAL")
	_ = v.BindEnv("max_workers", "MAX_WORKERS")
	_ = v.BindEnv("frontend_addr", "FRONTEND_ADDR")

	if err := readOptional(v); err != nil {
		return nil, err
	}
	var cfg CatalogConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog config: %w", err)
	}
	return &cfg, nil
}

// LoadOrderReplica loads one order replica's configuration.
func LoadOrderReplica() (*OrderReplicaConfig, error) {
	v := newViper("orderreplica")
	v.SetDefault("component_id", 1)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "9011")
	v.SetDefault("order_log_file", "order_log.csv")
	v.SetDefault("catalog_addr", "localhost:9001")
	v.SetDefault("max_workers", 100)
	_ = v.BindEnv("component_id", "COMPONENT_ID")
	_ = v.BindEnv("host", "ORDER_HOST")
	_ = v.BindEnv("port", "ORDER_PORT")
	_ = v.BindEnv("order_log_file", "ORDER_LOG_FILE")
	_ = v.BindEnv("catalog_addr", "CATALOG_ADDR")
	_ = v.BindEnv("max_workers", "MAX_WORKERS")

	if err := readOptional(v); err != nil {
		return nil, err
	}
	var cfg OrderReplicaConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order replica config: %w", err)
	}
	if len(cfg.Peers) == 0 {
		cfg.Peers = defaultPeers(cfg.ComponentID)
	}
	return &cfg, nil
}

// defaultPeers fills in the canonical 3-replica deployment (ids 1..3 on
// sequential ports) when the config file omits an explicit peer list.
func defaultPeers(selfID int) []ReplicaAddr {
	var peers []ReplicaAddr
	for id := 1; id <= 3; id++ {
		if id == selfID {
			continue
		}
		peers = append(peers, ReplicaAddr{ID: id, Addr: fmt.Sprintf("localhost:%d", 9010+id)})
	}
	return peers
}

// LoadFrontEnd loads the front-end's configuration.
func LoadFrontEnd() (*FrontEndConfig, error) {
	v := newViper("frontend")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("grpc_port", "9101")
	v.SetDefault("catalog_addr", "localhost:9001")
	v.SetDefault("max_workers", 100)
	v.SetDefault("watchdog_tick", 1*time.Second)
	_ = v.BindEnv("host", "FRONTEND_HOST")
	_ = v.BindEnv("port", "FRONTEND_PORT")
	_ = v.BindEnv("grpc_port", "FRONTEND_GRPC_PORT")
	_ = v.BindEnv("catalog_addr", "CATALOG_ADDR")
	_ = v.BindEnv("max_workers", "MAX_WORKERS")

	if err := readOptional(v); err != nil {
		return nil, err
	}
	var cfg FrontEndConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal frontend config: %w", err)
	}
	if len(cfg.Replicas) == 0 {
		cfg.Replicas = []ReplicaAddr{
			{ID: 1, Addr: "localhost:9011"},
			{ID: 2, Addr: "localhost:9012"},
			{ID: 3, Addr: "localhost:9013"},
		}
	}
	return &cfg, nil
}

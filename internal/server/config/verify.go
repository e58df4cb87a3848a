// Package config defines the server configuration structure.
package config

import "errors"

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStore(&cfg.Store); err != nil {
		return err
	}
	if err := verifyPools(&cfg.Pools); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.Addr == "" {
		return errors.New("server.addr is required")
	}
	if cfg.AcceptRatePerSec <= 0 {
		return errors.New("server.accept_rate_per_sec must be positive")
	}
	if cfg.AcceptBurst < 1 {
		return errors.New("server.accept_burst must be at least 1")
	}
	return nil
}

func verifyStore(cfg *StoreSection) error {
	if cfg.NumDatastores < 1 {
		return errors.New("store.num_datastores must be at least 1")
	}
	return nil
}

func verifyPools(cfg *PoolsSection) error {
	if cfg.ReadWorkers < 1 {
		return errors.New("pools.read_workers must be at least 1")
	}
	if cfg.ParseExecuteWorkers < 1 {
		return errors.New("pools.parse_execute_workers must be at least 1")
	}
	if cfg.WriteWorkers < 1 {
		return errors.New("pools.write_workers must be at least 1")
	}
	if cfg.QueueDepth < 1 {
		return errors.New("pools.queue_depth must be at least 1")
	}
	return nil
}

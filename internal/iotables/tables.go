// Package iotables loads the table registry from tables.yaml.
package iotables

import (
	"os"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/config"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
	"gopkg.in/yaml.v3"
)

type iotables struct {
	cfg *config.Config
}

func New(cfg *config.Config) tables.Tables {
	res := iotables{cfg: cfg}
	return &res
}

func (t *iotables) Load() (*tables.Registry, error) {
	tablesPath := config.TablesFilePath(t.cfg.HomeDir)
	registry, err := loadRegistry(tablesPath)
	if err != nil {
		return nil, err
	}
	return registry, nil
}

func loadRegistry(path string) (*tables.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, TablesConfigError(path, err)
	}

	var registry tables.Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, TablesConfigError(path, err)
	}

	if err := registry.Validate(); err != nil {
		return nil, ValidationError(path, err)
	}

	return &registry, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edurag/tutor-backend/internal/entity"
)

// Tenants is the immutable tenant registry, keyed by tenant id. It is
// loaded once at startup and passed by reference; nothing mutates it at
// runtime.
type Tenants map[string]entity.Tenant

// Get looks up a tenant, returning entity.ErrUnknownTenant on a miss.
func (t Tenants) Get(id string) (entity.Tenant, error) {
	tenant, ok := t[id]
	if !ok {
		return entity.Tenant{}, fmt.Errorf("%w: %s", entity.ErrUnknownTenant, id)
	}
	return tenant, nil
}

// All returns every registered tenant.
func (t Tenants) All() []entity.Tenant {
	tenants := make([]entity.Tenant, 0, len(t))
	for _, tenant := range t {
		tenants = append(tenants, tenant)
	}
	return tenants
}

// tenantsFile represents the structure of the tenants registry JSON file.
type tenantsFile struct {
	Tenants []entity.Tenant `json:"tenants"`
}

func defaultTenants(dataDir string) []entity.Tenant {
	grades := []struct{ id, name, desc string }{
		{"7th", "Class 7 Study Materials", "Collection of Class 7 textbooks and study materials"},
		{"8th", "Class 8 Study Materials", "Collection of Class 8 textbooks and study materials"},
		{"10th", "Class 10 Study Materials", "Collection of Class 10 textbooks and study materials"},
	}
	tenants := make([]entity.Tenant, 0, len(grades))
	for _, g := range grades {
		tenants = append(tenants, entity.Tenant{
			ID:          g.id,
			Name:        g.name,
			Description: g.desc,
		})
	}
	return tenants
}

func loadTenants(cfg *Config) error {
	var defs []entity.Tenant

	if _, err := os.Stat(cfg.TenantsFile); os.IsNotExist(err) {
		fmt.Printf("Warning: tenant registry not found at %s, using default tenants\n", cfg.TenantsFile)
		defs = defaultTenants(cfg.DataDir)
	} else {
		data, err := os.ReadFile(cfg.TenantsFile)
		if err != nil {
			return fmt.Errorf("read tenant registry: %w", err)
		}
		var file tenantsFile
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse tenant registry JSON: %w", err)
		}
		if len(file.Tenants) == 0 {
			return fmt.Errorf("tenant registry contains no tenants: %s", cfg.TenantsFile)
		}
		defs = file.Tenants
	}

	cfg.Tenants = make(Tenants, len(defs))
	for _, tenant := range defs {
		if tenant.ID == "" {
			return fmt.Errorf("tenant registry entry without id")
		}
		if _, dup := cfg.Tenants[tenant.ID]; dup {
			return fmt.Errorf("duplicate tenant id %q in registry", tenant.ID)
		}
		if tenant.DocumentsDir == "" {
			tenant.DocumentsDir = filepath.Join(cfg.DataDir, "documents", tenant.ID)
		}
		if tenant.IndexDir == "" {
			tenant.IndexDir = filepath.Join(cfg.DataDir, "processed", tenant.ID, "index")
		}
		cfg.Tenants[tenant.ID] = tenant
	}

	fmt.Printf("Loaded %d tenants into the registry\n", len(cfg.Tenants))
	return nil
}

package config

import "github.com/kilianp07/perfmap/core/schema"

// RegistryConfig controls the schema instance registry.
type RegistryConfig struct {
	// DuplicatePolicy is "reject" or "replace".
	DuplicatePolicy string `json:"duplicate_policy"`
}

func (c *RegistryConfig) SetDefaults() {
	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = schema.RejectDuplicates.String()
	}
}

func (c RegistryConfig) Validate() error {
	_, err := schema.ParseDuplicatePolicy(c.DuplicatePolicy)
	return err
}

// Policy returns the parsed duplicate policy.
func (c RegistryConfig) Policy() (schema.DuplicatePolicy, error) {
	return schema.ParseDuplicatePolicy(c.DuplicatePolicy)
}

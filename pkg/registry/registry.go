// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"os"
)

func LoadCatalog(path string) (*SkillCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog SkillCatalog
	err = json.Unmarshal(data, &catalog)
	return &catalog, err
}

// Find returns the descriptor with the given id, or nil.
func (c *SkillCatalog) Find(id string) *SkillDescriptor {
	for i := range c.Skills {
		if c.Skills[i].ID == id {
			return &c.Skills[i]
		}
	}
	return nil
}

package model

import "fmt"

// Category is an iTunes category with an optional sub-category. In the
// configuration it can be written as a plain string ("News"), as a
// single-key map ({News: Politics}) or with explicit keys.
type Category struct {
	Name        string `yaml:"name"`
	Subcategory string `yaml:"subcategory,omitempty"`
}

func (c *Category) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		c.Name = name
		return nil
	}

	var mapData map[string]string
	if err := unmarshal(&mapData); err == nil && len(mapData) == 1 {
		if _, explicit := mapData["name"]; !explicit {
			for k, v := range mapData {
				c.Name = k
				c.Subcategory = v
			}
			return nil
		}
	}
	// Can not use Category type as that makes unmarshalling infinitely recursive
	type CategoryInternal struct {
		Name        string `yaml:"name"`
		Subcategory string `yaml:"subcategory"`
	}
	var category CategoryInternal
	if err := unmarshal(&category); err != nil {
		return fmt.Errorf("category must be a string, a single-key map or {name, subcategory}: %w", err)
	}
	c.Name = category.Name
	c.Subcategory = category.Subcategory
	return nil
}

func (c Category) String() string {
	if c.Subcategory == "" {
		return c.Name
	}
	return c.Name + " > " + c.Subcategory
}

package config

import (
	"fmt"
	"os"

	"launchdash/domain/launch"
	"launchdash/internal/errors"

	"gopkg.in/yaml.v3"
)

// siteFile is the YAML layout of SITES_FILE:
//
//	sites:
//	  - label: CCAFS LC-40
//	    value: CCAFS LC-40
type siteFile struct {
	Sites []launch.SiteOption `yaml:"sites"`
}

// LoadCatalog reads the site catalog; an empty path yields the built-in four sites
func LoadCatalog(path string) (*launch.Catalog, error) {
	if path == "" {
		return launch.DefaultCatalog(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to read sites file %s", path)
	}
	return ParseCatalog(content)
}

// ParseCatalog decodes a YAML site catalog
func ParseCatalog(content []byte) (*launch.Catalog, error) {
	var file siteFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, errors.ConfigInvalid(fmt.Sprintf("invalid sites YAML: %v", err))
	}
	if len(file.Sites) == 0 {
		return nil, errors.ConfigInvalid("sites file lists no sites")
	}
	catalog, err := launch.NewCatalog(file.Sites)
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	return catalog, nil
}

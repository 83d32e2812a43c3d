package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/armkit/armkit/faults"
)

// Service reads and writes the profile catalog. An empty Path resolves to
// the ARMKIT_CONFIG_FILE environment variable, then ~/.armkit/config.yaml.
type Service struct {
	Path string
}

func (s *Service) FilePath() (string, error) {
	if strings.TrimSpace(s.Path) != "" {
		return s.Path, nil
	}
	if fromEnv := strings.TrimSpace(os.Getenv(CatalogFileEnvVar)); fromEnv != "" {
		return fromEnv, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", faults.Configurationf("unable to determine home directory: %v", err)
	}
	return filepath.Join(home, defaultConfigDir, defaultConfigFile), nil
}

// Load reads the catalog. A missing or empty file is an empty catalog, not
// an error.
func (s *Service) Load() (Catalog, error) {
	path, err := s.FilePath()
	if err != nil {
		return Catalog{}, err
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return Catalog{}, nil
	default:
		return Catalog{}, faults.Configurationf("reading config file %q: %v", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Catalog{}, nil
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, faults.Configurationf("parsing config file %q: %v", path, err)
	}
	return catalog, nil
}

func (s *Service) Save(catalog Catalog) error {
	path, err := s.FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return faults.Configurationf("creating config directory: %v", err)
	}

	data, err := yaml.Marshal(catalog)
	if err != nil {
		return faults.Configurationf("encoding config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return faults.Configurationf("writing config file %q: %v", path, err)
	}
	return nil
}

// Current resolves the active profile: the named one when given, the
// catalog's current profile otherwise.
func (s *Service) Current(name string) (Profile, error) {
	catalog, err := s.Load()
	if err != nil {
		return Profile{}, err
	}

	if name == "" {
		name = catalog.CurrentProfile
	}
	if name == "" {
		return Profile{}, faults.Configurationf("no profile selected; add one with 'armkit profile set'")
	}
	profile, ok := catalog.lookup(name)
	if !ok {
		return Profile{}, faults.Configurationf("profile %q not found in the catalog", name)
	}
	return profile, nil
}

// Set inserts or replaces a profile. The first profile becomes current.
func (s *Service) Set(profile Profile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return faults.Configurationf("profile name must not be blank")
	}

	catalog, err := s.Load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range catalog.Profiles {
		if catalog.Profiles[i].Name == profile.Name {
			catalog.Profiles[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		catalog.Profiles = append(catalog.Profiles, profile)
	}
	if catalog.CurrentProfile == "" {
		catalog.CurrentProfile = profile.Name
	}
	return s.Save(catalog)
}

// Use switches the current profile.
func (s *Service) Use(name string) error {
	catalog, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := catalog.lookup(name); !ok {
		return faults.Configurationf("profile %q not found in the catalog", name)
	}
	catalog.CurrentProfile = name
	return s.Save(catalog)
}

// Delete removes a profile; deleting the current one clears the selection.
func (s *Service) Delete(name string) error {
	catalog, err := s.Load()
	if err != nil {
		return err
	}

	kept := catalog.Profiles[:0]
	found := false
	for _, profile := range catalog.Profiles {
		if profile.Name == name {
			found = true
			continue
		}
		kept = append(kept, profile)
	}
	if !found {
		return faults.Configurationf("profile %q not found in the catalog", name)
	}
	catalog.Profiles = kept
	if catalog.CurrentProfile == name {
		catalog.CurrentProfile = ""
	}
	return s.Save(catalog)
}

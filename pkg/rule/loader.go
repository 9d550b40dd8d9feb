package rule

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/rulebridge/pkg/types"
	"gopkg.in/yaml.v3"
)

// Loader handles loading quality profiles from YAML or JSON files.
type Loader struct {
	fs fs.FS
}

// NewLoader creates a loader reading from the working directory.
func NewLoader() *Loader {
	return &Loader{
		fs: os.DirFS("."),
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// LoadProfile loads a quality profile from YAML or JSON bytes.
// A missing rules list or properties map yields empty, non-nil values.
func (l *Loader) LoadProfile(data []byte) (*types.QualityProfile, error) {
	var file yamlProfileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	profile, err := convertYAMLProfile(file)
	if err != nil {
		return nil, err
	}
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// LoadProfileFile loads a quality profile from a file path.
func (l *Loader) LoadProfileFile(path string) (*types.QualityProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.LoadProfile(data)
}

// LoadProfiles loads every *.yml, *.yaml and *.json profile below dir in the
// loader filesystem, keyed by language. Two profiles for the same language
// are an error.
func (l *Loader) LoadProfiles(dir string) (map[string]*types.QualityProfile, error) {
	profiles := make(map[string]*types.QualityProfile)

	err := fs.WalkDir(l.fs, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yml", ".yaml", ".json":
		default:
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		profile, err := l.LoadProfile(data)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		if _, dup := profiles[profile.Language]; dup {
			return fmt.Errorf("duplicate profile for language %q in %s", profile.Language, path)
		}
		profiles[profile.Language] = profile
		return nil
	})

	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// convertYAMLProfile converts yamlProfileFile to types.QualityProfile.
func convertYAMLProfile(file yamlProfileFile) (*types.QualityProfile, error) {
	rules := make([]types.SonarQubeRule, 0, len(file.Rules))
	for _, yr := range file.Rules {
		sev, err := types.ParseSeverity(yr.Severity)
		if err != nil {
			return nil, fmt.Errorf("rule %s:%s: %w", yr.Repository, yr.Key, err)
		}
		params := yr.Params
		if params == nil {
			params = map[string]string{}
		}
		rules = append(rules, types.SonarQubeRule{
			Key:           yr.Key,
			RepositoryKey: yr.Repository,
			IsActive:      yr.Active,
			Severity:      sev,
			Parameters:    params,
		})
	}

	properties := file.Properties
	if properties == nil {
		properties = map[string]string{}
	}

	return &types.QualityProfile{
		Language:   file.Language,
		Rules:      rules,
		Properties: properties,
	}, nil
}

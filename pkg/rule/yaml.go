package rule

// yamlRule is the intermediate struct for parsing a quality profile rule.
type yamlRule struct {
	Key        string            `yaml:"key"`
	Repository string            `yaml:"repository"`
	Active     bool              `yaml:"active"`
	Severity   string            `yaml:"severity,omitempty"`
	Params     map[string]string `yaml:"params,omitempty"`
}

// yamlProfileFile represents the top-level structure of a profile file.
// JSON exports from the server parse through the same struct since JSON is
// a subset of YAML.
type yamlProfileFile struct {
	Language   string            `yaml:"language"`
	Rules      []yamlRule        `yaml:"rules"`
	Properties map[string]string `yaml:"properties"`
}

package resource

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

var envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)

// Properties holds application properties read from YAML. String values may reference
// environment variables as ${NAME} or ${NAME:default}.
type Properties struct {
	v *viper.Viper
}

// Load reads properties from a YAML file.
func Load(filepath string) (*Properties, error) {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fail to read properties: %w", err)
	}
	return newProperties(v)
}

// LoadReader reads properties in YAML form from r.
func LoadReader(r io.Reader) (*Properties, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("fail to read properties: %w", err)
	}
	return newProperties(v)
}

func newProperties(v *viper.Viper) (*Properties, error) {
	resolved := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), resolved)

	for key, value := range resolved {
		v.Set(key, value)
	}
	return &Properties{v: v}, nil
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case map[string]interface{}:
			parsePropertiesMap(fullKey, v, result)
		default:
			result[fullKey] = v
		}
	}
}

// resolveEnvVariable replaces every ${NAME:default} reference in value
func resolveEnvVariable(value string) string {
	return envPattern.ReplaceAllStringFunc(value, func(ref string) string {
		matches := envPattern.FindStringSubmatch(ref)
		if envValue, exists := os.LookupEnv(matches[1]); exists {
			return envValue
		}
		return matches[2]
	})
}

func (p *Properties) GetString(key string) string {
	return p.v.GetString(key)
}

func (p *Properties) GetDuration(key string) time.Duration {
	return p.v.GetDuration(key)
}

func (p *Properties) GetInt(key string) int {
	return p.v.GetInt(key)
}

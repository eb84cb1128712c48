package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SetValue sets a configuration value by key
// Supported keys:
//   - catalogue_file, checksum_file, working_dir, user_agent: string
//   - max_attempts: int - Tries per file, at least 1
//   - http_timeout: duration - e.g. 30s, 0 disables the timeout
//   - show_progress: bool - Whether to draw progress bars
//   - log_level: string - Logging level (debug, info, warn, error)
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "catalogue_file":
		c.Settings.CatalogueFile = value
	case "checksum_file":
		c.Settings.ChecksumFile = value
	case "working_dir":
		c.Settings.WorkingDir = value
	case "user_agent":
		c.Settings.UserAgent = value
	case "max_attempts":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		c.Settings.MaxAttempts = n
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		c.Settings.HTTPTimeout = d
	case "show_progress":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.Settings.ShowProgress = boolVal
	case "log_level":
		c.Settings.LogLevel = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return c.Validate()
}

// GetValue returns a configuration value by key as a string.
func (c *Config) GetValue(key string) (string, error) {
	values := c.ToMap()
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return v, nil
}

// Keys returns the supported configuration keys in sorted order.
func (c *Config) Keys() []string {
	values := c.ToMap()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToMap returns the settings keyed by their YAML names.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		// Handle yaml tags with options (e.g., "working_dir,omitempty")
		yamlKey := strings.Split(yamlTag, ",")[0]

		fieldValue := settingsValue.Field(i)
		var strValue string
		switch v := fieldValue.Interface().(type) {
		case time.Duration:
			strValue = v.String()
		case bool:
			strValue = strconv.FormatBool(v)
		case int:
			strValue = strconv.Itoa(v)
		case string:
			strValue = v
		case *AuthConfig:
			strValue = "none"
			if a := v.Authenticator(); a != nil {
				strValue = fmt.Sprint(a)
			}
		default:
			strValue = fmt.Sprintf("%v", v)
		}

		result[yamlKey] = strValue
	}

	return result
}

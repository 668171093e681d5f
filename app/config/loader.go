package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads the subscription seed file. The file is optional; a missing
// path yields an empty subscription list rather than an error.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Load() (*Subscriptions, error) {
	subs := &Subscriptions{}

	if l.path == "" {
		return subs, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return subs, nil
		}
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	if err := yaml.Unmarshal(data, subs); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	if err := l.validate(subs); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", l.path, err)
	}

	return subs, nil
}

func (l *Loader) validate(subs *Subscriptions) error {
	for i, url := range subs.Feeds {
		if strings.TrimSpace(url) == "" {
			return fmt.Errorf("feed entry %d is empty", i+1)
		}
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Request is one content-generation request: a topic and optional explicit
// source URLs.
type Request struct {
	Topic string   `yaml:"topic"`
	URLs  []string `yaml:"urls,omitempty"`
}

// RequestFile is the on-disk representation of a batch of requests, run
// sequentially as independent runs.
type RequestFile struct {
	Requests []Request `yaml:"requests"`
}

// ReadRequestFile loads and validates a batch request file.
func ReadRequestFile(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	var rf RequestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	if len(rf.Requests) == 0 {
		return nil, fmt.Errorf("request file %s contains no requests", path)
	}
	for i, r := range rf.Requests {
		if r.Topic == "" {
			return nil, fmt.Errorf("request %d has an empty topic", i+1)
		}
	}
	return &rf, nil
}

// WriteRequestFile saves a batch of requests to a YAML file.
func WriteRequestFile(path string, rf *RequestFile) error {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return fmt.Errorf("marshaling request file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

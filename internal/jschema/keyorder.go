// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// ExtractKeyOrderFromJSON parses raw JSON and extracts the order of keys for
// the root object and for all "properties" objects. Returns a map from JSON
// path (e.g. "", "properties", "definitions.Post.properties") to ordered keys.
func ExtractKeyOrderFromJSON(data []byte) (map[string][]string, error) {
	result := make(map[string][]string)
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := extractKeyOrder(dec, "", result); err != nil {
		return nil, fmt.Errorf("failed to extract key order: %w", err)
	}
	return result, nil
}

func extractKeyOrder(dec *json.Decoder, path string, result map[string][]string) error {
	token, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return nil
	}
	switch delim {
	case '{':
		var keys []string
		for dec.More() {
			keyToken, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := keyToken.(string)
			if !ok {
				return fmt.Errorf("unexpected object key %v", keyToken)
			}
			keys = append(keys, key)
			if err := extractKeyOrder(dec, joinPath(path, key), result); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
		if path == "" || isPropertiesPath(path) {
			result[path] = keys
		}
	case '[':
		for dec.More() {
			if err := extractKeyOrder(dec, path, result); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
	}
	return nil
}

func isPropertiesPath(path string) bool {
	return path == "properties" || strings.HasSuffix(path, ".properties")
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// SetPropertyOrder walks the schema tree rooted at path and sets
// PropertyOrder on every object whose key order was extracted.
func SetPropertyOrder(s *Schema, keyOrder map[string][]string, path string) {
	if s == nil {
		return
	}
	if order, ok := keyOrder[joinPath(path, "properties")]; ok {
		s.PropertyOrder = nil
		for _, key := range order {
			if _, exists := s.Properties[key]; exists {
				s.PropertyOrder = append(s.PropertyOrder, key)
			}
		}
	}
	for name, prop := range s.Properties {
		SetPropertyOrder(prop, keyOrder, joinPath(path, "properties."+name))
	}
	SetPropertyOrder(s.Items, keyOrder, joinPath(path, "items"))
	for name, def := range s.Definitions {
		SetPropertyOrder(def, keyOrder, joinPath(path, "definitions."+name))
	}
}

// Package utils holds the small shared helpers for handling model output:
// lenient JSON parsing (hosted models love trailing commas and markdown
// fences) and markdown rendering for the dashboard.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes the JSON defects models commonly produce: markdown
// fences, single quotes, unquoted keys, trailing commas, unclosed arrays.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// SmartParse unmarshals model output into target, escalating through
// stricter-to-looser parsers: standard JSON, then repaired JSON, then
// Hjson. Returns the text that finally parsed.
func SmartParse(input string, target interface{}) (string, error) {
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return repaired, nil
		}
	}

	var loose interface{}
	if err := hjson.Unmarshal([]byte(input), &loose); err == nil {
		if normalized, err := json.Marshal(loose); err == nil {
			if err := json.Unmarshal(normalized, target); err == nil {
				return string(normalized), nil
			}
		}
	}

	return "", fmt.Errorf("no parsing strategy could read the model output")
}

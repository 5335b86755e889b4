// internal/workers/matching/matchjob/schema.go
package matchjob

import (
	"encoding/json"
	"fmt"

	apperrors "marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/validation"
)

const definitions = `
  "definitions": {
    "location": {
      "type": ["object", "null"],
      "required": ["lat", "lng"],
      "properties": {
        "lat": {"type": "number", "minimum": -90, "maximum": 90},
        "lng": {"type": "number", "minimum": -180, "maximum": 180}
      }
    },
    "request": {
      "type": "object",
      "properties": {
        "category": {"type": "string"},
        "description": {"type": "string"},
        "issueTag": {"type": "string"},
        "accessibility": {"type": "string", "pattern": "^(?i)\\s*(easy|medium|hard)?\\s*$"},
        "complexity": {"type": "string", "pattern": "^(?i)\\s*(standard|complex|critical)?\\s*$"},
        "urgency": {"type": "string", "pattern": "^(?i)\\s*(immediate|planned)?\\s*$"},
        "location": {"$ref": "#/definitions/location"},
        "emergency": {"type": ["boolean", "null"]}
      }
    },
    "categorisedRequest": {
      "allOf": [
        {"$ref": "#/definitions/request"},
        {"required": ["category"], "properties": {"category": {"minLength": 1}}}
      ]
    },
    "professional": {
      "type": "object",
      "required": ["id", "hourlyRate"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string"},
        "capabilityTags": {"type": ["array", "null"], "items": {"type": "string"}},
        "difficultyTolerance": {"type": "string", "pattern": "^(?i)\\s*(easy|medium|hard)?\\s*$"},
        "rating": {"type": "number", "minimum": 0, "maximum": 5},
        "reviewCount": {"type": "integer", "minimum": 0},
        "location": {"$ref": "#/definitions/location"},
        "responseTimeMinutes": {"type": "integer", "minimum": 0},
        "emergencyMode": {"type": "boolean"},
        "hourlyRate": {"type": "number", "exclusiveMinimum": 0},
        "yearsExperience": {"type": "integer", "minimum": 0},
        "completedJobs": {"type": "integer", "minimum": 0},
        "specializations": {"type": ["array", "null"], "items": {"type": "string"}}
      }
    },
    "options": {
      "type": ["object", "null"],
      "properties": {
        "maxRadiusKm": {"type": "number", "exclusiveMinimum": 0, "maximum": 500},
        "limit": {"type": "integer", "minimum": 1, "maximum": 100},
        "includeExcluded": {"type": "boolean"}
      }
    }
  }`

func schemaDoc(body string) string {
	return fmt.Sprintf(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  %s,
  %s
}`, body, definitions)
}

var (
	// RankingSchema covers match-professionals and generate-bids jobs.
	RankingSchema = validation.MustCompile("ranking", schemaDoc(`
  "required": ["request"],
  "properties": {
    "request": {"$ref": "#/definitions/categorisedRequest"},
    "professionals": {"type": ["array", "null"], "items": {"$ref": "#/definitions/professional"}},
    "options": {"$ref": "#/definitions/options"}
  }`))

	ClassifySchema = validation.MustCompile("classify-request", schemaDoc(`
  "required": ["request"],
  "properties": {
    "request": {"$ref": "#/definitions/request"}
  }`))

	EstimateSchema = validation.MustCompile("estimate-price", schemaDoc(`
  "required": ["request", "professional"],
  "properties": {
    "request": {"$ref": "#/definitions/request"},
    "professional": {"$ref": "#/definitions/professional"},
    "preset": {"type": "string", "enum": ["matching", "bidding"]},
    "travelFeePerKm": {"type": "number", "minimum": 0}
  }`))
)

// Decode validates raw job variables against schema and unmarshals them into
// out. Failures come back as non-retryable StandardErrors.
func Decode(schema *validation.Schema, raw string, out interface{}) error {
	if raw == "" {
		raw = "{}"
	}
	result, err := schema.ValidateJSON(raw)
	if err != nil {
		return apperrors.NewParseError(err)
	}
	if !result.Valid {
		return apperrors.NewInputSchemaError(result.Summary()).
			WithMetadata("validationErrors", result.Errors)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return apperrors.NewParseError(err)
	}
	return nil
}

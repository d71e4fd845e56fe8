package elasticsearch

import "fmt"

// used as body to create index requests
var indexSettingsTemplate = `{
	"mappings": %s,
	"settings": {
		"index.mapping.ignore_malformed": true,
		"analysis": {
			"analyzer": {
				"folded": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				}
			}
		}
	}
}`

var personIndexMapping = `{
	"properties": {
		"id": {"type": "keyword"},
		"tree": {"type": "keyword"},
		"xref": {"type": "keyword"},
		"changed_day": {"type": "integer"},
		"names": {
			"properties": {
				"surname": {"type": "text", "analyzer": "folded"},
				"surname_folded": {"type": "keyword"},
				"given": {"type": "text", "analyzer": "folded"},
				"preferred": {"type": "boolean"},
				"num": {"type": "integer"}
			}
		},
		"events": {
			"properties": {
				"fact": {"type": "keyword"},
				"year": {"type": "integer"},
				"place": {"type": "text", "analyzer": "folded"},
				"place_id": {"type": "keyword"}
			}
		}
	}
}`

func buildIndexSettings() string {
	return fmt.Sprintf(indexSettingsTemplate, personIndexMapping)
}

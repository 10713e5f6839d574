package config

import (
	"github.com/xeipuuv/gojsonschema"

	"github.com/put0/imgshrink/util"
)

// Schema is the JSON schema of a config file.
var Schema = initSchema()

func initSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(SchemaString))
	util.Check(err)
	return s
}

// SchemaString is the stringified config file schema.
const SchemaString = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "root": {
            "type": "string",
            "minLength": 1
        },
        "quality": {
            "type": "integer",
            "minimum": 0,
            "maximum": 100
        },
        "extensions": {
            "type": "array",
            "minItems": 1,
            "uniqueItems": true,
            "items": {
                "type": "string",
                "pattern": "^\\.?([pP][nN][gG]|[jJ][pP][eE]?[gG])$"
            }
        },
        "exclude": {
            "type": "array",
            "items": {
                "type": "string",
                "minLength": 1
            }
        },
        "manifest": {
            "type": "string",
            "minLength": 1
        }
    },
    "additionalProperties": false
}`

// knownKeys are the top-level properties allowed by Schema.
var knownKeys = []string{
	"root",
	"quality",
	"extensions",
	"exclude",
	"manifest",
}

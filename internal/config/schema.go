package config

import (
	"bytes"
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/jsonc"
)

//go:embed schema.json
var schemaJSON []byte

var documentSchema *jsonschema.Schema

func init() {
	js, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	if err := compiler.AddResource("schema.json", js); err != nil {
		panic(err)
	}

	documentSchema, err = compiler.Compile("schema.json")
	if err != nil {
		panic(err)
	}
}

// Schema returns the JSON schema that config documents are checked against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

// ValidateDocument checks a config document against the schema without
// resolving includes. The document must be plain JSON unless allowComments
// is set, in which case comments and trailing commas are accepted.
func ValidateDocument(data []byte, allowComments bool) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentJSON(data, allowComments)))
	if err != nil {
		return err
	}
	return documentSchema.Validate(instance)
}

func documentJSON(data []byte, allowComments bool) []byte {
	if allowComments {
		return jsonc.ToJSON(data)
	}
	return data
}

package chat

import (
	"github.com/invopop/jsonschema"
)

// TranscriptSchema describes the JSON document written by Transcript.ToFile.
func TranscriptSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&Transcript{})
	schema.Title = "talent-screener transcript"
	return schema
}

package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas keyed by *Schema. Schemas are package
// level values in their callers and never change after creation.
var compiled sync.Map

// finishResponse turns raw model output into validated content. Structured
// output cut off at the token limit is reported as KindTruncated instead of
// failing validation.
func finishResponse(provider string, req Request, raw string, stop string) (json.RawMessage, error) {
	content := json.RawMessage(raw)
	if req.Schema == nil {
		return content, nil
	}
	if stop == StopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Provider: provider, Content: content}
	}

	content = stripCodeFence(content)
	if err := validateResponse(req.Schema, content); err != nil {
		err.Provider = provider
		return nil, err
	}
	return content, nil
}

// stripCodeFence removes a Markdown code fence some models wrap JSON in.
func stripCodeFence(raw json.RawMessage) json.RawMessage {
	b := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	if nl := bytes.IndexByte(b, '\n'); nl >= 0 {
		b = b[nl+1:]
	} else {
		b = b[3:]
	}
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}

// validateResponse checks raw against schema.
func validateResponse(schema *Schema, raw json.RawMessage) *Error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalidResponse(raw, fmt.Errorf("not JSON: %w", err))
	}

	sch, err := compileSchema(schema)
	if err != nil {
		return invalidResponse(raw, err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalidResponse(raw, fmt.Errorf("%s: %w", schema.Name, err))
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema); ok {
		return s.(*jsonschema.Schema), nil
	}

	// Round-trip through JSON so Go ints in the definition become the
	// json.Number values the compiler expects.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", schema.Name, err)
	}

	url := "mem://revquiz/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", schema.Name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", schema.Name, err)
	}

	actual, _ := compiled.LoadOrStore(schema, s)
	return actual.(*jsonschema.Schema), nil
}

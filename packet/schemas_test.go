package packet_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"craftwire.dev/chat"
	"craftwire.dev/packet"
)

func TestStatusDocumentMatchesSchema(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "schemas", "status.schema.json"))
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	doc := packet.StatusDocument{
		Version: packet.StatusVersion{Name: packet.ProtocolName, Protocol: packet.ProtocolVersion},
		Players: packet.StatusPlayers{Max: 100, Online: 3},
		Description: &chat.Component{
			Text:  "craftwire test server",
			Color: "gray",
		},
		EnforcesSecureChat: true,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := schema.Validate(v); err != nil {
		t.Fatalf("validate: %v", err)
	}

	// A document missing its version must fail.
	var bad any
	_ = json.Unmarshal([]byte(`{"players":{"max":1,"online":0}}`), &bad)
	if err := schema.Validate(bad); err == nil {
		t.Fatalf("version-less document validated")
	}
}

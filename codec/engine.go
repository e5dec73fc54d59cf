package codec

import (
	"encoding/json"
	"io"

	gojson "github.com/goccy/go-json"
)

// Decoder is the streaming decoder shape shared by the supported engines.
type Decoder interface {
	UseNumber()
	Decode(v any) error
}

// Engine is the JSON implementation used for scalar encoding and generic parsing.
type Engine interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	NewDecoder(r io.Reader) Decoder
}

// StdEngine is backed by encoding/json.
type StdEngine struct{}

func (StdEngine) Name() string                       { return "std" }
func (StdEngine) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (StdEngine) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (StdEngine) NewDecoder(r io.Reader) Decoder     { return json.NewDecoder(r) }

// GoJSONEngine is backed by github.com/goccy/go-json.
type GoJSONEngine struct{}

func (GoJSONEngine) Name() string                       { return "go-json" }
func (GoJSONEngine) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (GoJSONEngine) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (GoJSONEngine) NewDecoder(r io.Reader) Decoder     { return gojson.NewDecoder(r) }

// EngineByName returns the engine registered under name ("std", "go-json").
func EngineByName(name string) (Engine, bool) {
	switch name {
	case "", "std", "stdlib", "encoding/json":
		return StdEngine{}, true
	case "go-json", "gojson", "goccy":
		return GoJSONEngine{}, true
	}
	return nil, false
}

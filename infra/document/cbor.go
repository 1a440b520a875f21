package document

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBORParser implements koanf.Parser for compact binary documents.
type CBORParser struct {
	dec cbor.DecMode
	enc cbor.EncMode
}

// NewCBORParser returns a parser decoding CBOR maps into map[string]any.
func NewCBORParser() (*CBORParser, error) {
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return nil, err
	}
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return &CBORParser{dec: dec, enc: enc}, nil
}

// Unmarshal decodes a CBOR map.
func (p *CBORParser) Unmarshal(b []byte) (map[string]any, error) {
	var out map[string]any
	if err := p.dec.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes a map as canonical CBOR.
func (p *CBORParser) Marshal(m map[string]any) ([]byte, error) {
	return p.enc.Marshal(m)
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawEnvelope is the decoded form of the native result record.
type RawEnvelope struct {
	Success bool
	Data    *string
	Error   *string
}

// PayloadKind tags the shape of a successful reply's data.
type PayloadKind int

const (
	// PayloadUnit means the reply carried no data.
	PayloadUnit PayloadKind = iota

	// PayloadStructured means the data parsed as JSON. Value holds the tree
	// with field names already rewritten to host casing.
	PayloadStructured

	// PayloadLiteral means the data was not JSON; Raw is passed through.
	PayloadLiteral
)

// Payload is the data of a successful native reply.
// Raw always holds the original string, whatever the kind.
type Payload struct {
	Kind  PayloadKind
	Raw   string
	Value any
}

// ParsePayload classifies reply data: absent or empty data is a unit payload,
// valid JSON is structured, anything else is a literal.
func ParsePayload(data *string) Payload {
	if data == nil || *data == "" {
		return Payload{Kind: PayloadUnit}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(*data)))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil || dec.More() {
		return Payload{Kind: PayloadLiteral, Raw: *data}
	}

	return Payload{
		Kind:  PayloadStructured,
		Raw:   *data,
		Value: RewriteKeys(tree, SnakeToCamel),
	}
}

// Decode unmarshals a structured payload into dst.
func (p Payload) Decode(dst any) error {
	if p.Kind != PayloadStructured {
		return fmt.Errorf("%w: expected structured data, got %q", ErrDecodeFailure, p.Raw)
	}

	data, err := json.Marshal(p.Value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	return nil
}

// Bool reads a boolean flag reply, encoded as the literal "true" or "false".
func (p Payload) Bool() bool {
	return p.Raw == "true"
}

// Int reads an integer reply encoded as a decimal string.
func (p Payload) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(p.Raw))
	if err != nil {
		return 0, fmt.Errorf("%w: expected integer, got %q", ErrDecodeFailure, p.Raw)
	}
	return n, nil
}

// NullableString reads a nullable string reply. The literal "null" and a unit
// payload both mean absent; a JSON string literal yields its value.
func (p Payload) NullableString() *string {
	if p.Kind == PayloadUnit || p.Raw == "null" {
		return nil
	}
	if s, ok := p.Value.(string); ok {
		return &s
	}
	raw := p.Raw
	return &raw
}

package project

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

var canonical cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	canonical = em
}

func encode(v any) ([]byte, bool) {
	data, err := canonical.Marshal(v)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Same reports whole-value equality of two declarations. Map ordering does not
// matter; slice ordering does. Values that cannot be encoded are never the same.
func Same(a, b any) bool {
	ea, ok := encode(a)
	if !ok {
		return false
	}
	eb, ok := encode(b)
	if !ok {
		return false
	}
	return bytes.Equal(ea, eb)
}

// Fingerprint hashes the canonical encoding of a declaration. Zero means the value
// could not be encoded.
func Fingerprint(v any) uint64 {
	data, ok := encode(v)
	if !ok {
		return 0
	}
	return xxhash.Sum64(data)
}

// HashScript returns the manifest hash of a code module's content.
func HashScript(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// AssignMissingUUIDs gives a persistent uuid to every authored instance lacking one,
// in layouts and external layouts. It returns how many were assigned.
func AssignMissingUUIDs(p *ProjectData) int {
	assigned := 0
	fill := func(instances []InstanceData) {
		for i := range instances {
			if instances[i].PersistentUUID == "" {
				instances[i].PersistentUUID = uuid.NewString()
				assigned++
			}
		}
	}
	for i := range p.Layouts {
		fill(p.Layouts[i].Instances)
	}
	for i := range p.ExternalLayouts {
		fill(p.ExternalLayouts[i].Instances)
	}
	return assigned
}

// Literal normalizes a declared primitive value so that literals decoded by different
// formats compare equal (YAML integers against JSON floats, numeric strings).
func Literal(t VariableType, v any) any {
	switch t {
	case VariableNumber:
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int64:
			return float64(n)
		case uint64:
			return float64(n)
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return float64(0)
			}
			return f
		case nil:
			return float64(0)
		}
	case VariableString:
		switch s := v.(type) {
		case string:
			return s
		case nil:
			return ""
		}
	case VariableBoolean:
		switch b := v.(type) {
		case bool:
			return b
		case string:
			return b == "true"
		case nil:
			return false
		}
	}
	return v
}

package load

import (
	"fmt"
	"os"

	"github.com/anore/anore-go/pkg/model"
	"github.com/fxamacker/cbor/v2"
)

var (
	// docEncMode writes deterministic output so equal trees encode equally.
	docEncMode cbor.EncMode

	docDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		ShortestFloat: cbor.ShortestFloat16,
	}
	docEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create document CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:            cbor.DupMapKeyEnforcedAPF,
		IndefLength:          cbor.IndefLengthAllowed,
		UnrecognizedTagToAny: cbor.UnrecognizedTagContentToAny,
	}
	docDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create document CBOR decoder mode: %v", err))
	}
}

// ParseCBOR decodes a CBOR data item into a node tree. Map keys that are
// not text strings are formatted as strings.
func ParseCBOR(data []byte) (model.Node, error) {
	var doc any
	if err := docDecMode.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing cbor: %w", err)
	}
	return model.Box(doc), nil
}

// EncodeCBOR writes the plain form of n as canonical CBOR.
func EncodeCBOR(n model.Node) ([]byte, error) {
	data, err := docEncMode.Marshal(n.Unbox())
	if err != nil {
		return nil, fmt.Errorf("encoding cbor: %w", err)
	}
	return data, nil
}

// LoadCBOR reads and parses a CBOR file.
func LoadCBOR(path string) (model.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseCBOR(data)
}

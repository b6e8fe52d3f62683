package snapshot

import (
	"fmt"

	"github.com/jrhy/paramtree"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Codec converts trees to and from their stored form.
type Codec struct {
	Name      string
	Marshal   func(*paramtree.Tree) ([]byte, error)
	Unmarshal func([]byte, *paramtree.Options) (*paramtree.Tree, error)
}

var (
	// JSONCodec keeps key order and is the default.
	JSONCodec = Codec{
		Name:      "json",
		Marshal:   func(t *paramtree.Tree) ([]byte, error) { return t.MarshalJSON() },
		Unmarshal: paramtree.FromJSON,
	}

	// YAMLCodec keeps key order.
	YAMLCodec = Codec{
		Name:      "yaml",
		Marshal:   func(t *paramtree.Tree) ([]byte, error) { return t.ToYAML() },
		Unmarshal: paramtree.FromYAML,
	}

	// ProtoCodec stores a google.protobuf.Value. Object keys come back sorted.
	ProtoCodec = Codec{
		Name:      "proto",
		Marshal:   marshalProto,
		Unmarshal: unmarshalProto,
	}
)

func marshalProto(t *paramtree.Tree) ([]byte, error) {
	v, err := t.ToProto()
	if err != nil {
		return nil, err
	}
	// deterministic, so equal trees get equal links
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func unmarshalProto(b []byte, opts *paramtree.Options) (*paramtree.Tree, error) {
	var v structpb.Value
	err := proto.Unmarshal(b, &v)
	if err != nil {
		return nil, fmt.Errorf("unmarshal proto: %w", err)
	}
	return paramtree.FromProto(&v, opts)
}

// CodecByName returns the codec called json, yaml or proto.
func CodecByName(name string) (*Codec, error) {
	for _, c := range []*Codec{&JSONCodec, &YAMLCodec, &ProtoCodec} {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

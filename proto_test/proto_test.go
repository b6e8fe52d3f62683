package proto_test

import (
	"testing"

	"github.com/jrhy/paramtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func buildTree(t *testing.T) *paramtree.Tree {
	t.Helper()
	tree := paramtree.New(nil)
	require.NoError(t, tree.Set("name", "grid"))
	require.NoError(t, tree.Set("enabled", true))
	require.NoError(t, tree.Set("nothing", nil))
	require.NoError(t, tree.Set("rows", [][]int{{0, 0, 0}, {0, 1, 2}, {0, 2, 4}}))
	return tree
}

func TestToProtoShape(t *testing.T) {
	tree := buildTree(t)
	v, err := tree.ToProto()
	require.NoError(t, err)

	fields := v.GetStructValue().GetFields()
	require.Len(t, fields, 4)
	assert.Equal(t, "grid", fields["name"].GetStringValue())
	assert.True(t, fields["enabled"].GetBoolValue())
	_, isNull := fields["nothing"].GetKind().(*structpb.Value_NullValue)
	assert.True(t, isNull)

	rows := fields["rows"].GetListValue().GetValues()
	require.Len(t, rows, 3)
	assert.Equal(t, []interface{}{0.0, 2.0, 4.0}, rows[2].GetListValue().AsSlice())
}

func TestProtoWireRoundTrip(t *testing.T) {
	tree := buildTree(t)
	v, err := tree.ToProto()
	require.NoError(t, err)
	b, err := proto.Marshal(v)
	require.NoError(t, err)

	var decoded structpb.Value
	require.NoError(t, proto.Unmarshal(b, &decoded))
	again, err := paramtree.FromProto(&decoded, nil)
	require.NoError(t, err)

	// struct fields come back sorted
	assert.Equal(t, []string{"enabled", "name", "nothing", "rows"}, again.ToPlain().Keys())
	assert.Equal(t, 4, again.Get("rows.2.2", nil))
	assert.Equal(t, "grid", again.Get("name", nil))
	assert.True(t, again.HasKey("nothing"))
	assert.Equal(t, tree.Count(), again.Count())
}

func TestFromProtoList(t *testing.T) {
	v, err := structpb.NewValue([]interface{}{"a", 1.5, map[string]interface{}{"k": "v"}})
	require.NoError(t, err)
	tree, err := paramtree.FromProto(v, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2.k"}, tree.Keys())
	assert.Equal(t, 1.5, tree.Get("1", nil))
}

func TestFromProtoScalar(t *testing.T) {
	_, err := paramtree.FromProto(structpb.NewStringValue("x"), nil)
	require.ErrorIs(t, err, paramtree.ErrInvalidArgument)
}

func TestToProtoUnsupported(t *testing.T) {
	tree := paramtree.New(nil)
	require.NoError(t, tree.Set("name", "\xff\xfe"))
	_, err := tree.ToProto()
	require.Error(t, err)
}

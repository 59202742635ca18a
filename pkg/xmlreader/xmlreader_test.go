package xmlreader

import (
	"testing"

	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repeating = map[string]bool{"LineItem": true, "FGMDetail": true}

func TestDecodePreservesLeadingZeros(t *testing.T) {
	xml := []byte(`<Department Code="001"><Name>Tobacco</Name></Department>`)
	root, err := Decode(xml, repeating)
	require.NoError(t, err)

	code, ok := root.Attr("Code")
	require.True(t, ok)
	assert.Equal(t, "001", code)

	name := root.Child("Name")
	require.NotNil(t, name)
	assert.Equal(t, "Tobacco", name.Text)
}

func TestDecodeAlwaysMaterializesRepeatingElements(t *testing.T) {
	single := []byte(`<Transaction><LineItem lineNumber="1"/></Transaction>`)
	root, err := Decode(single, repeating)
	require.NoError(t, err)

	lines := root.Repeated("LineItem")
	assert.Len(t, lines, 1)

	many := []byte(`<Transaction><LineItem lineNumber="1"/><LineItem lineNumber="2"/></Transaction>`)
	root2, err := Decode(many, repeating)
	require.NoError(t, err)
	assert.Len(t, root2.Repeated("LineItem"), 2)
}

func TestDecodeRejectsDoctype(t *testing.T) {
	withDoctype := []byte(`<!DOCTYPE foo [<!ENTITY xxe SYSTEM "file:///etc/passwd">]><Department/>`)
	_, err := Decode(withDoctype, repeating)
	require.Error(t, err)
	assert.True(t, naxmlerr.Is(err, naxmlerr.CodeInvalidXML))
}

func TestDecodeMalformedXMLReportsPosition(t *testing.T) {
	malformed := []byte("<Department>\n  <Name>Tobacco</Department>")
	_, err := Decode(malformed, repeating)
	require.Error(t, err)
	assert.True(t, naxmlerr.Is(err, naxmlerr.CodeInvalidXML))
	assert.Contains(t, err.Error(), "line")
}

func TestBoolCoercion(t *testing.T) {
	v, ok := Bool("Y")
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = Bool("N")
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = Bool("maybe")
	assert.False(t, ok)
}

func TestAttrOrChildTextToleratesIDSuffixVariants(t *testing.T) {
	byAttr := []byte(`<LineItem itemCode="123" departmentId="5"/>`)
	root, err := Decode(byAttr, repeating)
	require.NoError(t, err)
	v, ok := root.AttrOrChildText("departmentID", "departmentId")
	require.True(t, ok)
	assert.Equal(t, "5", v)

	byChild := []byte(`<Department><Code>7</Code></Department>`)
	root2, err := Decode(byChild, repeating)
	require.NoError(t, err)
	v2, ok := root2.AttrOrChildText("Code", "@Code")
	require.True(t, ok)
	assert.Equal(t, "7", v2)
}

package adapter

import (
	"testing"

	"github.com/cuemby/naxml-ingest/pkg/naxml"
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMatchesVendorPrefixes(t *testing.T) {
	layout := LayoutFor(types.POSTypeGilbarcoPassport)

	cases := []struct {
		name string
		want naxml.DocumentType
	}{
		{"PJR20260109.xml", naxml.DocPOSJournal},
		{"pjr_sale_lower.xml", naxml.DocPOSJournal},
		{"FGM20260109.xml", naxml.DocFuelGradeMovement},
		{"DeptMaint_Full.xml", naxml.DocDepartmentMaintenance},
		{"Ack_20260109.xml", naxml.DocAcknowledgment},
		{"Export_Ack.xml", naxml.DocAcknowledgment},
	}
	for _, tc := range cases {
		got, ok := layout.Classify(tc.name)
		require.True(t, ok, "expected %s to classify", tc.name)
		assert.Equal(t, tc.want, got)
	}
}

func TestClassifyRejectsUnmatchedFilename(t *testing.T) {
	layout := LayoutFor(types.POSTypeGilbarcoPassport)
	_, ok := layout.Classify("readme.txt")
	assert.False(t, ok)
}

func TestGlobPatternIsAnchoredAtBothEnds(t *testing.T) {
	re := globToRegex("PJR*.xml")
	assert.True(t, re.MatchString("PJR123.xml"))
	assert.False(t, re.MatchString("PJR123.xml.bak"))
}

func TestResolvePathRejectsTraversal(t *testing.T) {
	_, err := ResolvePath("/data/store1", "../../etc/passwd")
	require.Error(t, err)
	assert.True(t, naxmlerr.Is(err, naxmlerr.CodePathTraversal))
}

func TestResolvePathAllowsSubdirectory(t *testing.T) {
	got, err := ResolvePath("/data/store1", "BOOutbox/Processed")
	require.NoError(t, err)
	assert.Equal(t, "/data/store1/BOOutbox/Processed", got)
}

func TestResolvePathsAppliesOverridesAndDefaults(t *testing.T) {
	integration := &types.POSIntegration{
		POSType:      types.POSTypeVerifoneRuby2,
		ExchangeRoot: "/data/store1",
		ArchivePath:  "Out/Archived",
	}
	paths, err := ResolvePaths(integration)
	require.NoError(t, err)
	assert.Equal(t, "/data/store1/In", paths.Inbox)
	assert.Equal(t, "/data/store1/Out", paths.Outbox)
	assert.Equal(t, "/data/store1/Out/Archived", paths.Archive)
	assert.Equal(t, "/data/store1/Out/Error", paths.Error)
}

package naxml

import (
	"os"
	"testing"

	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

func TestParseFGMDayClose(t *testing.T) {
	result, err := Parse(readFixture(t, "fgm_day_close.xml"))
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	fgm, ok := result.Document.(*FuelGradeMovement)
	require.True(t, ok)
	assert.Equal(t, 2, fgm.Header.PrimaryPeriod)
	require.Len(t, fgm.Details, 2)
	assert.Equal(t, "001", fgm.Details[0].FuelGradeID, "leading zero must survive parsing")
	require.NotNil(t, fgm.Details[0].Tender)
	assert.Equal(t, 120.5, fgm.Details[0].Tender.Totals.SalesVolume)
	assert.Equal(t, "cash", fgm.Details[0].Tender.TenderCode)
}

func TestParseFGMRejectsNegativeVolume(t *testing.T) {
	_, err := Parse(readFixture(t, "fgm_negative_volume.xml"))
	require.Error(t, err)
	assert.True(t, naxmlerr.Is(err, naxmlerr.CodeFGMInvalidSalesVolume))
}

func TestParseFPMMeterReading(t *testing.T) {
	result, err := Parse(readFixture(t, "fpm_meter_reading.xml"))
	require.NoError(t, err)

	fpm, ok := result.Document.(*FuelProductMovement)
	require.True(t, ok)
	require.Len(t, fpm.Details, 1)
	require.Len(t, fpm.Details[0].Rows, 1)
	assert.Equal(t, "01-1", fpm.Details[0].Rows[0].FuelPositionID)
	assert.Equal(t, 10452.300, fpm.Details[0].Rows[0].CumulativeVolume)
}

func TestParseFPMRejectsMissingVolume(t *testing.T) {
	_, err := Parse(readFixture(t, "fpm_missing_volume.xml"))
	require.Error(t, err)
	assert.True(t, naxmlerr.Is(err, naxmlerr.CodeFPMMissingVolume))
}

func TestParseDepartmentMaintenanceFullPreservesCodes(t *testing.T) {
	result, err := Parse(readFixture(t, "dept_maint_full.xml"))
	require.NoError(t, err)

	doc, ok := result.Document.(*MaintenanceDocument)
	require.True(t, ok)
	assert.Equal(t, MaintenanceFull, doc.Header.Kind)
	require.Len(t, doc.Entities, 2)
	assert.Equal(t, "010", doc.Entities[0].Code)
	require.NotNil(t, doc.Entities[0].IsTaxable)
	assert.False(t, *doc.Entities[0].IsTaxable)
}

func TestParsePJRSale(t *testing.T) {
	result, err := Parse(readFixture(t, "pjr_sale.xml"))
	require.NoError(t, err)

	doc, ok := result.Document.(*TransactionDocument)
	require.True(t, ok)
	assert.Equal(t, DocPOSJournal, doc.DocumentType())
	assert.Equal(t, "99001", doc.Header.POSTransactionID)
	require.Len(t, doc.LineItems, 1)
	assert.Equal(t, 2.0, doc.LineItems[0].Quantity)
	require.Len(t, doc.Tenders, 1)
	assert.Equal(t, 3.0, doc.Totals.GrandTotal)
}

func TestParseUnknownRootFails(t *testing.T) {
	_, err := Parse(readFixture(t, "unknown_root.xml"))
	require.Error(t, err)
	assert.True(t, naxmlerr.Is(err, naxmlerr.CodeUnknownDocumentType))
}

func TestParseUnsupportedVersionWarnsButProceeds(t *testing.T) {
	xml := []byte(`<DepartmentMaintenance version="9.9"><StoreID>1</StoreID></DepartmentMaintenance>`)
	result, err := Parse(xml)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "9.9")
	assert.Equal(t, "3.4", result.Document.Version())
}

package soap

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

func parseFragment(t *testing.T, fragment string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(fragment))
	return doc.Root()
}

func TestMapElementCoercions(t *testing.T) {
	elem := parseFragment(t, `
<Flight>
  <FlightId>RQ-401</FlightId>
  <AdultFare>5000</AdultFare>
  <Seats>42</Seats>
  <FlightDate>15-Mar-2025</FlightDate>
  <DepartureTime>07:30</DepartureTime>
</Flight>`)

	record, err := MapElement(elem, []Field{
		{Out: "flight_id", Names: []string{"FlightId", "FlightID"}, Kind: String, Required: true},
		{Out: "adult_fare", Names: []string{"AdultFare"}, Kind: Float},
		{Out: "seats", Names: []string{"Seats"}, Kind: Int},
		{Out: "flight_date", Names: []string{"FlightDate"}, Kind: Date},
		{Out: "departure_time", Names: []string{"DepartureTime"}, Kind: Clock},
	})
	require.NoError(t, err)

	assert.Equal(t, "RQ-401", record.String("flight_id"))
	assert.Equal(t, 5000.0, record.Float("adult_fare"))
	assert.Equal(t, 42, record.Int("seats"))
	assert.Equal(t, "2025-03-15", record.String("flight_date"))
	assert.Equal(t, "07:30", record.String("departure_time"))
}

func TestMapElementAlternateNames(t *testing.T) {
	// The backend spells some element names inconsistently across methods.
	elem := parseFragment(t, `<PNRDetail><PNRNO>PNR001</PNRNO><FlightID>123</FlightID></PNRDetail>`)

	record, err := MapElement(elem, []Field{
		{Out: "pnr_no", Names: []string{"PNRNo", "PNRNO"}, Kind: String, Required: true},
		{Out: "flight_id", Names: []string{"FlightId", "FlightID"}, Kind: String},
	})
	require.NoError(t, err)
	assert.Equal(t, "PNR001", record.String("pnr_no"))
	assert.Equal(t, "123", record.String("flight_id"))
}

func TestMapElementMissingOptionalDefaultsToZero(t *testing.T) {
	elem := parseFragment(t, `<Flight><ChildFare>2500</ChildFare></Flight>`)

	record, err := MapElement(elem, []Field{
		{Out: "child_fare", Names: []string{"ChildFare"}, Kind: Float},
		{Out: "child_tax_adjustment", Names: []string{"ChildTaxAdjustment"}, Kind: Float},
		{Out: "child_commission", Names: []string{"ChildCommission"}, Kind: Float},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, record.Float("child_tax_adjustment"))
	assert.Equal(t, 0.0, record.Float("child_commission"))
}

func TestMapElementGarbageNumericIsMappingError(t *testing.T) {
	// Present-but-garbage is distinct from missing: it errors.
	elem := parseFragment(t, `<Flight><Tax>N/A</Tax></Flight>`)

	_, err := MapElement(elem, []Field{
		{Out: "tax", Names: []string{"Tax"}, Kind: Float},
	})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeMapping))
}

func TestMapElementMissingRequiredIsMappingError(t *testing.T) {
	elem := parseFragment(t, `<PNRDetail></PNRDetail>`)

	_, err := MapElement(elem, []Field{
		{Out: "pnr_no", Names: []string{"PNRNo", "PNRNO"}, Kind: String, Required: true},
	})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeMapping))
}

func TestMapListPreservesBackendOrder(t *testing.T) {
	elem := parseFragment(t, `
<FlightSector>
  <Sector><SectorCode>KTM</SectorCode><SectorName>KATHMANDU</SectorName></Sector>
  <Sector><SectorCode>PKR</SectorCode><SectorName>POKHARA</SectorName></Sector>
  <Sector><SectorCode>BWA</SectorCode><SectorName>BHAIRAHAWA</SectorName></Sector>
</FlightSector>`)

	records, err := MapList(elem, "Sector", []Field{
		{Out: "sector_code", Names: []string{"SectorCode"}, Kind: String, Required: true},
		{Out: "sector_name", Names: []string{"SectorName"}, Kind: String},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "KTM", records[0].String("sector_code"))
	assert.Equal(t, "PKR", records[1].String("sector_code"))
	assert.Equal(t, "BWA", records[2].String("sector_code"))
}

package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

const sectorEnvelope = `
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"
xmlns:book="http://booking.us.org/">
    <soapenv:Body>
        <book:SectorCodeResponse>
            <book:return><![CDATA[
                <FlightSector>
                    <Sector>
                        <SectorCode>KTM</SectorCode>
                        <SectorName>KATHMANDU</SectorName>
                    </Sector>
                    <Sector>
                        <SectorCode>PKR</SectorCode>
                        <SectorName>POKHARA</SectorName>
                    </Sector>
                </FlightSector>
            ]]></book:return>
        </book:SectorCodeResponse>
    </soapenv:Body>
</soapenv:Envelope>
`

func TestExtractReturnCDATADoubleParse(t *testing.T) {
	elem, err := ExtractReturn(sectorEnvelope, "return")
	require.NoError(t, err)
	require.NotNil(t, elem)

	// The returned node is the payload root, equal to parsing the fragment
	// directly.
	assert.Equal(t, "FlightSector", elem.Tag)

	sectors := elem.ChildElements()
	require.Len(t, sectors, 2)
	code, ok := ChildText(sectors[0], "SectorCode")
	require.True(t, ok)
	assert.Equal(t, "KTM", code)
}

func TestExtractReturnRawNestedXML(t *testing.T) {
	// Same payload escaped as text instead of CDATA-wrapped.
	envelope := `
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <PNRDetailResponse>
      <return>  &lt;PNRDetail&gt;&lt;PNRNO&gt;PNR001&lt;/PNRNO&gt;&lt;/PNRDetail&gt;  </return>
    </PNRDetailResponse>
  </soapenv:Body>
</soapenv:Envelope>`

	elem, err := ExtractReturn(envelope, "return")
	require.NoError(t, err)
	require.NotNil(t, elem)
	assert.Equal(t, "PNRDetail", elem.Tag)
	pnr, ok := ChildText(elem, "PNRNO")
	require.True(t, ok)
	assert.Equal(t, "PNR001", pnr)
}

func TestExtractReturnScalarPayload(t *testing.T) {
	envelope := `
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <PNRDetailResponse>
      <return>https://booking.example.com/pnr/PNR001</return>
    </PNRDetailResponse>
  </soapenv:Body>
</soapenv:Envelope>`

	elem, err := ExtractReturn(envelope, "return")
	require.NoError(t, err)
	require.NotNil(t, elem)
	// Scalar payloads come back as the element itself.
	assert.Equal(t, "return", elem.Tag)
	assert.Equal(t, "https://booking.example.com/pnr/PNR001", elem.Text())
}

func TestExtractReturnAbsentElement(t *testing.T) {
	envelope := `
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <SectorCodeResponse/>
  </soapenv:Body>
</soapenv:Envelope>`

	elem, err := ExtractReturn(envelope, "return")
	// Absent is "no data", not an error.
	require.NoError(t, err)
	assert.Nil(t, elem)
}

func TestExtractReturnMalformedEnvelope(t *testing.T) {
	_, err := ExtractReturn("this is not xml <<<", "return")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeParse))
}

func TestExtractReturnMalformedPayload(t *testing.T) {
	envelope := `
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <SectorCodeResponse>
      <return><![CDATA[ <FlightSector><Sector> ]]></return>
    </SectorCodeResponse>
  </soapenv:Body>
</soapenv:Envelope>`

	_, err := ExtractReturn(envelope, "return")
	// A payload parse failure propagates, never swallowed.
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeParse))
}

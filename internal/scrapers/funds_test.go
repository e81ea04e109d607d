package scrapers

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insiderwire/internal/tickers"
)

func newTestFundScraper() *FundScraper {
	return NewFunds("test-agent test@example.com", tickers.Default())
}

func TestIdentifyFund(t *testing.T) {
	s := newTestFundScraper()

	name, manager, famous := s.identifyFund("13F-HR - BERKSHIRE HATHAWAY INC (0001067983) (Filer)")
	assert.True(t, famous)
	assert.Equal(t, "BERKSHIRE HATHAWAY", name)
	assert.Equal(t, "Warren Buffett", manager)

	name, manager, famous = s.identifyFund("SOMEWHERE CAPITAL LLC (0001234567) - Quarterly report")
	assert.False(t, famous)
	assert.Equal(t, "SOMEWHERE CAPITAL LLC", name)
	assert.Empty(t, manager)
}

const infoTableFixture = `<?xml version="1.0"?>
<informationTable xmlns="http://www.sec.gov/edgar/document/thirteenf/informationtable">
  <infoTable>
    <nameOfIssuer>APPLE INC</nameOfIssuer>
    <titleOfClass>COM</titleOfClass>
    <cusip>037833100</cusip>
    <value>150000000</value>
    <shrsOrPrnAmt>
      <sshPrnamt>900000000</sshPrnamt>
      <sshPrnamtType>SH</sshPrnamtType>
    </shrsOrPrnAmt>
  </infoTable>
  <infoTable>
    <nameOfIssuer>BANK OF AMERICA CORP</nameOfIssuer>
    <titleOfClass>COM</titleOfClass>
    <cusip>060505104</cusip>
    <value>30000000</value>
    <shrsOrPrnAmt>
      <sshPrnamt>1000000000</sshPrnamt>
      <sshPrnamtType>SH</sshPrnamtType>
    </shrsOrPrnAmt>
  </infoTable>
</informationTable>`

func TestInfoTableDecodes(t *testing.T) {
	var table infoTable
	require.NoError(t, xml.Unmarshal([]byte(infoTableFixture), &table))

	require.Len(t, table.Entries, 2)
	assert.Equal(t, "APPLE INC", table.Entries[0].NameOfIssuer)
	assert.EqualValues(t, 150_000_000, table.Entries[0].Value)
	assert.EqualValues(t, 900_000_000, table.Entries[0].Shares.Amount)
	assert.Equal(t, "SH", table.Entries[0].Shares.Type)
	assert.Equal(t, "060505104", table.Entries[1].CUSIP)
}

const indexPageFixture = `<html><body>
<table class="tableFile" summary="Document Format Files">
<tr><th>Seq</th><th>Description</th><th>Document</th><th>Type</th><th>Size</th></tr>
<tr>
  <td>1</td><td>13F-HR</td>
  <td><a href="/Archives/edgar/data/1067983/primary_doc.xml">primary_doc.xml</a></td>
  <td>13F-HR</td><td>4000</td>
</tr>
<tr>
  <td>2</td><td>INFORMATION TABLE</td>
  <td><a href="/Archives/edgar/data/1067983/infotable.xml">infotable.xml</a></td>
  <td>INFORMATION TABLE</td><td>120000</td>
</tr>
</table>
</body></html>`

func TestFindInfoTableLink(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(indexPageFixture))
	require.NoError(t, err)

	url := findInfoTableLink(doc)
	assert.Equal(t, secBaseURL+"/Archives/edgar/data/1067983/infotable.xml", url)
}

func TestFindInfoTableLinkMissing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>no table</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, findInfoTableLink(doc))
}

// Package soap implements the translation layer between the gateway and the
// airline reservation backend: envelope construction, transport, response
// extraction (including the backend's XML-embedded-in-XML payloads), and a
// declarative field-mapping engine.
package soap

import (
	"bytes"
	"strings"
)

const (
	// BookingNamespace is the backend's method namespace.
	BookingNamespace = "http://booking.us.org/"
	// EnvelopeNamespace is the SOAP 1.1 envelope namespace.
	EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
)

// Param is one named request parameter. Params are rendered in the order
// given; the backend is positional about some of its argument lists.
type Param struct {
	Name  string
	Value string
	// CDATA embeds the value as a CDATA section instead of escaped text.
	// Used for the passenger list fragment, which the backend expects as
	// XML-as-text.
	CDATA bool
}

// BuildEnvelope renders a SOAP 1.1 request envelope with one body element
// named after the method and one child element per parameter. Pure and total
// over well-formed string inputs.
func BuildEnvelope(method string, params []Param) string {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString(`<soapenv:Envelope xmlns:soapenv="` + EnvelopeNamespace + `" xmlns:book="` + BookingNamespace + `">`)
	buf.WriteString(`<soapenv:Header/>`)
	buf.WriteString(`<soapenv:Body>`)
	buf.WriteString(`<book:` + method + `>`)
	for _, p := range params {
		buf.WriteString(`<` + p.Name + `>`)
		if p.CDATA {
			buf.WriteString(`<![CDATA[` + p.Value + `]]>`)
		} else {
			buf.WriteString(EscapeXML(p.Value))
		}
		buf.WriteString(`</` + p.Name + `>`)
	}
	buf.WriteString(`</book:` + method + `>`)
	buf.WriteString(`</soapenv:Body>`)
	buf.WriteString(`</soapenv:Envelope>`)
	return buf.String()
}

// EscapeXML escapes special XML characters. Values only ever appear in
// element text here, but quotes are escaped too so the helper stays safe for
// attribute use.
func EscapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

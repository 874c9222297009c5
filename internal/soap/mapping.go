package soap

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// Kind selects the coercion applied to a backend field's text.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Date
	Clock
)

// Field is one row of a per-operation mapping table. Every backend field
// consumed is named here; unmapped backend fields are dropped.
//
// The backend is inconsistent about element name spelling (PNRNO vs PNRNo,
// FlightId vs FlightID), so a field may accept several names; the first one
// found wins.
type Field struct {
	Out      string
	Names    []string
	Kind     Kind
	Required bool
}

// Record is one mapped backend record. Values are already coerced: string,
// int, or float64. Date and Clock kinds normalize to canonical strings.
type Record map[string]any

// String returns the named value as a string, or "" when absent.
func (r Record) String(key string) string {
	v, _ := r[key].(string)
	return v
}

// Int returns the named value as an int, or 0 when absent.
func (r Record) Int(key string) int {
	v, _ := r[key].(int)
	return v
}

// Float returns the named value as a float64, or 0 when absent.
func (r Record) Float(key string) float64 {
	v, _ := r[key].(float64)
	return v
}

// Backend date and time spellings observed in responses, most common first.
var (
	dateLayouts  = []string{"2006-01-02", "02-Jan-2006", "01/02/2006", "20060102"}
	clockLayouts = []string{"15:04", "15:04:05", "3:04 PM"}
)

// MapElement projects one backend element through a mapping table. A field
// that is absent defaults to its kind's zero value unless required; a field
// that is present but not coercible is a mapping error, never a silent
// default.
func MapElement(elem *etree.Element, fields []Field) (Record, error) {
	record := make(Record, len(fields))
	for _, f := range fields {
		text, found := lookup(elem, f.Names)
		if !found || text == "" {
			if f.Required {
				return nil, dErrors.New(dErrors.CodeMapping, "required backend field absent: "+f.Names[0])
			}
			record[f.Out] = zeroValue(f.Kind)
			continue
		}
		value, err := coerce(text, f.Kind)
		if err != nil {
			return nil, dErrors.Wrap(dErrors.CodeMapping, "backend field "+f.Names[0]+" not coercible", err)
		}
		record[f.Out] = value
	}
	return record, nil
}

// MapList projects every child element with the given local name, preserving
// backend order.
func MapList(parent *etree.Element, childName string, fields []Field) ([]Record, error) {
	if parent == nil {
		return nil, nil
	}
	var records []Record
	for _, child := range parent.ChildElements() {
		if child.Tag != childName {
			continue
		}
		record, err := MapElement(child, fields)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func lookup(elem *etree.Element, names []string) (string, bool) {
	for _, name := range names {
		if text, ok := ChildText(elem, name); ok {
			return text, true
		}
	}
	return "", false
}

func zeroValue(kind Kind) any {
	switch kind {
	case Int:
		return 0
	case Float:
		return float64(0)
	default:
		return ""
	}
}

func coerce(text string, kind Kind) (any, error) {
	switch kind {
	case Int:
		return strconv.Atoi(text)
	case Float:
		return strconv.ParseFloat(text, 64)
	case Date:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t.Format("2006-01-02"), nil
			}
		}
		return nil, dErrors.New(dErrors.CodeMapping, "unrecognized date format: "+text)
	case Clock:
		for _, layout := range clockLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t.Format("15:04"), nil
			}
		}
		return nil, dErrors.New(dErrors.CodeMapping, "unrecognized time format: "+text)
	default:
		return text, nil
	}
}

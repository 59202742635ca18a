package naxml

import (
	"strconv"
	"strings"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/xmlreader"
)

// naxmlTimeLayouts covers the timestamp conventions observed across
// Gilbarco and Verifone exports: a full NAXML datetime, a bare date, and
// an ISO instant for vendors that already emit one.
var naxmlTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"20060102150405",
	"20060102",
}

func parseNAXMLTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range naxmlTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func textOf(n *xmlreader.Node, names ...string) string {
	if n == nil {
		return ""
	}
	v, _ := n.AttrOrChildText(names...)
	return v
}

func requireText(n *xmlreader.Node, code naxmlerr.Code, field string, names ...string) (string, error) {
	v, ok := n.AttrOrChildText(names...)
	if !ok || v == "" {
		return "", naxmlerr.Newf(code, "missing required field %q", field)
	}
	return v, nil
}

func requireFloat(n *xmlreader.Node, code naxmlerr.Code, field string, names ...string) (float64, error) {
	raw, ok := n.AttrOrChildText(names...)
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, naxmlerr.Newf(code, "missing required field %q", field)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, naxmlerr.Newf(code, "field %q is not a valid number: %q", field, raw)
	}
	return v, nil
}

func boolOf(n *xmlreader.Node, names ...string) *bool {
	raw := textOf(n, names...)
	if raw == "" {
		return nil
	}
	v, ok := xmlreader.Bool(raw)
	if !ok {
		return nil
	}
	return &v
}

package naxml

import "github.com/cuemby/naxml-ingest/pkg/xmlreader"

func buildAcknowledgment(n *xmlreader.Node, version string) (*Acknowledgment, error) {
	return &Acknowledgment{
		docMeta:              docMeta{Type: DocAcknowledgment, Ver: version},
		ReferencedExchangeID: textOf(n, "ExchangeID", "ExchangeId"),
		ReferencedFileName:   textOf(n, "FileName"),
		Status:               textOf(n, "Status"),
		Message:              textOf(n, "Message"),
	}, nil
}

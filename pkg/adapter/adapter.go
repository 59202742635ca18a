// Package adapter encodes vendor-specific filesystem conventions: exchange
// paths, filename classification, and path-traversal defense. It also
// declares the fixed capability interface the rest of the core dispatches
// through instead of doing runtime feature detection on the POS type.
package adapter

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cuemby/naxml-ingest/pkg/naxml"
	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
	"github.com/cuemby/naxml-ingest/pkg/types"
)

// globRule maps a filename glob pattern to the NAXML document type it
// classifies as.
type globRule struct {
	pattern string
	regex   *regexp.Regexp
	docType naxml.DocumentType
}

// Layout is a vendor's filesystem and classification convention.
type Layout struct {
	InboxSubpath   string // core -> POS (outbound)
	OutboxSubpath  string // POS -> core (inbound)
	ArchiveSubpath string
	ErrorSubpath   string
	Rules          []globRule
}

func compileRule(pattern string, docType naxml.DocumentType) globRule {
	return globRule{pattern: pattern, regex: globToRegex(pattern), docType: docType}
}

// globToRegex implements the spec's glob->regex contract: escape every
// regex metacharacter except * and ?, expand * -> .* and ? -> ., anchor
// both ends, match case-insensitively.
func globToRegex(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			if strings.ContainsRune(`.+()|[]{}^$\`, r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// Classify returns the document type the first matching glob rule
// declares for fileName, and false if no rule matches.
func (l Layout) Classify(fileName string) (naxml.DocumentType, bool) {
	for _, rule := range l.Rules {
		if rule.regex.MatchString(fileName) {
			return rule.docType, true
		}
	}
	return "", false
}

// gilbarcoPassportLayout is the Gilbarco Passport XMLGateway convention.
var gilbarcoPassportLayout = Layout{
	InboxSubpath:   "BOInbox",
	OutboxSubpath:  "BOOutbox",
	ArchiveSubpath: "BOOutbox/Processed",
	ErrorSubpath:   "BOOutbox/Error",
	Rules: []globRule{
		compileRule("PJR*.xml", naxml.DocPOSJournal),
		compileRule("FGM*.xml", naxml.DocFuelGradeMovement),
		compileRule("FPM*.xml", naxml.DocFuelProductMovement),
		compileRule("MSM*.xml", naxml.DocMiscSummaryMovement),
		compileRule("TLM*.xml", naxml.DocTaxLevelMovement),
		compileRule("MCM*.xml", naxml.DocMerchandiseCodeMovement),
		compileRule("ISM*.xml", naxml.DocItemSalesMovement),
		compileRule("TPM*.xml", naxml.DocTankProductMovement),
		compileRule("DeptMaint*.xml", naxml.DocDepartmentMaintenance),
		compileRule("TenderMaint*.xml", naxml.DocTenderMaintenance),
		compileRule("TaxMaint*.xml", naxml.DocTaxRateMaintenance),
		compileRule("EmpMaint*.xml", naxml.DocEmployeeMaintenance),
		compileRule("PriceBook*.xml", naxml.DocPriceBookMaintenance),
		compileRule("Ack*.xml", naxml.DocAcknowledgment),
		compileRule("*_Ack.xml", naxml.DocAcknowledgment),
	},
}

// verifoneRuby2Layout is the Verifone Ruby2 convention: In/Out folders,
// otherwise the same glob table (Verifone additionally accepts upper-case
// variants, which the case-insensitive glob regex already covers).
var verifoneRuby2Layout = Layout{
	InboxSubpath:   "In",
	OutboxSubpath:  "Out",
	ArchiveSubpath: "Out/Processed",
	ErrorSubpath:   "Out/Error",
	Rules:          gilbarcoPassportLayout.Rules,
}

// LayoutFor returns the filesystem convention for a POS type. Generic
// NAXML integrations default to the Gilbarco layout, the more common of
// the two conventions in the field.
func LayoutFor(posType types.POSType) Layout {
	switch posType {
	case types.POSTypeVerifoneRuby2:
		return verifoneRuby2Layout
	default:
		return gilbarcoPassportLayout
	}
}

// ResolvePath joins base and a relative override, defending against path
// traversal: the normalized result must remain prefixed by the normalized
// base. An empty override falls back to base itself.
func ResolvePath(base, override string) (string, error) {
	if override == "" {
		return filepath.Clean(base), nil
	}
	var candidate string
	if filepath.IsAbs(override) {
		candidate = override
	} else {
		candidate = filepath.Join(base, override)
	}
	normBase := filepath.Clean(base)
	normCandidate := filepath.Clean(candidate)
	if normCandidate != normBase && !strings.HasPrefix(normCandidate, normBase+string(filepath.Separator)) {
		return "", naxmlerr.Newf(naxmlerr.CodePathTraversal, "path %q escapes base %q", override, base)
	}
	return normCandidate, nil
}

// Paths is the set of fully-resolved filesystem locations for one
// integration, computed once from its POSIntegration row.
type Paths struct {
	ExchangeRoot string
	Inbox        string
	Outbox       string
	Archive      string
	Error        string
}

// ResolvePaths computes Paths for an integration, applying per-integration
// overrides (ExportPath/ImportPath/ArchivePath/ErrorPath) over the
// vendor's default layout, with path-traversal defense on every one.
func ResolvePaths(integration *types.POSIntegration) (*Paths, error) {
	layout := LayoutFor(integration.POSType)
	root := filepath.Clean(integration.ExchangeRoot)

	inboxOverride := integration.ExportPath
	if inboxOverride == "" {
		inboxOverride = layout.InboxSubpath
	}
	outboxOverride := integration.ImportPath
	if outboxOverride == "" {
		outboxOverride = layout.OutboxSubpath
	}
	archiveOverride := integration.ArchivePath
	if archiveOverride == "" {
		archiveOverride = layout.ArchiveSubpath
	}
	errorOverride := integration.ErrorPath
	if errorOverride == "" {
		errorOverride = layout.ErrorSubpath
	}

	inbox, err := ResolvePath(root, inboxOverride)
	if err != nil {
		return nil, err
	}
	outbox, err := ResolvePath(root, outboxOverride)
	if err != nil {
		return nil, err
	}
	archive, err := ResolvePath(root, archiveOverride)
	if err != nil {
		return nil, err
	}
	errDir, err := ResolvePath(root, errorOverride)
	if err != nil {
		return nil, err
	}

	return &Paths{ExchangeRoot: root, Inbox: inbox, Outbox: outbox, Archive: archive, Error: errDir}, nil
}

/*
Package naxml maps the generic tree pkg/xmlreader produces into the
typed document variants this core actually operates on: transactions,
the five maintenance dialects, the three movement-report dialects with a
defined projection contract (FGM/FPM/MSM), the four named for detection
only (TLM/MCM/ISM/TPM), and acknowledgments.

# Detection

The root element name is matched against a fixed marker table. The two
envelope roots, NAXML-MovementReport and NAXML-POSJournal, require one
level of recursion into their single recognized child to disambiguate
the real document type. An unrecognized root, or a MovementReport
envelope with no recognized inner child, fails with
naxmlerr.CodeUnknownDocumentType.

# Versioning

The root's version attribute is read as a string. 3.2, 3.4, and 4.0 are
supported as declared; any other value (or its absence) is parsed AS IF
it were 3.4, with a warning returned alongside the result rather than a
hard failure -- version drift does not stop ingestion.

# Typed output only

Every builder in this package returns one of the Document variants in
document.go. The generic xmlreader.Node tree is a construction detail:
no exported function in this package hands one back to a caller.
*/
package naxml

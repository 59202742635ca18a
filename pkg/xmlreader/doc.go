/*
Package xmlreader is the XXE-safe boundary between raw NAXML bytes and the
rest of this core. It has one job: turn a byte sequence into a generic
attributed tree, and nothing past this package ever touches encoding/xml
directly.

# Security contract

  - External entities and DTD subsets are never resolved; a DOCTYPE in the
    input is rejected outright rather than processed.
  - Parameter entities are never expanded.
  - Malformed XML fails with line and column reported.
  - No value is coerced to a number: department/tender/tax codes like
    "001" survive as strings. The only coercion this package performs is
    the Y/N -> bool helper, and only when a caller explicitly asks for it.

# Repeating elements

A dialect declares, up front, which child element names must always
materialize as an ordered slice -- LineItem, Tender, Tax, Department,
Item, Employee, TaxRate, ModifierCode, Error, and the FGM/FPM/MSM detail
names are among the standing set pkg/naxml passes in (naxml.RepeatingNames).
Every other child name is a single Node when it occurs once; when it
occurs more than once, the occurrences are kept in document order, Child
returns the first and Repeated returns them all.
*/
package xmlreader

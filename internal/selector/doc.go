// Package selector implements the selector engine: parsing the
// CSS-like query language defined in spec §4.B into an AST, and
// evaluating that AST against a tree snapshot to find matching
// indexed elements.
//
// Parsing never speculates on malformed input — it reports a parse
// error with the offending character offset. Evaluation never fails;
// it returns zero or more matches in accessibility-traversal order.
package selector

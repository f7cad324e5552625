// Package pagination holds the paging and sorting rules for list output.
//
// Two paging modes are supported and are mutually exclusive: offset based
// (--limit/--offset) and page based (--page/--page-size). Sorting takes a
// "field" or "field:order" expression.
package pagination

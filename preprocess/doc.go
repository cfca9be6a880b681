// Package preprocess prepares extracted pages for layout analysis.
//
// Extraction produces line boxes in the coordinate space of the source
// document. The layout tunables assume a page DefaultPageWidth units wide,
// so [Page] first rescales, then removes lines that carry no text, then
// widens page numbers:
//
//	prepared := preprocess.Page(page, preprocess.DefaultOptions())
//
// A widened page number spans the full text width, so the layout places it
// in a footer row of its own.
package preprocess

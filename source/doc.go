// Package source reads pages of text line boxes from extracted documents.
//
// Three inputs are supported, detected with the [format] package:
//
//   - line box dumps: JSON pages of {bbox, tblocks: [{lines: [{bbox, text}]}]}
//   - hOCR documents from an OCR engine
//   - PDF documents, whose text rows are split into line boxes
//
// Every reader returns [model.Page] values with y increasing downward:
//
//	pages, err := source.Open(ctx, "paper.pdf", source.DefaultOptions())
//	if err != nil {
//		return err
//	}
package source

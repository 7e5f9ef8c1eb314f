// Package htmlflow converts HTML into flow blocks ready for measurement
// and pagination.
//
// The [Converter] parses markup with golang.org/x/net/html and flattens
// the body into a block list: headings and paragraphs become paragraph
// blocks with styled runs, lists become indented paragraphs, tables
// become table blocks, and img elements become image blocks. Inline
// markup (b, strong, i, em, code, br) splits paragraph text into runs;
// everything else inline flows as plain text. Script, style, and other
// non-content elements are skipped.
//
// Block positions follow the engine's node arithmetic: an element costs
// 2 and text costs its rune count. The conversion mirrors the body as a
// [track.Node] tree in the same position space, so ins and del elements
// come out as [Document.Changes] spans the change-tracking package can
// map to visual positions.
//
// # Example
//
//	doc, err := htmlflow.ParseString("<h1>Title</h1><p>Body text.</p>")
//	if err != nil {
//		return err
//	}
//	// doc.Blocks goes through measurement and then pagination.
package htmlflow

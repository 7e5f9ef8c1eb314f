package paginate

import (
	"strconv"

	"github.com/tsawler/typeset/flow"
)

// ResolveTokens substitutes page-number and page-count text into the
// paragraph's runs and clears the token markers, so a second call on
// the same paragraph finds nothing to do. Values below 1 are clamped
// to 1. Page references are left for painters; all other run fields
// are preserved. Returns true when any run was resolved.
func ResolveTokens(p *flow.ParagraphBlock, pageNumber, totalPages int) bool {
	if p == nil {
		return false
	}
	modified := false
	for i := range p.Runs {
		text, ok := tokenText(p.Runs[i].Token, pageNumber, totalPages)
		if ok {
			p.Runs[i].Text = text
			p.Runs[i].Token = flow.TokenNone
			modified = true
		}
	}
	return modified
}

// ResolveLineTokens substitutes page numbers into laid-out line runs, so
// each page's fragments carry that page's own numbers. Lines that change
// get fresh run slices, resolved and cleared on the copy; the source
// measure keeps its markers for later passes. Returns true when any run
// was resolved.
func ResolveLineTokens(lines []flow.LineBox, pageNumber, totalPages int) bool {
	modified := false
	for li := range lines {
		cloned := false
		for ri := range lines[li].Runs {
			text, ok := tokenText(lines[li].Runs[ri].Token, pageNumber, totalPages)
			if !ok {
				continue
			}
			if !cloned {
				lines[li].Runs = append([]flow.LineRun(nil), lines[li].Runs...)
				cloned = true
			}
			lines[li].Runs[ri].Text = text
			lines[li].Runs[ri].Token = flow.TokenNone
			modified = true
		}
	}
	return modified
}

// tokenText returns the substitution text for a token, false for tokens
// that substitute nothing
func tokenText(t flow.Token, pageNumber, totalPages int) (string, bool) {
	switch t {
	case flow.TokenPageNumber:
		if pageNumber < 1 {
			pageNumber = 1
		}
		return strconv.Itoa(pageNumber), true
	case flow.TokenTotalPages:
		if totalPages < 1 {
			totalPages = 1
		}
		return strconv.Itoa(totalPages), true
	}
	return "", false
}

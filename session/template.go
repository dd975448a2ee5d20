package session

import "strings"

const documentHeader = `\documentclass[preview, border=5pt]{standalone}
\usepackage{amsmath}
\usepackage{amssymb}
\usepackage{graphicx}
\usepackage{xcolor}
\begin{document}
`

const documentFooter = `
\end{document}
`

// WrapDocument places snippet inside the fixed standalone preamble.
func WrapDocument(snippet string) string {
	var b strings.Builder
	b.Grow(len(documentHeader) + len(snippet) + len(documentFooter))
	b.WriteString(documentHeader)
	b.WriteString(snippet)
	b.WriteString(documentFooter)
	return b.String()
}

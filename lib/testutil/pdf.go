package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

func escapePdfString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	return strings.ReplaceAll(s, ")", `\)`)
}

// BuildPDF renders string rows as a one-page pdf with one text
// drawing operation per cell, columns 140pt apart and lines 20pt
// apart. good enough to exercise the table extraction path without
// shipping binary fixtures. stick to ascii cells, the builtin font
// carries no encoding table.
func BuildPDF(rows [][]string) []byte {
	var content strings.Builder
	y := 720.0
	for _, row := range rows {
		x := 72.0
		for _, cell := range row {
			if cell != "" {
				fmt.Fprintf(
					&content,
					"BT /F1 12 Tf %.1f %.1f Td (%s) Tj ET\n",
					x, y, escapePdfString(cell),
				)
			}
			x += 140
		}
		y -= 20
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(
		&buf,
		"trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefPos,
	)
	return buf.Bytes()
}

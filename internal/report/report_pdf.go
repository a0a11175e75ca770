package report

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// A4 landscape, satuan point.
const (
	pdfPageWidth  = 842.0
	pdfPageHeight = 595.0
	pdfMargin     = 40.0
	pdfRowHeight  = 18.0
	pdfFontSize   = 9.0
	pdfPadding    = 4.0
	pdfTitleSpace = 56.0
	pdfFooter     = 24.0
)

func encodePDF(t Table) ([]byte, error) {
	widths := columnWidths(t.Widths, len(t.Headers), pdfPageWidth-2*pdfMargin)
	pages := paginate(len(t.Rows))

	streams := make([]string, len(pages))
	for i, pg := range pages {
		streams[i] = pageStream(t, widths, pg, i+1, len(pages))
	}
	return assemblePDF(streams)
}

func rowsPerPage(first bool) int {
	top := pdfPageHeight - pdfMargin
	if first {
		top -= pdfTitleSpace
	}
	// dikurangi satu baris header tabel
	return int((top-pdfMargin-pdfFooter)/pdfRowHeight) - 1
}

// paginate mengembalikan rentang [start, end) baris per halaman; minimal satu halaman.
func paginate(total int) [][2]int {
	var pages [][2]int
	start := 0
	for first := true; first || start < total; first = false {
		end := start + rowsPerPage(first)
		if end > total {
			end = total
		}
		pages = append(pages, [2]int{start, end})
		start = end
	}
	return pages
}

func columnWidths(weights []float64, n int, total float64) []float64 {
	if len(weights) != n {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	out := make([]float64, n)
	for i, w := range weights {
		out[i] = total * w / sum
	}
	return out
}

func pageStream(t Table, widths []float64, rng [2]int, page, pages int) string {
	var b strings.Builder
	y := pdfPageHeight - pdfMargin

	if page == 1 {
		writeText(&b, "F2", 16, pdfMargin, y-16, "0 0 0", t.Title)
		if t.Subtitle != "" {
			writeText(&b, "F1", 10, pdfMargin, y-34, "0.4 0.4 0.4", t.Subtitle)
		}
		y -= pdfTitleSpace
	}

	tableWidth := pdfPageWidth - 2*pdfMargin
	y -= pdfRowHeight
	fmt.Fprintf(&b, "0.161 0.502 0.725 rg %.2f %.2f %.2f %.2f re f\n", pdfMargin, y, tableWidth, pdfRowHeight)
	writeRow(&b, "F2", "1 1 1", widths, y, t.Headers)

	for i, row := range t.Rows[rng[0]:rng[1]] {
		y -= pdfRowHeight
		if i%2 == 1 {
			fmt.Fprintf(&b, "0.96 0.96 0.96 rg %.2f %.2f %.2f %.2f re f\n", pdfMargin, y, tableWidth, pdfRowHeight)
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		writeRow(&b, "F1", "0 0 0", widths, y, cells)
	}

	footer := fmt.Sprintf("Halaman %d dari %d", page, pages)
	writeText(&b, "F1", 8, pdfPageWidth-pdfMargin-80, pdfMargin-10, "0.4 0.4 0.4", footer)
	return b.String()
}

func writeRow(b *strings.Builder, font, color string, widths []float64, y float64, cells []string) {
	x := pdfMargin
	for i, w := range widths {
		text := ""
		if i < len(cells) {
			text = fitText(cells[i], w-2*pdfPadding, pdfFontSize)
		}
		writeText(b, font, pdfFontSize, x+pdfPadding, y+6, color, text)
		x += w
	}
}

func writeText(b *strings.Builder, font string, size, x, y float64, color, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "BT /%s %.1f Tf %s rg %.2f %.2f Td (%s) Tj ET\n", font, size, color, x, y, pdfString(text))
}

// fitText memotong teks berdasarkan perkiraan lebar rata-rata glyph Helvetica.
func fitText(s string, width, size float64) string {
	limit := int(width / (size * 0.5))
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= 3 {
		return ""
	}
	r := []rune(s)
	return string(r[:limit-3]) + "..."
}

// pdfString meng-encode ke WinAnsi agar huruf non-ASCII tampil dengan font Type1 standar.
func pdfString(v string) string {
	enc, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).String(v)
	if err != nil {
		enc = v
	}
	return pdfEscape(enc)
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}

func assemblePDF(streams []string) ([]byte, error) {
	// 1 catalog, 2 pages, 3-4 font, lalu sepasang (page, content) per halaman
	kids := make([]string, len(streams))
	for i := range streams {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), len(streams)),
		"3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>\nendobj\n",
	}
	for i, stream := range streams {
		pageObj, contentObj := 5+2*i, 6+2*i
		objects = append(objects,
			fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.0f %.0f] /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>\nendobj\n",
				pageObj, pdfPageWidth, pdfPageHeight, contentObj),
			fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(stream), stream),
		)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

package gofpdf

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/jung-kurt/gofpdf"

	"wm-ferretero/go_backend/internal/domain/quotation"
	"wm-ferretero/go_backend/internal/domain/quotation/pdf"
)

// Business identity printed on every page.
const (
	businessTitle   = `ELECTROFERRETERO "W&M"`
	businessOwner   = "DE: MARIA LUZ MITMA TORRES"
	businessRUC     = "R.U.C. Nº 10215770635"
	businessAddress = "CALLE LOS SAUCES Mz. 38 LT. 12 - CHALA - CARAVELI - AREQUIPA"

	businessServices = "ALQUILER DE MAQUINARIA, VENTA DE AGREGADOS DE CONSTRUCCIÓN, CARPINTERÍA, " +
		"PREFABRICADOS, MATERIALES ELÉCTRICOS Y SERVICIOS GENERALES PARA: PROYECTOS CIVILES, " +
		"ELECTROMECÁNICOS, CARPINTERÍA Y SERVICIOS EN GENERAL, INSTALACIONES ELÉCTRICAS EN MEDIA " +
		"Y BAJA TENSIÓN, EN PLANTAS MINERAS, EN LOCALES COMERCIALES E INDUSTRIALES, COMUNICACIONES, " +
		"ILUMINACIÓN DE CAMPOS DEPORTIVOS, INSTALACIÓN DE TABLEROS ELÉCTRICOS DOMÉSTICOS E INDUSTRIALES"

	bankLine1 = "* Cta. Detraccion Banco de la Nación: 00615009040"
	bankLine2 = "* Cta. Banco de Credito: 194-20587879-0-35"
	bankLine3 = "* CCI. BCP: 00219412058787903595"
)

// Page geometry in millimetres, A4 portrait.
const (
	pageW = 210.0
	pageH = 297.0

	marginLeft  = 15.0
	marginRight = 195.0

	clientY        = 62.0
	clientTextX    = 40.0
	clientMaxWidth = 95.0
	clientLineH    = 5.0
	clientTableGap = 8.0

	// bottom reserve for the recurring footer block
	footerReserve = 60.0
	contentBottom = pageH - footerReserve

	tableHeaderH = 7.0
	tableRowH    = 7.0

	summaryGap   = 8.0
	summaryRowH  = 6.0
	summaryLabel = 165.0
	summaryValue = 195.0
)

var tableCols = []struct {
	title string
	width float64
	align string
}{
	{"N°", 10, "C"},
	{"Descripción", 85, "L"},
	{"Unidad", 20, "C"},
	{"Cant.", 20, "R"},
	{"P. Unit.", 25, "R"},
	{"Total", 25, "R"},
}

// Options point at the optional image assets. A missing or unreadable file
// degrades the rendering, never fails it.
type Options struct {
	LogoPath      string
	SignaturePath string
}

type Generator struct {
	opts Options
}

func New(opts Options) *Generator { return &Generator{opts: opts} }

// pageLayout is the phase-1 result for one page: which item rows it carries
// and whether the summary block lands on it.
type pageLayout struct {
	from, to    int // item index range [from, to)
	drawSummary bool
	summaryY    float64
}

// Generate lays the quotation out in two phases: first measure content and
// decide the page breaks, then draw every page with the now-known page count.
func (g *Generator) Generate(q quotation.Quotation) (pdf.Document, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Cotización "+displayNumber(q), false)
	doc.SetAutoPageBreak(false, 0)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	logo, signature := g.usableAssets()

	// phase 1: measure. The wrapped height of the client name pushes the
	// table start down so long names never overlap the first row.
	doc.SetFont("Helvetica", "", 11)
	clientLines := doc.SplitText(tr(q.ClientName), clientMaxWidth)
	if len(clientLines) == 0 {
		clientLines = []string{""}
	}
	tableStartY := clientY + float64(len(clientLines))*clientLineH + clientTableGap

	rowsPerPage := int((contentBottom - tableStartY - tableHeaderH) / tableRowH)
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}

	summaryRows := 1
	if q.TaxIncluded {
		summaryRows = 3
	}
	summaryH := summaryGap + float64(summaryRows)*summaryRowH

	var pages []pageLayout
	for from := 0; from == 0 || from < len(q.Items); from += rowsPerPage {
		to := from + rowsPerPage
		if to > len(q.Items) {
			to = len(q.Items)
		}
		pages = append(pages, pageLayout{from: from, to: to})
	}
	last := &pages[len(pages)-1]
	endY := tableStartY + tableHeaderH + float64(last.to-last.from)*tableRowH
	if endY+summaryH <= contentBottom {
		last.drawSummary = true
		last.summaryY = endY + summaryGap
	} else {
		pages = append(pages, pageLayout{
			from: last.to, to: last.to,
			drawSummary: true,
			summaryY:    tableStartY + tableHeaderH + summaryGap,
		})
	}
	totalPages := len(pages)

	// phase 2: draw.
	for i, p := range pages {
		doc.AddPage()
		g.drawHeader(doc, tr, q, clientLines, logo)
		g.drawTable(doc, tr, q, tableStartY, p.from, p.to)
		if p.drawSummary {
			g.drawSummary(doc, tr, q, p.summaryY)
		}
		g.drawFooter(doc, tr, q, signature, i+1, totalPages)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		log.Printf("cotizacion pdf: output failed: %v", err)
		return pdf.Document{}, err
	}
	return pdf.Document{
		Bytes:    buf.Bytes(),
		Filename: fmt.Sprintf("Cotizacion-%s.pdf", displayNumber(q)),
		MIME:     pdf.MIMEType,
		Pages:    totalPages,
	}, nil
}

func (g *Generator) drawHeader(doc *gofpdf.Fpdf, tr func(string) string, q quotation.Quotation, clientLines []string, logo string) {
	doc.SetTextColor(33, 37, 41)
	doc.SetFont("Helvetica", "B", 14)
	doc.Text(marginLeft, 15, tr(businessTitle))

	doc.SetFont("Helvetica", "", 10)
	doc.Text(marginLeft, 20, tr(businessOwner))

	doc.SetTextColor(108, 117, 125)
	doc.SetFont("Helvetica", "", 7)
	doc.SetXY(marginLeft, 22)
	doc.MultiCell(110, 3.5, tr(businessServices), "", "L", false)

	doc.SetTextColor(33, 37, 41)
	doc.SetFont("Helvetica", "B", 20)
	textRight(doc, marginRight, 20, tr("COTIZACIÓN"))

	doc.SetTextColor(108, 117, 125)
	doc.SetFont("Helvetica", "", 11)
	textRight(doc, marginRight, 27, tr(displayNumber(q)))

	doc.SetTextColor(33, 37, 41)
	doc.SetFont("Helvetica", "B", 11)
	textRight(doc, marginRight, 34, tr(businessRUC))

	if logo != "" {
		doc.ImageOptions(logo, 95, 8, 25, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.Text(marginLeft, 48, tr(businessAddress))
	doc.SetDrawColor(33, 37, 41)
	doc.Line(marginLeft, 55, marginRight, 55)

	doc.SetFont("Helvetica", "B", 11)
	doc.Text(marginLeft, clientY, "CLIENTE:")
	doc.SetFont("Helvetica", "", 11)
	for i, line := range clientLines {
		doc.Text(clientTextX, clientY+float64(i)*clientLineH, line)
	}
	doc.SetFont("Helvetica", "B", 11)
	doc.Text(140, clientY, "FECHA:")
	doc.SetFont("Helvetica", "", 11)
	doc.Text(160, clientY, q.Date)
}

func (g *Generator) drawTable(doc *gofpdf.Fpdf, tr func(string) string, q quotation.Quotation, startY float64, from, to int) {
	doc.SetXY(marginLeft, startY)
	doc.SetFillColor(233, 236, 239)
	doc.SetTextColor(33, 37, 41)
	doc.SetDrawColor(33, 37, 41)
	doc.SetFont("Helvetica", "B", 10)
	for _, col := range tableCols {
		doc.CellFormat(col.width, tableHeaderH, tr(col.title), "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for i := from; i < to; i++ {
		it := q.Items[i]
		doc.SetX(marginLeft)
		cells := []string{
			fmt.Sprintf("%d", i+1),
			tr(trim(it.Description, 48)),
			tr(it.Unit),
			displayQuantity(it),
			displayPrice(it),
			formatCurrency(it.LineTotal()),
		}
		for c, col := range tableCols {
			doc.CellFormat(col.width, tableRowH, cells[c], "1", 0, col.align, false, 0, "")
		}
		doc.Ln(-1)
	}
}

func (g *Generator) drawSummary(doc *gofpdf.Fpdf, tr func(string) string, q quotation.Quotation, y float64) {
	doc.SetTextColor(33, 37, 41)
	doc.SetFont("Helvetica", "", 10)

	if q.TaxIncluded {
		textRight(doc, summaryLabel, y, "Subtotal:")
		textRight(doc, summaryValue, y, formatCurrency(q.Subtotal))
		y += summaryRowH

		textRight(doc, summaryLabel, y, "IGV (18%):")
		textRight(doc, summaryValue, y, formatCurrency(q.Tax))
		y += summaryRowH

		doc.SetDrawColor(204, 204, 204)
		doc.Line(summaryLabel-25, y-summaryRowH/2, summaryValue, y-summaryRowH/2)
	}

	doc.SetFont("Helvetica", "B", 10)
	label := "TOTAL:"
	if !q.TaxIncluded {
		label = "TOTAL SIN IGV:"
	}
	textRight(doc, summaryLabel, y, label)
	textRight(doc, summaryValue, y, formatCurrency(q.Total))
}

func (g *Generator) drawFooter(doc *gofpdf.Fpdf, tr func(string) string, q quotation.Quotation, signature string, page, totalPages int) {
	y := pageH - 55

	doc.SetTextColor(33, 37, 41)
	doc.SetFont("Helvetica", "B", 9)
	doc.Text(marginLeft, y, "CONDICIONES:")
	y += 5

	doc.SetFont("Helvetica", "", 8)
	if q.DeliveryAtSite {
		doc.Text(marginLeft, y, "* PRECIOS INCLUYEN TRANSPORTE A OBRA.")
	} else {
		doc.Text(marginLeft, y, tr("* EL MATERIAL SERA RECOGIDO EN CANTERA."))
	}
	if !q.TaxIncluded {
		doc.Text(marginLeft, y+4, "* PRECIOS NO INCLUYEN IGV.")
	}
	y += 10

	doc.SetFont("Helvetica", "B", 9)
	doc.Text(marginLeft, y, "Cuentas:")
	y += 5
	doc.SetFont("Helvetica", "", 8)
	doc.Text(marginLeft, y, tr(bankLine1))
	doc.Text(marginLeft, y+4, tr(bankLine2))
	doc.Text(marginLeft, y+8, tr(bankLine3))

	if signature != "" {
		doc.ImageOptions(signature, 150, pageH-45, 40, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	}
	doc.SetDrawColor(33, 37, 41)
	doc.Line(140, pageH-15, marginRight, pageH-15)
	doc.SetFont("Helvetica", "", 8)
	textCenter(doc, 167.5, pageH-11, "FIRMA")

	doc.SetTextColor(108, 117, 125)
	textRight(doc, marginRight, pageH-10, tr(fmt.Sprintf("Página %d de %d", page, totalPages)))
}

// usableAssets verifies each configured image on a scratch document so a
// corrupt file can never poison the real one.
func (g *Generator) usableAssets() (logo, signature string) {
	check := func(path, what string) string {
		if path == "" {
			return ""
		}
		if _, err := os.Stat(path); err != nil {
			log.Printf("cotizacion pdf: %s no disponible: %v", what, err)
			return ""
		}
		probe := gofpdf.New("P", "mm", "A4", "")
		probe.AddPage()
		probe.ImageOptions(path, 10, 10, 20, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		if err := probe.Error(); err != nil {
			log.Printf("cotizacion pdf: %s ilegible: %v", what, err)
			return ""
		}
		return path
	}
	return check(g.opts.LogoPath, "logo"), check(g.opts.SignaturePath, "firma")
}

func displayNumber(q quotation.Quotation) string {
	if q.Number == "" {
		return "BORRADOR"
	}
	return q.Number
}

// displayQuantity prints the quantity exactly as entered, no decimal
// normalization.
func displayQuantity(it quotation.LineItem) string {
	if it.Quantity == nil {
		return ""
	}
	return it.Quantity.String()
}

func displayPrice(it quotation.LineItem) string {
	if it.UnitPrice == nil {
		return ""
	}
	return formatCurrency(*it.UnitPrice)
}

func textRight(doc *gofpdf.Fpdf, x, y float64, s string) {
	doc.Text(x-doc.GetStringWidth(s), y, s)
}

func textCenter(doc *gofpdf.Fpdf, x, y float64, s string) {
	doc.Text(x-doc.GetStringWidth(s)/2, y, s)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

package render

import (
	"bytes"
	"fmt"
	"html/template"

	"plantreport/format"
	"plantreport/model"
)

var deliveryNoteTmpl = template.Must(template.New("deliveryNote").Funcs(template.FuncMap{
	"qty": func(q model.Quantity) string {
		if !q.Valid {
			return ""
		}
		return format.Fixed(q.Float64, 0)
	},
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Delivery Note {{.Note.DeliveryNoteNumber}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; margin: 24px; }
  h1 { font-size: 18px; text-align: center; margin: 0; }
  h2 { font-size: 14px; text-align: center; margin: 4px 0 16px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 16px; }
  th, td { border: 1px solid #333; padding: 6px 8px; text-align: left; }
  th { background: #f0f0f0; width: 30%; }
  .items th { width: auto; }
  .num { text-align: right; }
  .sign td { height: 48px; vertical-align: bottom; }
</style>
</head>
<body>
<h1>{{.PlantName}}</h1>
<h2>DELIVERY NOTE</h2>
<table>
  <tr><th>Delivery Note No</th><td>{{.Note.DeliveryNoteNumber}}</td></tr>
  <tr><th>Date</th><td>{{.Note.DeliveryDate}}</td></tr>
  <tr><th>Cheque Received</th><td>{{orDash .Note.ChequeReceived}}</td></tr>
  <tr><th>Purchase Order No</th><td>{{orDash .Note.PurchaseOrderNo}}</td></tr>
  <tr><th>Proforma Invoice No</th><td>{{orDash .Note.ProformaInvoiceNo}}</td></tr>
  <tr><th>Invoice No</th><td>{{orDash .Note.InvoiceNo}}</td></tr>
  <tr><th>Customer</th><td>{{.Note.Customer}}</td></tr>
  <tr><th>From</th><td>{{orDash .Note.From}}</td></tr>
  <tr><th>To</th><td>{{orDash .Note.To}}</td></tr>
</table>
<table class="items">
  <tr><th>Description</th><th class="num">Quantity</th></tr>
  <tr><td>{{.Note.Description}}</td><td class="num">{{qty .Note.Quantity}}</td></tr>
</table>
<table class="sign">
  <tr><th>Checked &amp; Verified By</th><td>{{.Note.CheckedBy}}</td></tr>
  <tr><th>Approved By</th><td>{{.Note.ApprovedBy}}</td></tr>
  <tr><th>Remarks</th><td>{{.Note.Remarks}}</td></tr>
  <tr><th>Received By</th><td>{{.Note.ReceivedByName}}</td></tr>
  <tr><th>Signature</th><td>{{.Note.Signature}}</td></tr>
  <tr><th>Received Date</th><td>{{.Note.ReceivedDate}}</td></tr>
</table>
</body>
</html>
`))

// DeliveryNoteHTML は納品書の印刷用 HTML を返します。
func DeliveryNoteHTML(note model.DeliveryNote, plantName string) (string, error) {
	var buf bytes.Buffer
	err := deliveryNoteTmpl.Execute(&buf, struct {
		Note      model.DeliveryNote
		PlantName string
	}{note, plantName})
	if err != nil {
		return "", fmt.Errorf("failed to render delivery note %s: %w", note.DeliveryNoteNumber, err)
	}
	return buf.String(), nil
}

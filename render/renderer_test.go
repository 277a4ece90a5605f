package render

import (
	"strings"
	"testing"

	"plantreport/model"
)

func TestDeliveryNoteHTML(t *testing.T) {
	note := model.DeliveryNote{
		DeliveryNoteNumber: "DN2025032-01",
		DeliveryDate:       "2025-02-01",
		Customer:           "CEB <Colombo>",
		Description:        "CEB Meter Enclosure",
		Quantity:           model.Q(1250),
		ReceivedByName:     "Nimal",
	}
	html, err := DeliveryNoteHTML(note, "Test Plant")
	if err != nil {
		t.Fatalf("DeliveryNoteHTML: %v", err)
	}
	for _, want := range []string{"DN2025032-01", "Test Plant", "1,250", "CEB &lt;Colombo&gt;"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(html, "<Colombo>") {
		t.Errorf("customer name not escaped")
	}
}

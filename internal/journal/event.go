package journal

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"fordeling/internal/routing/models"
	pstrings "fordeling/pkg/platform/strings"
)

// Sector codes carried on received document events.
const (
	SectorPension    = "P"
	SectorHorizontal = "HZ"
	SectorRecovery   = "R"
)

// SedEvent is a "document received" event from the exchange gateway.
type SedEvent struct {
	ID                  int64  `json:"id"`
	SedID               string `json:"sedId"`
	SectorCode          string `json:"sektorKode"`
	BucType             string `json:"bucType"`
	RinaCaseID          string `json:"rinaSakId"`
	SenderID            string `json:"avsenderId"`
	SenderName          string `json:"avsenderNavn"`
	SenderCountry       string `json:"avsenderLand"`
	ReceiverID          string `json:"mottakerId"`
	ReceiverName        string `json:"mottakerNavn"`
	ReceiverCountry     string `json:"mottakerLand"`
	RinaDocumentID      string `json:"rinaDokumentId"`
	RinaDocumentVersion string `json:"rinaDokumentVersjon"`
	SedType             string `json:"sedType"`
	NavUser             string `json:"navBruker"`
}

// DecodeEvent parses the JSON payload of a received document event.
func DecodeEvent(raw []byte) (SedEvent, error) {
	var ev SedEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return SedEvent{}, fmt.Errorf("decode sed event: %w", err)
	}
	if ev.RinaCaseID == "" || ev.BucType == "" {
		return SedEvent{}, fmt.Errorf("decode sed event: rinaSakId and bucType are required")
	}
	return ev, nil
}

// Category returns the case category for the event's BUC type.
func (e SedEvent) Category() models.CaseCategory {
	return models.ParseCaseCategory(e.BucType)
}

// Key identifies the event for logs and idempotent storage.
func (e SedEvent) Key() string {
	if e.ID != 0 {
		return strconv.FormatInt(e.ID, 10)
	}
	return e.RinaCaseID + "/" + e.RinaDocumentID + "/" + e.RinaDocumentVersion
}

// Routable reports whether the event belongs to a sector this service
// routes. Unknown BUC types within the pension sector are routed to the
// fallback unit.
func (e SedEvent) Routable() bool {
	switch pstrings.NormalizeCode(e.SectorCode) {
	case SectorPension:
		return true
	case SectorHorizontal, SectorRecovery:
		return e.Category() != models.CategoryUnknown
	default:
		return false
	}
}

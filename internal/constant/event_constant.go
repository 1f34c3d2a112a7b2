package constant

// Domain event types published on the events stream.
const (
	EventFounderInvited           = "FOUNDER_INVITED"
	EventInvestorAdded            = "INVESTOR_ADDED"
	EventDocumentSentForSignature = "DOCUMENT_SENT_FOR_SIGNATURE"
	EventSignatureSigned          = "SIGNATURE_SIGNED"
	EventDocumentActivated        = "DOCUMENT_ACTIVATED"

	EventsSubject        = "events.>"
	ActivityDurableName  = "activity-service-worker"
	DefaultNotifPageSize = 20
)

// ActivityTemplate renders one event type into an activity feed entry.
// Message placeholders like {name} are filled from the event payload.
type ActivityTemplate struct {
	Title      string
	Message    string
	EntityType string
	EntityKey  string
}

var ActivityTemplates = map[string]ActivityTemplate{
	EventFounderInvited: {
		Title:      "Founder invited",
		Message:    "{name} ({email}) was invited to join the company.",
		EntityType: "founder",
		EntityKey:  "founder_id",
	},
	EventInvestorAdded: {
		Title:      "Investor added",
		Message:    "{name} was added as an investor. A SAFE is being drafted.",
		EntityType: "investor",
		EntityKey:  "investor_id",
	},
	EventDocumentSentForSignature: {
		Title:      "Sent for signature",
		Message:    "\"{title}\" was sent to {signers} signer(s).",
		EntityType: "document",
		EntityKey:  "document_id",
	},
	EventSignatureSigned: {
		Title:      "Document signed",
		Message:    "{signer_name} signed \"{title}\".",
		EntityType: "document",
		EntityKey:  "document_id",
	},
	EventDocumentActivated: {
		Title:      "Document active",
		Message:    "Everyone has signed \"{title}\". It is now active.",
		EntityType: "document",
		EntityKey:  "document_id",
	},
}

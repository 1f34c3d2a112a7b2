package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "assistant"
	ChatMessageRoleSystem = "system"

	// ChatFallbackReply is returned instead of an error when no model is configured.
	ChatFallbackReply = "I'm sorry, the AI assistant is not available right now. Please try again later or continue from the dashboard."

	ChatRetrievalTopK = 3
	ChatHistoryWindow = 10
	IndexChunkSize    = 1500
	IndexChunkOverlap = 200

	AssistantSystemPrompt = `You are the incorporate.run assistant. You help startup founders form and run their company: incorporation paperwork, founders, equity, investors and SAFEs, and the next tasks on their checklist.

RULES:
- Ground answers in the company context and the retrieved passages below. Quote document titles when you use them.
- If the context does not contain the answer, say so and suggest the next concrete step in the app.
- You are not a lawyer. For jurisdiction-specific legal questions, answer generally and recommend counsel.
- Keep answers short: 2 to 5 sentences, plain language.`

	DraftDocumentPrompt = `You are drafting a legal document for an early-stage company.

Company: %s
Jurisdiction: %s
Description: %s
Founders:
%s

Document type: %s
Title: %s

Write the complete document in Markdown. Use the jurisdiction's conventions (Delaware General Corporation Law for "delaware", French Code de commerce for "france"). Use placeholders like [DATE] for facts you do not have. Output only the document.`

	DraftSafePrompt = `Draft a post-money SAFE (Simple Agreement for Future Equity) in Markdown.

Company: %s
Jurisdiction: %s
Investor name: %s
Investor email: %s
Purchase amount: %.2f USD

Follow the standard Y Combinator post-money SAFE structure: events, definitions, company and investor representations, miscellaneous. Leave the valuation cap and discount as [VALUATION CAP] and [DISCOUNT] unless given. Output only the document.`

	ValidateDocumentPrompt = `Review the following %s document for a %s company. Check for missing required clauses, inconsistent party names, empty placeholders and jurisdiction mismatches.

Return JSON with "valid" (true only if there are no issues of severity "error") and "issues", a list of {"severity": "error"|"warning", "message": string}.

DOCUMENT:
%s`

	ExtractEntitiesPrompt = `Extract the company formation details from this conversation transcript.

Return JSON with:
- "company": {"name", "jurisdiction" ("delaware" or "france"), "description"}
- "founders": list of {"first_name", "last_name", "email", "role", "equity_percentage"}
- "investors": list of {"name", "email", "investment_amount"}

Only include people explicitly mentioned. Use 0 for numbers that were not stated and "" for unknown text.

TRANSCRIPT:
%s`
)

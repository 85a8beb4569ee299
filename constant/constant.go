package constant

const (
	DefaultPageLimit = 10
)

const (
	EmptyString = ""
)

// Chat roles accepted by the completion service.
const (
	RoleUser      = "user"
	RoleSystem    = "system"
	RoleAssistant = "assistant"
)

// Default completion model when the request does not name one.
const DefaultModel = "gpt-4-1106-preview"

// Answer returned when retrieval finds nothing for the user's query.
// The completion service is never called in that case.
const NoDocumentsFound = "No documents found in context. Please try again with a different query."

// AugmentedQueryTemplate grounds the completion on retrieved context.
// Arguments: user query, joined context lines.
const AugmentedQueryTemplate = "Answer based only on the context, nothing else. \n" +
	"QUERY:\n%s\n" +
	"CONTEXT:\n%s"

// Fixed detail string for uploads of file types we cannot extract.
const UnsupportedFileTypeDetail = "Unsupported file type. Only .pdf, .txt and .docx are accepted."

// Fixed client-visible message for completion-service failures.
const OpenAICallError = "OpenAI call Error"

package detector

// Exported for testing
var (
	ParseResponse     = parseResponse
	AggregateScores   = aggregateScores
	BuildSystemPrompt = buildSystemPrompt
	BuildUserPrompt   = buildUserPrompt
)

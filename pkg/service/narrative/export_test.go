package narrative

var (
	BuildSystemPrompt   = buildSystemPrompt
	BuildUserPrompt     = buildUserPrompt
	BuildResponseSchema = buildResponseSchema
	StripCodeFence      = stripCodeFence
)

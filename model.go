package anthropic

// Model identifies the model used for inference. Any model ID accepted by
// the API can be used; the constants cover the common ones.
type Model string

const (
	ModelSonnet4  Model = "claude-sonnet-4-20250514"
	ModelSonnet35 Model = "claude-3-5-sonnet-20240620"
	ModelOpus30   Model = "claude-3-opus-20240229"
	ModelSonnet30 Model = "claude-3-sonnet-20240229"
	ModelHaiku30  Model = "claude-3-haiku-20240307"
)

// DefaultModel is used when a [Request] does not name a model.
const DefaultModel = ModelSonnet4

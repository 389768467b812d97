package extractor

import "github.com/TNAJanssen/JMSTranslationBundle2/php/docblock"

// ChoicePolicy selects how the key/value sides of a choice-list item are
// read. The form component changed which side is the display label across
// major versions, so the convention is explicit configuration here.
type ChoicePolicy int

const (
	// ChoicesLegacy reads items as-is and inverts only when the sibling
	// choices_as_values option is true.
	ChoicesLegacy ChoicePolicy = iota
	// ChoicesAlwaysInvert inverts every item regardless of
	// choices_as_values (the newer form component convention).
	ChoicesAlwaysInvert
)

// ErrorReporter receives diagnostics for candidates that should have been
// extractable but were not. When no reporter is attached the extractor
// treats such candidates as fatal.
type ErrorReporter interface {
	Error(message string)
}

// AnnotationResolver turns a raw doc comment into directives. The where tag
// describes the source location for annotation diagnostics.
type AnnotationResolver interface {
	Resolve(comment, where string) []docblock.Directive
}

type docblockResolver struct{}

func (docblockResolver) Resolve(comment, where string) []docblock.Directive {
	return docblock.Parse(comment, where)
}

// builtinFieldKeys are the option keys recognized on every form field.
var builtinFieldKeys = []string{
	"label",
	"empty_value",
	"placeholder",
	"choices",
	"invalid_message",
	"attr",
	"constraints",
	"title",
}

type Option func(*FormExtractor)

// WithLogger attaches a diagnostic sink. Unextractable literals are then
// logged and skipped instead of aborting the source unit.
func WithLogger(logger ErrorReporter) Option {
	return func(e *FormExtractor) {
		e.logger = logger
	}
}

func WithChoicePolicy(policy ChoicePolicy) Option {
	return func(e *FormExtractor) {
		e.policy = policy
	}
}

// WithCustomKeys registers additional option keys whose values should be
// extracted like labels.
func WithCustomKeys(keys ...string) Option {
	return func(e *FormExtractor) {
		for _, key := range keys {
			e.fieldKeys[key] = true
		}
	}
}

func WithAnnotationResolver(resolver AnnotationResolver) Option {
	return func(e *FormExtractor) {
		e.resolver = resolver
	}
}

package model

const (
	// DefaultDuplicateSuffix renders the n-th occurrence of a repeated title.
	DefaultDuplicateSuffix = "%s (%d)"
	// DefaultMaxScalePoints bounds the points accepted for a linear scale.
	DefaultMaxScalePoints = 101
)

// Options configures the Builder. Zero fields fall back to the defaults;
// the public adapter in pkg/model fills them from its BuilderOptions.
type Options struct {
	// Labeler reduces raw item titles to plain text.
	Labeler func(string) string
	// DuplicateSuffix is a fmt layout taking the base title and the
	// occurrence number.
	DuplicateSuffix string
	MaxScalePoints  int
}

func defaultOptions() Options {
	return Options{
		Labeler:         DefaultLabeler,
		DuplicateSuffix: DefaultDuplicateSuffix,
		MaxScalePoints:  DefaultMaxScalePoints,
	}
}

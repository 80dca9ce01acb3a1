package config

// Default values for generated configuration records.
const (
	DefaultProjectName = "My AI Conventions"
	DefaultAuthorName  = "Your Name"
)

// DefaultFeatures returns the feature toggles enabled by default.
// All three features ship on; operators opt out per run.
func DefaultFeatures() Features {
	return Features{
		LearningCapture:   true,
		ContextCanary:     true,
		DomainComposition: true,
	}
}

// NewDefaultRecord creates a record with default metadata, the default
// feature set, and empty selection lists.
func NewDefaultRecord() *Record {
	rec := &Record{
		ProjectName: DefaultProjectName,
		AuthorName:  DefaultAuthorName,
		Features:    DefaultFeatures(),
	}
	rec.Normalize()
	return rec
}

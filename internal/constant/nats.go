package constant

const (
	ClassificationStream = "mutant-classifications"

	// ClassificationSubjects is the subject filter of ClassificationStream.
	ClassificationSubjects = "DNA.*"
	ClassificationSubject  = "DNA.CLASSIFIED"
)

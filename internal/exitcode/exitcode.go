package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	FetchError      = 3
	ParseError      = 4
	BuildError      = 5
	PublishError    = 6
)

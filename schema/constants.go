package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// LogFormat represents the encoding used by the structured logger.
	LogFormat string

	// Endpoint identifies which upstream endpoint a request targeted.
	Endpoint string

	// ProjectSort represents the order in which projects are listed.
	ProjectSort string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	HTMLOut    OutputMode = "html"
)

// All log formats supported.
const (
	TextLog LogFormat = "text" // default
	JSONLog LogFormat = "json"
)

// All project orders supported.
const (
	SortUpdated ProjectSort = "updated" // default, upstream order
	SortStars   ProjectSort = "stars"
)

// Upstream endpoints that devscope calls.
const (
	ProfileEndpoint   Endpoint = "profile"
	ProjectsEndpoint  Endpoint = "projects"
	LanguagesEndpoint Endpoint = "languages"
)

// Upstream API constants.
const (
	DefaultBaseURL      = "https://api.github.com"
	DefaultHandle       = "octocat"
	DefaultTopLanguages = 5
	ProjectsPerPage     = 100
	MaxCardTopics       = 4
)

// ValidOutputModes lists every accepted output format.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	HTMLOut:    {},
}

// FileOutputModes must be written to a file rather than stdout.
var FileOutputModes = map[OutputMode]struct{}{
	ParquetOut: {},
	HTMLOut:    {},
}

// ValidLogFormats lists every accepted log format.
var ValidLogFormats = map[LogFormat]struct{}{
	TextLog: {},
	JSONLog: {},
}

// ValidProjectSorts lists every accepted project order.
var ValidProjectSorts = map[ProjectSort]struct{}{
	SortUpdated: {},
	SortStars:   {},
}

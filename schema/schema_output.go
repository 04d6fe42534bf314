package schema

// Share label constants.
const (
	DominantValue = "Dominant" // Half or more of all bytes
	MajorValue    = "Major"    // A fifth or more
	MinorValue    = "Minor"    // A twentieth or more
	TraceValue    = "Trace"    // Everything else
)

// RankedLanguage adds presentation data to a LanguageStat.
type RankedLanguage struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	Color string `json:"color"`
	LanguageStat
}

// GetShareLabel returns a plain text label describing how much of the
// profile's code a language accounts for.
func GetShareLabel(percentage float64) string {
	switch {
	case percentage >= 50:
		return DominantValue
	case percentage >= 20:
		return MajorValue
	case percentage >= 5:
		return MinorValue
	default:
		return TraceValue
	}
}

// RankLanguages adds rank, label and color to a list of language stats.
func RankLanguages(stats []LanguageStat) []RankedLanguage {
	output := make([]RankedLanguage, len(stats))
	for i, s := range stats {
		output[i] = RankedLanguage{
			Rank:         i + 1,
			Label:        GetShareLabel(s.Percentage),
			Color:        LanguageColor(s.Name),
			LanguageStat: s,
		}
	}
	return output
}

package model

// QAPair is one question/answer cell pair read from an intake form
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Submission is a parsed intake email. It is created once by the form parser
// and read by every later stage without modification.
type Submission struct {
	RawText  string   `json:"raw_text"`
	FormData []QAPair `json:"form_data"`
	Format   string   `json:"format,omitempty"` // Which source adapter produced FormData
}

// Questions returns the question column in document order
func (s Submission) Questions() []string {
	out := make([]string, len(s.FormData))
	for i, qa := range s.FormData {
		out[i] = qa.Question
	}
	return out
}

// AgeRange is an extracted targeting age band. Zero means unset.
type AgeRange struct {
	Min int `json:"age_min,omitempty"`
	Max int `json:"age_max,omitempty"`
}

// IsEmpty reports whether neither bound was extracted
func (a AgeRange) IsEmpty() bool {
	return a.Min == 0 && a.Max == 0
}

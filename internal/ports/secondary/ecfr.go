package secondary

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// ECFRSource defines the secondary port for the remote registry. Pure
// transport: a fetch either returns the decoded payload or an error, never
// partial data, and implementations do not retry.
type ECFRSource interface {
	// FetchAgencies retrieves the agency tree.
	FetchAgencies(ctx context.Context) (*AgenciesPayload, error)

	// FetchTitles retrieves the title list.
	FetchTitles(ctx context.Context) (*TitlesPayload, error)

	// FetchCorrections retrieves the corrections collection.
	FetchCorrections(ctx context.Context) (*CorrectionsPayload, error)
}

// AgenciesPayload is the top-level document of agencies.json.
type AgenciesPayload struct {
	Agencies []AgencyPayload `json:"agencies"`
}

// AgencyPayload is one agency node. The pipeline consumes one level of
// Children; deeper nesting is not walked.
type AgencyPayload struct {
	ShortName     string          `json:"short_name"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	CFRReferences []CFRReference  `json:"cfr_references"`
	Children      []AgencyPayload `json:"children"`
}

// CFRReference is one CFR location attached to an agency. Fields are
// declared in alphabetical json-key order so encoding/json emits the
// canonical sorted-key serialization used as checksum input.
type CFRReference struct {
	Chapter      string      `json:"chapter,omitempty"`
	Part         string      `json:"part,omitempty"`
	Section      string      `json:"section,omitempty"`
	Subchapter   string      `json:"subchapter,omitempty"`
	SubjectGroup string      `json:"subject_group,omitempty"`
	Subpart      string      `json:"subpart,omitempty"`
	Subtitle     string      `json:"subtitle,omitempty"`
	Title        TitleNumber `json:"title,omitempty"`
}

// TitlesPayload is the top-level document of titles.json.
type TitlesPayload struct {
	Titles []TitlePayload `json:"titles"`
}

// TitlePayload is one title entry.
type TitlePayload struct {
	TitleNumber int    `json:"title_number"`
	TitleName   string `json:"title_name"`
}

// CorrectionsPayload is the top-level document of corrections.json.
type CorrectionsPayload struct {
	ECFRCorrections []CorrectionPayload `json:"ecfr_corrections"`
}

// CorrectionPayload is one correction entry. The upstream id is numeric in
// some API versions and a string in others; CorrectionID absorbs both.
type CorrectionPayload struct {
	ID               CorrectionID             `json:"id"`
	FRCitation       string                   `json:"fr_citation"`
	CorrectiveAction string                   `json:"corrective_action"`
	ErrorCorrected   string                   `json:"error_corrected"`
	ErrorOccurred    string                   `json:"error_occurred"`
	LastModified     string                   `json:"last_modified"`
	DisplayInTOC     bool                     `json:"display_in_toc"`
	Position         int                      `json:"position"`
	Year             int                      `json:"year"`
	Title            string                   `json:"title"`
	CFRReferences    []CorrectionCFRReference `json:"cfr_references"`
}

// CorrectionCFRReference pairs the human-readable citation with its
// hierarchy block.
type CorrectionCFRReference struct {
	CFRReference string              `json:"cfr_reference"`
	Hierarchy    CorrectionHierarchy `json:"hierarchy"`
}

// CorrectionHierarchy locates a correction within a title.
type CorrectionHierarchy struct {
	Title        TitleNumber `json:"title"`
	Chapter      string      `json:"chapter"`
	Part         string      `json:"part"`
	Section      string      `json:"section"`
	Subchapter   string      `json:"subchapter"`
	SubjectGroup string      `json:"subject_group"`
	Subpart      string      `json:"subpart"`
	Subtitle     string      `json:"subtitle"`
}

// CorrectionID is the external correction identifier, used directly as the
// primary key. The registry encodes it sometimes as a JSON number and
// sometimes as a string.
type CorrectionID string

// UnmarshalJSON accepts numeric, string, and null encodings.
func (c *CorrectionID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*c = CorrectionID(str)
		return nil
	}
	*c = CorrectionID(s)
	return nil
}

// String returns the identifier as a plain string.
func (c CorrectionID) String() string {
	return string(c)
}

// TitleNumber is a CFR title number that the registry encodes sometimes as
// a JSON number and sometimes as a string. Zero means absent or
// unresolvable.
type TitleNumber int

// UnmarshalJSON accepts numeric, string, and null encodings.
func (t *TitleNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*t = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Non-numeric title references are treated as unresolvable, not
		// as decode failures; the record-level skip rules handle them.
		*t = 0
		return nil
	}
	*t = TitleNumber(n)
	return nil
}

// MarshalJSON emits the plain numeric form.
func (t TitleNumber) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(t))), nil
}

// Int returns the title number as an int.
func (t TitleNumber) Int() int {
	return int(t)
}

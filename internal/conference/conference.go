package conference

import (
	"time"

	"github.com/lib/pq"
)

// Unknown is the sentinel value for a field that could not be extracted.
// Candidates always carry it instead of an empty or missing field, so
// downstream code branches on the sentinel, never on presence.
const Unknown = "unknown"

// Candidate represents one freshly extracted, not-yet-reconciled
// conference as it appeared on the listing page. All string fields are
// either a real value or Unknown; Topics may be empty.
type Candidate struct {
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	CFPURL        string   `json:"cfp_url"`
	Twitter       string   `json:"twitter"`
	Mastodon      string   `json:"mastodon"`
	Topics        []string `json:"topics"`
	CodeOfConduct string   `json:"code_of_conduct"`
}

// NewCandidate creates a Candidate with every field set to Unknown
// and an empty topic list.
func NewCandidate() Candidate {
	return Candidate{
		Name:          Unknown,
		URL:           Unknown,
		StartDate:     Unknown,
		EndDate:       Unknown,
		City:          Unknown,
		Country:       Unknown,
		CFPURL:        Unknown,
		Twitter:       Unknown,
		Mastodon:      Unknown,
		Topics:        []string{},
		CodeOfConduct: Unknown,
	}
}

// Record represents a persisted conference, the unit of deduplication.
// NormalizedURL is the primary identity key and is unique across the
// store; NormalizedCFPURL is a secondary key, unique when non-null.
type Record struct {
	ID               int64          `db:"id" json:"id"`
	Name             string         `db:"name" json:"name"`
	URL              string         `db:"url" json:"url"`
	NormalizedURL    string         `db:"normalized_url" json:"normalized_url"`
	NormalizedCFPURL *string        `db:"normalized_cfp_url" json:"normalized_cfp_url,omitempty"`
	StartDate        *time.Time     `db:"start_date" json:"start_date,omitempty"`
	EndDate          *time.Time     `db:"end_date" json:"end_date,omitempty"`
	City             string         `db:"city" json:"city"`
	Country          string         `db:"country" json:"country"`
	CFPURL           string         `db:"cfp_url" json:"cfp_url"`
	Twitter          string         `db:"twitter" json:"twitter"`
	Mastodon         string         `db:"mastodon" json:"mastodon"`
	Topics           pq.StringArray `db:"topics" json:"topics"`
	CodeOfConduct    string         `db:"code_of_conduct" json:"code_of_conduct"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// NewRecord builds a Record from a candidate and its normalized identity
// keys. Textual dates are coerced to typed dates; the Unknown sentinel
// and unparseable date text both coerce to nil.
func NewRecord(c Candidate, normalizedURL string, normalizedCFPURL *string) *Record {
	return &Record{
		Name:             c.Name,
		URL:              c.URL,
		NormalizedURL:    normalizedURL,
		NormalizedCFPURL: normalizedCFPURL,
		StartDate:        CoerceDate(c.StartDate),
		EndDate:          CoerceDate(c.EndDate),
		City:             c.City,
		Country:          c.Country,
		CFPURL:           c.CFPURL,
		Twitter:          c.Twitter,
		Mastodon:         c.Mastodon,
		Topics:           pq.StringArray(c.Topics),
		CodeOfConduct:    c.CodeOfConduct,
	}
}

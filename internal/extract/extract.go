package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

// Listing entries label each value with a visually hidden <dt>; the
// value lives in the adjacent <dd>. Topics are the one exception, a
// fixed-class list.
const topicListSelector = "ul.ConferenceItem_topics__87OPm li"

// valueKind selects how the value element adjacent to a label is read.
type valueKind int

const (
	siblingText valueKind = iota // displayed text of the <dd>
	anchorText                   // text of the <a> inside the <dd>
	anchorHref                   // href of the <a> inside the <dd>
)

// fieldRule maps one label of the vocabulary to an extraction rule.
// New labels are additive: add a row, not a conditional.
type fieldRule struct {
	label  string
	kind   valueKind
	assign func(c *conference.Candidate, value string)
}

var fieldRules = []fieldRule{
	{"Conference name", anchorText, func(c *conference.Candidate, v string) { c.Name = v }},
	{"Conference name", anchorHref, func(c *conference.Candidate, v string) { c.URL = v }},
	{"Location and date", siblingText, func(c *conference.Candidate, v string) {
		ld := ParseLocationDate(v)
		c.City = ld.City
		c.Country = ld.Country
		c.StartDate = ld.StartDate
		c.EndDate = ld.EndDate
	}},
	{"Call for paper end date", anchorHref, func(c *conference.Candidate, v string) { c.CFPURL = v }},
	{"Twitter username", anchorHref, func(c *conference.Candidate, v string) { c.Twitter = v }},
	{"Mastodon username", anchorHref, func(c *conference.Candidate, v string) { c.Mastodon = v }},
	{"Link to code of conduct", anchorHref, func(c *conference.Candidate, v string) { c.CodeOfConduct = v }},
}

// Extractor parses listing-entry HTML fragments into candidates.
type Extractor struct{}

// New creates a new Extractor instance
func New() *Extractor {
	return &Extractor{}
}

// ExtractAll parses a batch of HTML fragments into candidates. The
// result has the same length and order as the input. Extraction never
// fails: a fragment that matches nothing yields an all-sentinel
// candidate rather than an error.
func (e *Extractor) ExtractAll(fragments []string) []conference.Candidate {
	candidates := make([]conference.Candidate, 0, len(fragments))
	for _, fragment := range fragments {
		candidates = append(candidates, e.extractOne(fragment))
	}
	return candidates
}

// extractOne parses a single fragment. Missing labels and missing child
// elements leave the corresponding fields at the sentinel.
func (e *Extractor) extractOne(fragment string) conference.Candidate {
	cand := conference.NewCandidate()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return cand
	}

	for _, rule := range fieldRules {
		value, ok := labeledValue(doc, rule.label, rule.kind)
		if !ok {
			continue
		}
		rule.assign(&cand, value)
	}

	doc.Find(topicListSelector).Each(func(_ int, sel *goquery.Selection) {
		if topic := strings.TrimSpace(sel.Text()); topic != "" {
			cand.Topics = append(cand.Topics, topic)
		}
	})

	return cand
}

// labeledValue locates the <dt> whose text contains label, walks to its
// adjacent value element, and reads it according to kind. Returns false
// when the label, the value element, or the expected child is absent.
func labeledValue(doc *goquery.Document, label string, kind valueKind) (string, bool) {
	dt := doc.Find("dt").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return strings.Contains(sel.Text(), label)
	}).First()
	if dt.Length() == 0 {
		return "", false
	}

	value := dt.Next()
	if value.Length() == 0 {
		return "", false
	}

	var raw string
	switch kind {
	case siblingText:
		raw = value.Text()
	case anchorText:
		raw = value.Find("a").First().Text()
	case anchorHref:
		href, exists := value.Find("a").First().Attr("href")
		if !exists {
			return "", false
		}
		raw = href
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}

package build

import "time"

// Build is the root of a campaign build: account-level settings plus the
// ordered campaigns that make up one bulk upload.
type Build struct {
	ClientName       string     `json:"clientName"`
	ClientCID        string     `json:"clientCid"`
	TrackingTemplate string     `json:"trackingTemplate"`
	URLSuffix        string     `json:"urlSuffix"`
	Campaigns        []Campaign `json:"campaigns"`
}

// Campaign represents one search campaign and everything it owns
type Campaign struct {
	Settings   CampaignSettings `json:"settings"`
	Locations  string           `json:"locations"`
	AdGroups   []AdGroup        `json:"adGroups"`
	Extensions ExtensionSet     `json:"extensions"`
}

// CampaignSettings holds the campaign-level form fields.
// AdSchedule and CampaignNegatives are raw multi-line text.
type CampaignSettings struct {
	Name              string `json:"name"`
	Budget            string `json:"budget"`
	Status            string `json:"status"`
	BidStrategy       string `json:"bidStrategy"`
	AdSchedule        string `json:"adSchedule"`
	CampaignNegatives string `json:"campaignNegatives"`
	SearchPartners    bool   `json:"searchPartners"`
	DisplayNetwork    bool   `json:"displayNetwork"`
	LocationOption    string `json:"locationOption"`
}

// AdGroup represents an ad group with its keywords and responsive search ad
type AdGroup struct {
	Name             string     `json:"name"`
	Keywords         string     `json:"keywords"`
	FinalURL         string     `json:"finalUrl"`
	AdgroupNegatives string     `json:"adgroupNegatives"`
	Headlines        string     `json:"headlines"`
	Descriptions     string     `json:"descriptions"`
	Sitelinks        []Sitelink `json:"sitelinks"`
}

// ExtensionSet groups the campaign-scope extensions by kind
type ExtensionSet struct {
	Call       []CallExt      `json:"call"`
	Callouts   []CalloutExt   `json:"callouts"`
	Snippets   []SnippetExt   `json:"snippets"`
	Promotions []PromotionExt `json:"promotions"`
}

// ExtensionKind is the tag of an extension variant
type ExtensionKind string

const (
	KindCall      ExtensionKind = "call"
	KindSitelink  ExtensionKind = "sitelink"
	KindCallout   ExtensionKind = "callout"
	KindSnippet   ExtensionKind = "snippet"
	KindPromotion ExtensionKind = "promotion"
)

// Extension is implemented by every extension variant.
type Extension interface {
	Kind() ExtensionKind
}

// Sitelink is an ad-group scoped sitelink extension
type Sitelink struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Desc1 string `json:"desc1"`
	Desc2 string `json:"desc2"`
}

// CallExt is a call extension
type CallExt struct {
	Phone   string `json:"phone"`
	Country string `json:"country"`
}

// CalloutExt is a callout extension
type CalloutExt struct {
	Text string `json:"text"`
}

// SnippetExt is a structured snippet. Values holds newline-joined non-empty values.
type SnippetExt struct {
	Header string `json:"header"`
	Values string `json:"values"`
}

// PromotionExt is a promotion extension
type PromotionExt struct {
	Item     string `json:"item"`
	URL      string `json:"url"`
	Type     string `json:"type"`
	Value    string `json:"value"`
	Occasion string `json:"occasion"`
}

func (Sitelink) Kind() ExtensionKind     { return KindSitelink }
func (CallExt) Kind() ExtensionKind      { return KindCall }
func (CalloutExt) Kind() ExtensionKind   { return KindCallout }
func (SnippetExt) Kind() ExtensionKind   { return KindSnippet }
func (PromotionExt) Kind() ExtensionKind { return KindPromotion }

// ParseExtensionKind maps a wire tag to its variant
func ParseExtensionKind(s string) (ExtensionKind, error) {
	switch k := ExtensionKind(s); k {
	case KindCall, KindSitelink, KindCallout, KindSnippet, KindPromotion:
		return k, nil
	}
	return "", ErrUnknownExtension
}

// Items returns the campaign-scope extensions in export order:
// call, callouts, snippets, promotions.
func (s ExtensionSet) Items() []Extension {
	items := make([]Extension, 0, len(s.Call)+len(s.Callouts)+len(s.Snippets)+len(s.Promotions))
	for _, e := range s.Call {
		items = append(items, e)
	}
	for _, e := range s.Callouts {
		items = append(items, e)
	}
	for _, e := range s.Snippets {
		items = append(items, e)
	}
	for _, e := range s.Promotions {
		items = append(items, e)
	}
	return items
}

// Count returns how many campaign-scope extensions of kind exist
func (s ExtensionSet) Count(kind ExtensionKind) int {
	switch kind {
	case KindCall:
		return len(s.Call)
	case KindCallout:
		return len(s.Callouts)
	case KindSnippet:
		return len(s.Snippets)
	case KindPromotion:
		return len(s.Promotions)
	}
	return 0
}

// Record is a stored build together with its ownership metadata
type Record struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	ClientName string    `json:"clientName"`
	Build      *Build    `json:"build,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Summary is the list representation of a stored build
type Summary struct {
	ID         string    `json:"id"`
	ClientName string    `json:"clientName"`
	Campaigns  int       `json:"campaigns"`
	AdGroups   int       `json:"adGroups"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToSummary converts a Record to Summary
func (r *Record) ToSummary() Summary {
	s := Summary{
		ID:         r.ID,
		ClientName: r.ClientName,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Build != nil {
		s.Campaigns = len(r.Build.Campaigns)
		for _, c := range r.Build.Campaigns {
			s.AdGroups += len(c.AdGroups)
		}
	}
	return s
}

package build

const (
	DefaultLocationOption = "Presence"
	copySuffix            = " (Copy)"
)

// Limits caps the number of extension items per owning entity.
// Zero means unlimited.
type Limits struct {
	Call          int `json:"call" koanf:"call"`
	Sitelink      int `json:"sitelink" koanf:"sitelink"`
	Callout       int `json:"callout" koanf:"callout"`
	Snippet       int `json:"snippet" koanf:"snippet"`
	Promotion     int `json:"promotion" koanf:"promotion"`
	SnippetValues int `json:"snippetValues" koanf:"snippet_values"`
}

// DefaultLimits returns the per-entity extension caps used by the form
func DefaultLimits() Limits {
	return Limits{
		Call:          1,
		Sitelink:      8,
		Callout:       10,
		Snippet:       2,
		Promotion:     1,
		SnippetValues: 10,
	}
}

// For returns the cap for kind
func (l Limits) For(kind ExtensionKind) int {
	switch kind {
	case KindCall:
		return l.Call
	case KindSitelink:
		return l.Sitelink
	case KindCallout:
		return l.Callout
	case KindSnippet:
		return l.Snippet
	case KindPromotion:
		return l.Promotion
	}
	return 0
}

func (l Limits) check(kind ExtensionKind, count int) error {
	limit := l.For(kind)
	if limit > 0 && count >= limit {
		return &LimitError{Kind: kind, Limit: limit}
	}
	return nil
}

// NewBuild returns a fresh build holding one default campaign
func NewBuild(limits Limits) *Build {
	return &Build{
		Campaigns: []Campaign{NewCampaign(nil, limits)},
	}
}

// Rebuild replays src through the construction routines and returns the
// resulting tree. src is left untouched.
func Rebuild(src *Build, limits Limits) *Build {
	b := &Build{
		ClientName:       src.ClientName,
		ClientCID:        src.ClientCID,
		TrackingTemplate: src.TrackingTemplate,
		URLSuffix:        src.URLSuffix,
		Campaigns:        make([]Campaign, 0, len(src.Campaigns)),
	}
	for i := range src.Campaigns {
		b.Campaigns = append(b.Campaigns, NewCampaign(&src.Campaigns[i], limits))
	}
	return b
}

// NewCampaign is the single construction routine for campaigns. A nil src
// gives a blank campaign with one blank ad group; otherwise src is replayed
// item by item so loaded and interactively created campaigns share defaults.
func NewCampaign(src *Campaign, limits Limits) Campaign {
	c := Campaign{
		Settings: CampaignSettings{LocationOption: DefaultLocationOption},
		AdGroups: []AdGroup{},
		Extensions: ExtensionSet{
			Call:       []CallExt{},
			Callouts:   []CalloutExt{},
			Snippets:   []SnippetExt{},
			Promotions: []PromotionExt{},
		},
	}
	if src == nil {
		c.AdGroups = append(c.AdGroups, NewAdGroup(nil))
		return c
	}

	c.Settings = src.Settings
	if c.Settings.LocationOption == "" {
		c.Settings.LocationOption = DefaultLocationOption
	}
	c.Locations = src.Locations

	for i := range src.AdGroups {
		c.AdGroups = append(c.AdGroups, NewAdGroup(&src.AdGroups[i]))
	}
	for _, e := range src.Extensions.Items() {
		c.Extensions.add(e, limits)
	}
	return c
}

// NewAdGroup is the construction routine for ad groups
func NewAdGroup(src *AdGroup) AdGroup {
	if src == nil {
		return AdGroup{Sitelinks: []Sitelink{}}
	}
	ag := *src
	ag.Sitelinks = make([]Sitelink, len(src.Sitelinks))
	copy(ag.Sitelinks, src.Sitelinks)
	return ag
}

func (s *ExtensionSet) add(e Extension, limits Limits) {
	switch v := e.(type) {
	case CallExt:
		s.Call = append(s.Call, v)
	case CalloutExt:
		s.Callouts = append(s.Callouts, v)
	case SnippetExt:
		v.Values = normalizeSnippetValues(v.Values, limits.SnippetValues)
		s.Snippets = append(s.Snippets, v)
	case PromotionExt:
		s.Promotions = append(s.Promotions, v)
	}
}

func (s *ExtensionSet) remove(kind ExtensionKind, i int) error {
	if i < 0 || i >= s.Count(kind) {
		return ErrItemNotFound
	}
	switch kind {
	case KindCall:
		s.Call = append(s.Call[:i], s.Call[i+1:]...)
	case KindCallout:
		s.Callouts = append(s.Callouts[:i], s.Callouts[i+1:]...)
	case KindSnippet:
		s.Snippets = append(s.Snippets[:i], s.Snippets[i+1:]...)
	case KindPromotion:
		s.Promotions = append(s.Promotions[:i], s.Promotions[i+1:]...)
	}
	return nil
}

func emptyExtension(kind ExtensionKind) Extension {
	switch kind {
	case KindCall:
		return CallExt{}
	case KindCallout:
		return CalloutExt{}
	case KindSnippet:
		return SnippetExt{}
	case KindPromotion:
		return PromotionExt{}
	}
	return nil
}

func (b *Build) campaign(ci int) (*Campaign, error) {
	if ci < 0 || ci >= len(b.Campaigns) {
		return nil, ErrItemNotFound
	}
	return &b.Campaigns[ci], nil
}

func (b *Build) adGroup(ci, ai int) (*Campaign, *AdGroup, error) {
	c, err := b.campaign(ci)
	if err != nil {
		return nil, nil, err
	}
	if ai < 0 || ai >= len(c.AdGroups) {
		return nil, nil, ErrItemNotFound
	}
	return c, &c.AdGroups[ai], nil
}

// AddCampaign appends a blank campaign
func (b *Build) AddCampaign(limits Limits) {
	b.Campaigns = append(b.Campaigns, NewCampaign(nil, limits))
}

// RemoveCampaign removes campaign ci unless it is the last one
func (b *Build) RemoveCampaign(ci int) error {
	if _, err := b.campaign(ci); err != nil {
		return err
	}
	if len(b.Campaigns) <= 1 {
		return &CardinalityError{Entity: "campaign"}
	}
	b.Campaigns = append(b.Campaigns[:ci], b.Campaigns[ci+1:]...)
	return nil
}

// DuplicateCampaign appends a copy of campaign ci with its name marked as a copy
func (b *Build) DuplicateCampaign(ci int, limits Limits) error {
	c, err := b.campaign(ci)
	if err != nil {
		return err
	}
	dup := NewCampaign(c, limits)
	dup.Settings.Name += copySuffix
	b.Campaigns = append(b.Campaigns, dup)
	return nil
}

// AddAdGroup appends a blank ad group to campaign ci
func (b *Build) AddAdGroup(ci int) error {
	c, err := b.campaign(ci)
	if err != nil {
		return err
	}
	c.AdGroups = append(c.AdGroups, NewAdGroup(nil))
	return nil
}

// RemoveAdGroup removes ad group ai unless it is the campaign's last one
func (b *Build) RemoveAdGroup(ci, ai int) error {
	c, _, err := b.adGroup(ci, ai)
	if err != nil {
		return err
	}
	if len(c.AdGroups) <= 1 {
		return &CardinalityError{Entity: "ad group"}
	}
	c.AdGroups = append(c.AdGroups[:ai], c.AdGroups[ai+1:]...)
	return nil
}

// DuplicateAdGroup appends a copy of ad group ai to the same campaign
func (b *Build) DuplicateAdGroup(ci, ai int) error {
	c, ag, err := b.adGroup(ci, ai)
	if err != nil {
		return err
	}
	dup := NewAdGroup(ag)
	dup.Name += copySuffix
	c.AdGroups = append(c.AdGroups, dup)
	return nil
}

// AddExtension appends a blank campaign-scope extension of kind
func (b *Build) AddExtension(ci int, kind ExtensionKind, limits Limits) error {
	c, err := b.campaign(ci)
	if err != nil {
		return err
	}
	e := emptyExtension(kind)
	if e == nil {
		return ErrUnknownExtension
	}
	if err := limits.check(kind, c.Extensions.Count(kind)); err != nil {
		return err
	}
	c.Extensions.add(e, limits)
	return nil
}

// RemoveExtension removes campaign-scope extension ei of kind
func (b *Build) RemoveExtension(ci int, kind ExtensionKind, ei int) error {
	c, err := b.campaign(ci)
	if err != nil {
		return err
	}
	if emptyExtension(kind) == nil {
		return ErrUnknownExtension
	}
	return c.Extensions.remove(kind, ei)
}

// AddSitelink appends a blank sitelink to ad group ai
func (b *Build) AddSitelink(ci, ai int, limits Limits) error {
	_, ag, err := b.adGroup(ci, ai)
	if err != nil {
		return err
	}
	if err := limits.check(KindSitelink, len(ag.Sitelinks)); err != nil {
		return err
	}
	ag.Sitelinks = append(ag.Sitelinks, Sitelink{})
	return nil
}

// RemoveSitelink removes sitelink si from ad group ai
func (b *Build) RemoveSitelink(ci, ai, si int) error {
	_, ag, err := b.adGroup(ci, ai)
	if err != nil {
		return err
	}
	if si < 0 || si >= len(ag.Sitelinks) {
		return ErrItemNotFound
	}
	ag.Sitelinks = append(ag.Sitelinks[:si], ag.Sitelinks[si+1:]...)
	return nil
}

// Clone returns a deep copy of the build
func (b *Build) Clone() *Build {
	out := *b
	out.Campaigns = make([]Campaign, 0, len(b.Campaigns))
	for i := range b.Campaigns {
		out.Campaigns = append(out.Campaigns, cloneCampaign(&b.Campaigns[i]))
	}
	return &out
}

func cloneCampaign(c *Campaign) Campaign {
	out := *c
	out.AdGroups = make([]AdGroup, 0, len(c.AdGroups))
	for i := range c.AdGroups {
		out.AdGroups = append(out.AdGroups, NewAdGroup(&c.AdGroups[i]))
	}
	out.Extensions = ExtensionSet{
		Call:       append([]CallExt{}, c.Extensions.Call...),
		Callouts:   append([]CalloutExt{}, c.Extensions.Callouts...),
		Snippets:   append([]SnippetExt{}, c.Extensions.Snippets...),
		Promotions: append([]PromotionExt{}, c.Extensions.Promotions...),
	}
	return out
}

package build

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuild(t *testing.T) {
	b := NewBuild(DefaultLimits())

	require.Len(t, b.Campaigns, 1)
	c := b.Campaigns[0]
	assert.Equal(t, DefaultLocationOption, c.Settings.LocationOption)
	require.Len(t, c.AdGroups, 1)
	assert.NotNil(t, c.AdGroups[0].Sitelinks)
	assert.NotNil(t, c.Extensions.Call)
}

func TestNewCampaign_Replay(t *testing.T) {
	src := &Campaign{
		Settings: CampaignSettings{Name: "Brand"},
		AdGroups: nil,
		Extensions: ExtensionSet{
			Snippets: []SnippetExt{{Header: "Brands", Values: "a\n\n b \nc"}},
		},
	}
	c := NewCampaign(src, Limits{SnippetValues: 3})

	assert.Equal(t, DefaultLocationOption, c.Settings.LocationOption)
	assert.Empty(t, c.AdGroups, "replayed campaigns keep their own ad groups")
	require.Len(t, c.Extensions.Snippets, 1)
	assert.Equal(t, "a\nb", c.Extensions.Snippets[0].Values)
}

func TestNewCampaign_DoesNotAlias(t *testing.T) {
	src := &Campaign{AdGroups: []AdGroup{{Name: "x", Sitelinks: []Sitelink{{Text: "s"}}}}}
	c := NewCampaign(src, DefaultLimits())
	c.AdGroups[0].Sitelinks[0].Text = "changed"
	assert.Equal(t, "s", src.AdGroups[0].Sitelinks[0].Text)
}

func TestRemove_MinimumCardinality(t *testing.T) {
	b := NewBuild(DefaultLimits())

	err := b.RemoveCampaign(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMinimumCardinality))
	assert.EqualError(t, err, "you must have at least one campaign")

	err = b.RemoveAdGroup(0, 0)
	assert.True(t, errors.Is(err, ErrMinimumCardinality))
	assert.EqualError(t, err, "you must have at least one ad group")

	require.Len(t, b.Campaigns, 1)
	require.Len(t, b.Campaigns[0].AdGroups, 1)
}

func TestAddExtension_Limit(t *testing.T) {
	limits := DefaultLimits()
	b := NewBuild(limits)
	require.NoError(t, b.AddExtension(0, KindCall, limits))

	before, err := Encode(b)
	require.NoError(t, err)

	err = b.AddExtension(0, KindCall, limits)
	var limitErr *LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 1, limitErr.Limit)
	assert.True(t, errors.Is(err, ErrStructuralLimit))
	assert.EqualError(t, err, "only 1 of this extension type is allowed")

	after, err := Encode(b)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "refused edit must not change state")
}

func TestAddExtension_Unlimited(t *testing.T) {
	limits := Limits{}
	b := NewBuild(limits)
	for i := 0; i < 20; i++ {
		require.NoError(t, b.AddExtension(0, KindCallout, limits))
	}
	assert.Len(t, b.Campaigns[0].Extensions.Callouts, 20)
}

func TestAddExtension_UnknownKind(t *testing.T) {
	b := NewBuild(DefaultLimits())
	assert.ErrorIs(t, b.AddExtension(0, KindSitelink, DefaultLimits()), ErrUnknownExtension)
	assert.ErrorIs(t, b.AddExtension(0, "banner", DefaultLimits()), ErrUnknownExtension)
}

func TestSitelinks(t *testing.T) {
	limits := Limits{Sitelink: 2}
	b := NewBuild(limits)
	require.NoError(t, b.AddSitelink(0, 0, limits))
	require.NoError(t, b.AddSitelink(0, 0, limits))
	assert.ErrorIs(t, b.AddSitelink(0, 0, limits), ErrStructuralLimit)

	require.NoError(t, b.RemoveSitelink(0, 0, 1))
	assert.Len(t, b.Campaigns[0].AdGroups[0].Sitelinks, 1)
	assert.ErrorIs(t, b.RemoveSitelink(0, 0, 5), ErrItemNotFound)
}

func TestDuplicateCampaign(t *testing.T) {
	limits := DefaultLimits()
	b := NewBuild(limits)
	b.Campaigns[0].Settings.Name = "Spring Sale"
	b.Campaigns[0].AdGroups[0].Name = "Shoes"
	require.NoError(t, b.AddExtension(0, KindCallout, limits))

	require.NoError(t, b.DuplicateCampaign(0, limits))
	require.Len(t, b.Campaigns, 2)

	dup := b.Campaigns[1]
	assert.Equal(t, "Spring Sale (Copy)", dup.Settings.Name)
	assert.Equal(t, "Shoes", dup.AdGroups[0].Name)
	assert.Len(t, dup.Extensions.Callouts, 1)

	dup.AdGroups[0].Name = "changed"
	assert.Equal(t, "Shoes", b.Campaigns[0].AdGroups[0].Name)
}

func TestDuplicateAndRemoveAdGroup(t *testing.T) {
	b := NewBuild(DefaultLimits())
	b.Campaigns[0].AdGroups[0].Name = "Shoes"

	require.NoError(t, b.DuplicateAdGroup(0, 0))
	require.NoError(t, b.AddAdGroup(0))

	names := []string{}
	for _, ag := range b.Campaigns[0].AdGroups {
		names = append(names, ag.Name)
	}
	assert.Equal(t, []string{"Shoes", "Shoes (Copy)", ""}, names)

	require.NoError(t, b.RemoveAdGroup(0, 0))
	assert.Equal(t, "Shoes (Copy)", b.Campaigns[0].AdGroups[0].Name)
	assert.ErrorIs(t, b.RemoveAdGroup(0, 9), ErrItemNotFound)
	assert.ErrorIs(t, b.RemoveAdGroup(3, 0), ErrItemNotFound)
}

func TestRemoveExtension(t *testing.T) {
	limits := Limits{}
	b := NewBuild(limits)
	require.NoError(t, b.AddExtension(0, KindPromotion, limits))
	require.NoError(t, b.AddExtension(0, KindPromotion, limits))
	b.Campaigns[0].Extensions.Promotions[1].Item = "keep"

	require.NoError(t, b.RemoveExtension(0, KindPromotion, 0))
	assert.Equal(t, []PromotionExt{{Item: "keep"}}, b.Campaigns[0].Extensions.Promotions)
	assert.ErrorIs(t, b.RemoveExtension(0, KindPromotion, 3), ErrItemNotFound)
	assert.ErrorIs(t, b.RemoveExtension(0, "nope", 0), ErrUnknownExtension)
}

func TestExtensionSet_Items(t *testing.T) {
	s := ExtensionSet{
		Promotions: []PromotionExt{{Item: "p"}},
		Snippets:   []SnippetExt{{Header: "s"}},
		Callouts:   []CalloutExt{{Text: "c"}},
		Call:       []CallExt{{Phone: "1"}},
	}
	var kinds []ExtensionKind
	for _, e := range s.Items() {
		kinds = append(kinds, e.Kind())
	}
	want := []ExtensionKind{KindCall, KindCallout, KindSnippet, KindPromotion}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("Items() order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExtensionKind(t *testing.T) {
	k, err := ParseExtensionKind("snippet")
	require.NoError(t, err)
	assert.Equal(t, KindSnippet, k)

	_, err = ParseExtensionKind("banner")
	assert.ErrorIs(t, err, ErrUnknownExtension)
}

func TestSlugAndFileNames(t *testing.T) {
	tests := []struct {
		client   string
		wantJSON string
		wantCSV  string
	}{
		{client: "ACME Corp.", wantJSON: "acme_corp_.json", wantCSV: "google_ads_acme_corp__upload.csv"},
		{client: "", wantJSON: "campaign_build.json", wantCSV: "google_ads_campaign_upload.csv"},
		{client: "   ", wantJSON: "campaign_build.json", wantCSV: "google_ads_campaign_upload.csv"},
		{client: "Café 24", wantJSON: "caf__24.json", wantCSV: "google_ads_caf__24_upload.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.client, func(t *testing.T) {
			b := &Build{ClientName: tt.client}
			assert.Equal(t, tt.wantJSON, JSONFileName(b))
			assert.Equal(t, tt.wantCSV, CSVFileName(b))
		})
	}
}

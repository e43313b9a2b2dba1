package bulkcsv

import (
	"io"
	"strings"

	"adsbuilder/internal/domain/build"
)

const (
	campaignTypeSearch  = "Search"
	criterionKeyword    = "Keyword"
	criterionNegative   = "Negative"
	statusPaused        = "Paused"
	adTypeResponsive    = "Responsive search ad"
	networkGoogleSearch = "Google search"
	networkPartners     = "Search partners"
	networkDisplay      = "Display"
)

// Networks returns the ;-joined network list of a campaign
func Networks(s build.CampaignSettings) string {
	networks := []string{networkGoogleSearch}
	if s.SearchPartners {
		networks = append(networks, networkPartners)
	}
	if s.DisplayNetwork {
		networks = append(networks, networkDisplay)
	}
	return strings.Join(networks, ";")
}

// Records walks the build and returns every data row in upload order.
// The build is only read.
func Records(b *build.Build) []Record {
	var out []Record
	for i := range b.Campaigns {
		out = appendCampaign(out, &b.Campaigns[i])
	}
	return out
}

func appendCampaign(out []Record, c *build.Campaign) []Record {
	name := c.Settings.Name

	out = append(out, Record{
		ColCampaign:        name,
		ColCampaignStatus:  c.Settings.Status,
		ColBudget:          c.Settings.Budget,
		ColCampaignType:    campaignTypeSearch,
		ColNetworks:        Networks(c.Settings),
		ColBidStrategyType: c.Settings.BidStrategy,
	})

	for _, loc := range build.SplitLines(c.Locations) {
		out = append(out, Record{ColCampaign: name, ColLocation: loc})
	}
	for _, sch := range build.SplitLines(c.Settings.AdSchedule) {
		out = append(out, Record{ColCampaign: name, ColAdSchedule: sch})
	}
	for _, line := range build.SplitLines(c.Settings.CampaignNegatives) {
		kw := build.ParseKeyword(line)
		out = append(out, Record{
			ColCampaign:      name,
			ColKeyword:       kw.Text,
			ColMatchType:     string(kw.MatchType),
			ColCriterionType: criterionNegative,
		})
	}

	for _, ext := range c.Extensions.Items() {
		rec := Record{ColCampaign: name}
		switch e := ext.(type) {
		case build.CallExt:
			rec[ColPhoneNumber] = e.Phone
			rec[ColCountryOfPhone] = e.Country
		case build.CalloutExt:
			rec[ColCalloutText] = e.Text
		case build.SnippetExt:
			rec[ColHeader] = e.Header
			rec[ColSnippetValues] = build.SnippetValues(e.Values)
		case build.PromotionExt:
			rec[ColPromotionItem] = e.Item
			rec[ColPromotionFinalURL] = e.URL
			rec[ColPromotionType] = e.Type
			rec[ColPromotionValue] = e.Value
			rec[ColPromotionOccasion] = e.Occasion
		}
		out = append(out, rec)
	}

	for i := range c.AdGroups {
		out = appendAdGroup(out, name, &c.AdGroups[i])
	}
	return out
}

func appendAdGroup(out []Record, campaign string, ag *build.AdGroup) []Record {
	ad := Record{
		ColCampaign:      campaign,
		ColAdGroup:       ag.Name,
		ColAdGroupStatus: statusPaused,
		ColFinalURL:      ag.FinalURL,
		ColAdType:        adTypeResponsive,
		ColAdStatus:      statusPaused,
	}
	for i, h := range build.FirstN(build.SplitLines(ag.Headlines), build.MaxHeadlines) {
		ad[HeadlineColumn(i+1)] = h
	}
	for i, d := range build.FirstN(build.SplitLines(ag.Descriptions), build.MaxDescriptions) {
		ad[DescriptionColumn(i+1)] = d
	}
	out = append(out, ad)

	out = appendCriteria(out, campaign, ag.Name, ag.Keywords, criterionKeyword)
	out = appendCriteria(out, campaign, ag.Name, ag.AdgroupNegatives, criterionNegative)

	for _, sl := range ag.Sitelinks {
		out = append(out, Record{
			ColCampaign:         campaign,
			ColAdGroup:          ag.Name,
			ColLinkText:         sl.Text,
			ColFinalURL:         sl.URL,
			ColDescriptionLine1: sl.Desc1,
			ColDescriptionLine2: sl.Desc2,
		})
	}
	return out
}

func appendCriteria(out []Record, campaign, adGroup, text, criterion string) []Record {
	for _, line := range build.SplitLines(text) {
		kw := build.ParseKeyword(line)
		out = append(out, Record{
			ColCampaign:      campaign,
			ColAdGroup:       adGroup,
			ColKeyword:       kw.Text,
			ColMatchType:     string(kw.MatchType),
			ColCriterionType: criterion,
		})
	}
	return out
}

// Rows returns the header row followed by every data row, each rendered.
func Rows(b *build.Build) []string {
	recs := Records(b)
	rows := make([]string, 0, len(recs)+1)
	rows = append(rows, strings.Join(headers, ","))
	for _, rec := range recs {
		rows = append(rows, AssembleRow(rec, headers))
	}
	return rows
}

// Export renders the complete upload file. Rows are separated by \n with
// no trailing newline.
func Export(b *build.Build) string {
	return strings.Join(Rows(b), "\n")
}

// WriteTo writes the upload file for b to w
func WriteTo(w io.Writer, b *build.Build) (int64, error) {
	n, err := io.WriteString(w, Export(b))
	return int64(n), err
}

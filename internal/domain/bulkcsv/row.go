// Package bulkcsv flattens a campaign build into the bulk upload CSV format.
package bulkcsv

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ColCampaign          = "Campaign"
	ColCampaignStatus    = "Campaign status"
	ColBudget            = "Budget"
	ColCampaignType      = "Campaign Type"
	ColNetworks          = "Networks"
	ColBidStrategyType   = "Bid Strategy Type"
	ColAdGroup           = "Ad Group"
	ColAdGroupStatus     = "Ad group status"
	ColKeyword           = "Keyword"
	ColMatchType         = "Match type"
	ColCriterionType     = "Criterion Type"
	ColFinalURL          = "Final URL"
	ColAdType            = "Ad type"
	ColAdStatus          = "Ad status"
	ColLinkText          = "Link Text"
	ColDescriptionLine1  = "Description Line 1"
	ColDescriptionLine2  = "Description Line 2"
	ColHeader            = "Header"
	ColSnippetValues     = "Snippet Values"
	ColCalloutText       = "Callout text"
	ColPhoneNumber       = "Phone Number"
	ColCountryOfPhone    = "Country of Phone"
	ColPromotionItem     = "Promotion item"
	ColPromotionFinalURL = "Promotion final URL"
	ColPromotionType     = "Promotion type"
	ColPromotionValue    = "Promotion value"
	ColPromotionOccasion = "Promotion occasion"
	ColLocation          = "Location"
	ColAdSchedule        = "Ad schedule"
)

// HeaderCount is the number of columns in every row
const HeaderCount = 48

var headers = buildHeaders()

func buildHeaders() []string {
	h := []string{
		ColCampaign, ColCampaignStatus, ColBudget, ColCampaignType, ColNetworks, ColBidStrategyType,
		ColAdGroup, ColAdGroupStatus, ColKeyword, ColMatchType, ColCriterionType, ColFinalURL,
		ColAdType, ColAdStatus,
	}
	for i := 1; i <= 15; i++ {
		h = append(h, HeadlineColumn(i))
	}
	for i := 1; i <= 4; i++ {
		h = append(h, DescriptionColumn(i))
	}
	return append(h,
		ColLinkText, ColDescriptionLine1, ColDescriptionLine2,
		ColHeader, ColSnippetValues, ColCalloutText, ColPhoneNumber, ColCountryOfPhone,
		ColPromotionItem, ColPromotionFinalURL, ColPromotionType, ColPromotionValue, ColPromotionOccasion,
		ColLocation, ColAdSchedule,
	)
}

// Headers returns the fixed column order of the upload file
func Headers() []string {
	out := make([]string, len(headers))
	copy(out, headers)
	return out
}

// HeadlineColumn returns the column name of the i-th (1-based) headline
func HeadlineColumn(i int) string { return "Headline " + strconv.Itoa(i) }

// DescriptionColumn returns the column name of the i-th (1-based) description
func DescriptionColumn(i int) string { return "Description " + strconv.Itoa(i) }

// Record is a sparse row: only the columns relevant to the row are set.
type Record map[string]string

// EncodeField renders a scalar as a CSV field. Fields containing a comma,
// a double quote or a newline are quoted with inner quotes doubled.
func EncodeField(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
	case string:
		s = t
	case bool:
		if t {
			s = "true"
		}
	default:
		s = fmt.Sprint(t)
	}
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// AssembleRow renders rec in header order. Missing columns are empty.
func AssembleRow(rec Record, headers []string) string {
	fields := make([]string, len(headers))
	for i, h := range headers {
		fields[i] = EncodeField(rec[h])
	}
	return strings.Join(fields, ",")
}

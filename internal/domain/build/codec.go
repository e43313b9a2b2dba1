package build

import (
	"bytes"
	"encoding/json"
)

type wireBuild struct {
	ClientName       string          `json:"clientName"`
	ClientCID        string          `json:"clientCid"`
	TrackingTemplate string          `json:"trackingTemplate"`
	URLSuffix        string          `json:"urlSuffix"`
	Campaigns        json.RawMessage `json:"campaigns"`
}

type wireCampaign struct {
	Settings   *CampaignSettings `json:"settings"`
	Locations  string            `json:"locations"`
	AdGroups   []AdGroup         `json:"adGroups"`
	Extensions ExtensionSet      `json:"extensions"`
}

// Encode serializes the build as indented JSON. Empty collections are
// written as [] so Decode rebuilds the same structure.
func Encode(b *Build) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b.Clone()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a saved build. The whole document is validated before a
// tree is returned, so callers can swap state only on success.
func Decode(data []byte, limits Limits) (*Build, error) {
	var wb wireBuild
	if err := json.Unmarshal(data, &wb); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Err: err}
	}

	raw := bytes.TrimSpace(wb.Campaigns)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, &ParseError{Reason: "campaigns is missing"}
	}
	if raw[0] != '[' {
		return nil, &ParseError{Reason: "campaigns is not a list"}
	}

	var campaigns []wireCampaign
	if err := json.Unmarshal(raw, &campaigns); err != nil {
		return nil, &ParseError{Reason: "invalid campaign", Err: err}
	}

	src := &Build{
		ClientName:       wb.ClientName,
		ClientCID:        wb.ClientCID,
		TrackingTemplate: wb.TrackingTemplate,
		URLSuffix:        wb.URLSuffix,
		Campaigns:        make([]Campaign, 0, len(campaigns)),
	}
	for _, wc := range campaigns {
		c := Campaign{
			Locations:  wc.Locations,
			AdGroups:   wc.AdGroups,
			Extensions: wc.Extensions,
		}
		if wc.Settings != nil {
			c.Settings = *wc.Settings
		}
		src.Campaigns = append(src.Campaigns, c)
	}
	return Rebuild(src, limits), nil
}

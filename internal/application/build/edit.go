package build

import (
	"errors"
	"fmt"

	domain "adsbuilder/internal/domain/build"
)

// EditAction names one editor operation on a build tree
type EditAction string

const (
	ActionAddCampaign       EditAction = "add_campaign"
	ActionRemoveCampaign    EditAction = "remove_campaign"
	ActionDuplicateCampaign EditAction = "duplicate_campaign"
	ActionAddAdGroup        EditAction = "add_ad_group"
	ActionRemoveAdGroup     EditAction = "remove_ad_group"
	ActionDuplicateAdGroup  EditAction = "duplicate_ad_group"
	ActionAddExtension      EditAction = "add_extension"
	ActionRemoveExtension   EditAction = "remove_extension"
	ActionAddSitelink       EditAction = "add_sitelink"
	ActionRemoveSitelink    EditAction = "remove_sitelink"
)

// ErrUnknownAction is returned for an EditOp whose action is not recognised
var ErrUnknownAction = errors.New("unknown edit action")

// EditOp addresses a node by position. Campaign and AdGroup are indices
// into the tree; Item indexes the extension or sitelink list being edited.
type EditOp struct {
	Action   EditAction           `json:"action"`
	Campaign int                  `json:"campaign"`
	AdGroup  int                  `json:"adGroup"`
	Item     int                  `json:"item"`
	Kind     domain.ExtensionKind `json:"kind,omitempty"`
}

// Apply runs the operation against b
func (op EditOp) Apply(b *domain.Build, limits domain.Limits) error {
	switch op.Action {
	case ActionAddCampaign:
		b.AddCampaign(limits)
		return nil
	case ActionRemoveCampaign:
		return b.RemoveCampaign(op.Campaign)
	case ActionDuplicateCampaign:
		return b.DuplicateCampaign(op.Campaign, limits)
	case ActionAddAdGroup:
		return b.AddAdGroup(op.Campaign)
	case ActionRemoveAdGroup:
		return b.RemoveAdGroup(op.Campaign, op.AdGroup)
	case ActionDuplicateAdGroup:
		return b.DuplicateAdGroup(op.Campaign, op.AdGroup)
	case ActionAddExtension:
		return b.AddExtension(op.Campaign, op.Kind, limits)
	case ActionRemoveExtension:
		return b.RemoveExtension(op.Campaign, op.Kind, op.Item)
	case ActionAddSitelink:
		return b.AddSitelink(op.Campaign, op.AdGroup, limits)
	case ActionRemoveSitelink:
		return b.RemoveSitelink(op.Campaign, op.AdGroup, op.Item)
	}
	return fmt.Errorf("%w %q", ErrUnknownAction, op.Action)
}

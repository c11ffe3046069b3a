package extract

import (
	"github.com/sdcforms/sdc-extract-go/r4"
)

// FindItemByLinkID returns the first response item matching linkID in
// depth-first order: each item is tested before its children, and an item's
// subtree is exhausted before the next sibling is considered. A nil or
// empty item slice yields nil.
func FindItemByLinkID(items []r4.QuestionnaireResponseItem, linkID string) *r4.QuestionnaireResponseItem {
	for i := range items {
		if items[i].LinkID == linkID {
			return &items[i]
		}
		if found := FindItemByLinkID(items[i].Item, linkID); found != nil {
			return found
		}
	}
	return nil
}

package handler

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	plainPolicy = bluemonday.StrictPolicy()
	richPolicy  = bluemonday.UGCPolicy()
)

// sanitizeProduct strips markup from product text before it reaches the
// catalog. Descriptions keep basic formatting; names and categories are
// reduced to plain text.
func sanitizeProduct(req *productRequest) {
	req.Name = strings.TrimSpace(plainPolicy.Sanitize(req.Name))
	req.Category = strings.TrimSpace(plainPolicy.Sanitize(req.Category))
	req.Description = strings.TrimSpace(richPolicy.Sanitize(req.Description))
}

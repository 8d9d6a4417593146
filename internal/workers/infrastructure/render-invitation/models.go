// internal/workers/infrastructure/render-invitation/models.go
package renderinvitation

import (
	"html/template"

	"influencer-outreach/internal/common/config"
)

// htmlData is what the HTML template sees. Body is already converted to
// markup and inserted without escaping.
type htmlData struct {
	Name  string
	Body  template.HTML
	Event config.EventConfig
}

type textData struct {
	Name  string
	Body  string
	Event config.EventConfig
}

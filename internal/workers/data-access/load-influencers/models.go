package loadinfluencers

import (
	"influencer-outreach/internal/common/logger"
	"influencer-outreach/internal/models"
)

// Input overrides the configured file location for one call. Empty fields
// fall back to the service config.
type Input struct {
	Path string `json:"path,omitempty"`
}

type Output struct {
	Path       string               `json:"path"`
	Records    models.InfluencerSet `json:"records"`
	Categories []string             `json:"categories"`
	TotalRows  int                  `json:"totalRows"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}

package entities

// DataSource identifies where a returned value came from
type DataSource string

const (
	DataSourceLive     DataSource = "live"
	DataSourceCache    DataSource = "cache"
	DataSourceFallback DataSource = "fallback"
)

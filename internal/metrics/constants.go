package metrics

// Metric names
const (
	MetricNameAttackResolutions  = "slay_attack_resolutions_total"
	MetricNamePropertiesLearned  = "slay_properties_learned_total"
	MetricNameSlayCacheLookups   = "slay_cache_lookups_total"
	MetricNameSlayCacheEntries   = "slay_cache_entries"
	MetricNameLoreRecordsFlushed = "lore_records_flushed_total"
	MetricNameHTTPRequestsTotal  = "http_requests_total"
)

// Metric help text
const (
	HelpTextAttackResolutions  = "Total number of attack multiplier resolutions by winning source"
	HelpTextPropertiesLearned  = "Total number of item brands and slays learned by the player"
	HelpTextSlayCacheLookups   = "Total number of slay cache lookups by result"
	HelpTextSlayCacheEntries   = "Number of flag combinations in the slay cache"
	HelpTextLoreRecordsFlushed = "Total number of monster lore records written to storage"
	HelpTextHTTPRequestsTotal  = "Total number of HTTP requests"
)

// Label names
const (
	LabelSource = "source"
	LabelReal   = "real"
	LabelKind   = "kind"
	LabelResult = "result"
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
)

// Label values
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
	KindBrand  = "brand"
	KindSlay   = "slay"
)

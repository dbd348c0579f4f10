// internal/catalog/domain.go
package catalog

// MediaItem represents a DVD in the home collection. There is one physical copy per item.
type MediaItem struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Synopsis   string `json:"synopsis"`
	Director   string `json:"director"`
	LeadActor  string `json:"lead_actor"`
	Genre      Genre  `json:"genre"`
	MinimumAge int    `json:"minimum_age"`
}

// MediaItemInput carries the fields needed to register a MediaItem.
type MediaItemInput struct {
	Title      string `json:"title"`
	Synopsis   string `json:"synopsis"`
	Director   string `json:"director"`
	LeadActor  string `json:"lead_actor"`
	Genre      Genre  `json:"genre"`
	MinimumAge int    `json:"minimum_age"`
}

// AggregateType tags catalog events in the event journal.
const AggregateType = "media_item"

// MediaItemRegisteredEvent is published when a new item is added.
type MediaItemRegisteredEvent struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Genre string `json:"genre"`
}

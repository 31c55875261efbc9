package publishers

import (
	"strings"
	"time"
)

// EventType names download events on the wire.
const EventType = "asset.downloaded"

// Event announces a completed download.
type Event struct {
	AssetID      string    `json:"asset_id"`
	AssetType    string    `json:"asset_type"`
	SizeCode     string    `json:"size_code"`
	DownloadID   string    `json:"download_id"`
	Path         string    `json:"path"`
	ContentType  string    `json:"content_type"`
	Bytes        int       `json:"bytes"`
	Mode         string    `json:"mode"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// NewEvent constructs an Event stamped with the current UTC time.
func NewEvent(assetType, assetID, sizeCode, downloadID string) Event {
	return Event{
		AssetID:      assetID,
		AssetType:    assetType,
		SizeCode:     sizeCode,
		DownloadID:   downloadID,
		DownloadedAt: time.Now().UTC(),
	}
}

// attributes are the routing attributes attached to queue and topic messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"asset_type": e.AssetType,
		"asset_id":   e.AssetID,
		"size_code":  e.SizeCode,
	}
}

// Key identifies the delivery so sinks can drop duplicates of the same download.
func (e Event) Key() string {
	return strings.Join([]string{e.AssetType, e.AssetID, e.SizeCode, e.DownloadID}, ":")
}

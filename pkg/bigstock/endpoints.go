package bigstock

import (
	"context"
)

// Asset and collection type names used in endpoint paths.
const (
	TypeImage    = "image"
	TypeVideo    = "video"
	TypeLightbox = "lightbox"
	TypeClipbox  = "clipbox"

	defaultLanguage = "en"
)

// Search runs a search with the caller's parameters, in order.
func (c *Client) Search(ctx context.Context, params Params) Result {
	return c.get(ctx, "search", c.endpoint("search/?"+params.Encode()))
}

// GetAsset fetches asset details. An empty typ means TypeImage.
func (c *Client) GetAsset(ctx context.Context, id, typ string) Result {
	if typ == "" {
		typ = TypeImage
	}
	return c.get(ctx, "asset", c.endpoint(typ+"/"+id))
}

// GetImage fetches image details.
func (c *Client) GetImage(ctx context.Context, id string) Result {
	return c.GetAsset(ctx, id, TypeImage)
}

// GetVideo fetches video details.
func (c *Client) GetVideo(ctx context.Context, id string) Result {
	return c.GetAsset(ctx, id, TypeVideo)
}

// GetCollections lists the account's collections of typ. An empty typ means TypeImage.
func (c *Client) GetCollections(ctx context.Context, typ string) Result {
	if typ == "" {
		typ = TypeImage
	}
	return c.get(ctx, "collections", c.endpoint(typ+"/?auth_key="+c.GenerateAuthKey("")))
}

// GetCollection fetches one collection. The auth key for id replaces any
// auth_key already present in params; params itself is not modified.
func (c *Client) GetCollection(ctx context.Context, typ, id string, params Params) Result {
	q := params.With("auth_key", c.GenerateAuthKey(id))
	return c.get(ctx, "collection", c.endpoint(typ+"/"+id+"/?"+q.Encode()))
}

// GetLightboxes lists the account's lightboxes.
func (c *Client) GetLightboxes(ctx context.Context) Result {
	return c.GetCollections(ctx, TypeLightbox)
}

// GetLightbox fetches one lightbox.
func (c *Client) GetLightbox(ctx context.Context, id string, params Params) Result {
	return c.GetCollection(ctx, TypeLightbox, id, params)
}

// GetClipboxes lists the account's clipboxes. The API serves the list under
// the video path while single clipboxes live under clipbox.
func (c *Client) GetClipboxes(ctx context.Context) Result {
	return c.GetCollections(ctx, TypeVideo)
}

// GetClipbox fetches one clipbox.
func (c *Client) GetClipbox(ctx context.Context, id string, params Params) Result {
	return c.GetCollection(ctx, TypeClipbox, id, params)
}

// GetCategories lists categories in lang. An empty lang means "en".
func (c *Client) GetCategories(ctx context.Context, lang string) Result {
	if lang == "" {
		lang = defaultLanguage
	}
	return c.get(ctx, "categories", c.endpoint("categories/?"+NewParams("language", lang).Encode()))
}

// GetPurchase purchases asset id at sizeCode (usually s, m, l, xl). An empty
// typ means TypeImage.
func (c *Client) GetPurchase(ctx context.Context, id, sizeCode, typ string) Result {
	if typ == "" {
		typ = TypeImage
	}
	q := NewParams(
		typ+"_id", id,
		"size_code", sizeCode,
		"auth_key", c.GenerateAuthKey(id),
	)
	return c.get(ctx, "purchase", c.endpoint("purchase/?"+q.Encode()))
}

// GetDownloadURL builds the signed download URL without calling the API.
func (c *Client) GetDownloadURL(downloadID string) string {
	q := NewParams(
		"auth_key", c.GenerateAuthKey(downloadID),
		"download_id", downloadID,
	)
	return c.endpoint("download?" + q.Encode())
}

// Download fetches the file behind downloadID. A successful download is
// usually a KindRaw result holding the file bytes.
func (c *Client) Download(ctx context.Context, downloadID string) Result {
	return c.get(ctx, "download", c.GetDownloadURL(downloadID))
}

package rest

import (
	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// wireCategories are the categories the handshake advertises when the
// application does not restrict itself to a subset.
var wireCategories = []effect.Category{
	effect.CategoryKeyboard,
	effect.CategoryMouse,
	effect.CategoryHeadset,
	effect.CategoryMousepad,
	effect.CategoryKeypad,
	effect.CategoryLink,
}

// handshakeRequest is the application descriptor sent in the discovery POST.
type handshakeRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Author          handshakeAuthor `json:"author"`
	DeviceSupported []string        `json:"device_supported"`
	Category        string          `json:"category"`
}

type handshakeAuthor struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func newHandshakeRequest(app backend.AppInfo) handshakeRequest {
	categories := app.SupportedDevices
	if len(categories) == 0 {
		categories = wireCategories
	}
	supported := make([]string, 0, len(categories))
	for _, c := range categories {
		supported = append(supported, c.String())
	}

	category := "application"
	if app.Gaming {
		category = "game"
	}

	return handshakeRequest{
		Title:       app.Title,
		Description: app.Description,
		Author: handshakeAuthor{
			Name:    app.Author.Name,
			Contact: app.Author.Contact,
		},
		DeviceSupported: supported,
		Category:        category,
	}
}

// handshakeResponse carries the session id and the discovered base address.
type handshakeResponse struct {
	Session int64  `json:"session"`
	URI     string `json:"uri"`
}

// resultResponse is the logical result body of teardown and effect calls.
type resultResponse struct {
	Result bool `json:"result"`
}

// effectIDRequest addresses an existing effect by id.
type effectIDRequest struct {
	ID effect.ID `json:"id"`
}

// createEffectRequest creates an effect of the given kind. Param is the
// opaque payload, forwarded unchanged; omitted for kinds without one.
type createEffectRequest struct {
	Effect effect.Kind `json:"effect"`
	Param  any         `json:"param,omitempty"`
}

// createEffectResponse carries the logical result and, on success, the id of
// the created effect. A missing id on a successful result is a logical
// failure.
type createEffectResponse struct {
	Result bool       `json:"result"`
	ID     *effect.ID `json:"effectId"`
}

// heartbeatResponse acknowledges a keep-alive tick.
type heartbeatResponse struct {
	Tick int64 `json:"tick"`
}

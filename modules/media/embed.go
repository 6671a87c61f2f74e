package media

import (
	"net/url"
	"strings"

	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/dom"
	"github.com/specialistvlad/blockpaste/internal/plugin"
	"golang.org/x/net/html"
)

// Provider identifies the service behind an embed URL.
type Provider struct {
	Type string
	ID   string
	URL  string
}

// ParseEmbed builds the embed root element from an <iframe>.
func ParseEmbed(el *html.Node) (plugin.Result, error) {
	src := strings.TrimSpace(dom.Attr(el, "src"))
	if src == "" {
		return plugin.Result{}, nil
	}

	p := DetectProvider(src)
	props := map[string]any{
		document.PropNodeType: string(document.NodeTypeVoid),
		"provider": map[string]any{
			"type": nullable(p.Type),
			"id":   p.ID,
			"url":  p.URL,
		},
		"sizes": map[string]any{
			"width":  dimension(el, "width", DefaultWidth),
			"height": dimension(el, "height", DefaultEmbedHeight),
		},
	}
	return plugin.Result{Element: document.NewElement("embed", props)}, nil
}

// DetectProvider recognises YouTube, Vimeo, Dailymotion, Loom, Wistia,
// Figma and Twitter URLs. Anything else has an empty Type and keeps the raw
// URL.
func DetectProvider(raw string) Provider {
	p := Provider{URL: raw}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return p
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	last := ""
	if len(segments) > 0 {
		last = segments[len(segments)-1]
	}

	switch {
	case host == "youtu.be":
		p.Type, p.ID = "youtube", last
	case host == "youtube.com" || host == "m.youtube.com" || host == "youtube-nocookie.com":
		p.Type = "youtube"
		if v := u.Query().Get("v"); v != "" {
			p.ID = v
		} else {
			p.ID = last
		}
	case host == "vimeo.com" || host == "player.vimeo.com":
		p.Type, p.ID = "vimeo", last
	case host == "dailymotion.com" || host == "dai.ly":
		p.Type, p.ID = "dailymotion", last
	case host == "loom.com":
		p.Type, p.ID = "loom", last
	case strings.HasSuffix(host, "wistia.com") || strings.HasSuffix(host, "wistia.net"):
		p.Type, p.ID = "wistia", last
	case host == "figma.com":
		p.Type, p.ID = "figma", raw
	case host == "twitter.com" || host == "x.com":
		p.Type, p.ID = "twitter", last
	}
	return p
}

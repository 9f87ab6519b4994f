package model

import "encoding/xml"

const (
	NamespaceItunes  = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	NamespaceAtom    = "http://www.w3.org/2005/Atom"
	NamespacePodcast = "https://podcastindex.org/namespace/1.0"

	Version       = "0.3"
	GeneratorName = "smotrim.ru podcast generator v" + Version
	Language      = "ru-RU"
	EnclosureType = "audio/mpeg"
)

// Rss is the feed document. Namespaced elements carry their prefix in
// the tag and the prefixes are declared on the root element.
type Rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Itunes  string   `xml:"xmlns:itunes,attr"`
	Atom    string   `xml:"xmlns:atom,attr"`
	Podcast string   `xml:"xmlns:podcast,attr"`
	Channel Channel  `xml:"channel"`
}

type Channel struct {
	Title       string          `xml:"title"`
	Link        string          `xml:"link"`
	Description string          `xml:"description"`
	Language    string          `xml:"language"`
	Generator   string          `xml:"generator"`
	AtomLink    AtomLink        `xml:"atom:link"`
	Locked      string          `xml:"podcast:locked"`
	Author      string          `xml:"itunes:author"`
	Explicit    ItunesExplicit  `xml:"itunes:explicit"`
	Owner       ItunesOwner     `xml:"itunes:owner"`
	Image       ItunesImage     `xml:"itunes:image"`
	Category    ItunesCategory  `xml:"itunes:category"`
	Funding     *PodcastFunding `xml:"podcast:funding,omitempty"`
	Items       []Item          `xml:"item"`
}

type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type ItunesOwner struct {
	Name  string `xml:"itunes:name"`
	Email string `xml:"itunes:email"`
}

type ItunesImage struct {
	Href string `xml:"href,attr"`
}

// ItunesCategory nests at most one sub-category.
type ItunesCategory struct {
	Text        string          `xml:"text,attr"`
	Subcategory *ItunesCategory `xml:"itunes:category,omitempty"`
}

type PodcastFunding struct {
	URL  string `xml:"url,attr"`
	Text string `xml:",chardata"`
}

type Item struct {
	Title       string         `xml:"title"`
	Description string         `xml:"description"`
	GUID        GUID           `xml:"guid"`
	PubDate     ItunesTime     `xml:"pubDate"`
	Enclosure   Enclosure      `xml:"enclosure"`
	Duration    ItunesDuration `xml:"itunes:duration"`
	Image       *ItunesImage   `xml:"itunes:image,omitempty"`
}

type GUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Text        string `xml:",chardata"`
}

type Enclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

package content

import "time"

// Date is a publish date as written in front matter. It accepts quoted
// strings as well as native TOML and YAML dates, keeping the text as found.
type Date string

// UnmarshalText stores text unchanged.
func (d *Date) UnmarshalText(text []byte) error {
	*d = Date(text)
	return nil
}

// Time parses d with ParseDate.
func (d Date) Time() (time.Time, error) {
	return ParseDate(string(d))
}

// Metadata is the front matter of a content unit.
type Metadata struct {
	Title           string   `toml:"title" yaml:"title" json:"title"`
	PubDate         Date     `toml:"pubdate" yaml:"pubdate" json:"pubdate"`
	Lede            string   `toml:"lede" yaml:"lede" json:"lede"`
	Published       bool     `toml:"published" yaml:"published" json:"published"`
	PID             string   `toml:"pid" yaml:"pid" json:"pid"`
	ContentEncoding string   `toml:"contentEncoding" yaml:"contentEncoding" json:"contentEncoding"`
	ResourceType    string   `toml:"resourceType" yaml:"resourceType" json:"resourceType"`
	FeaturedImage   string   `toml:"featuredImage" yaml:"featuredImage" json:"featuredImage,omitempty"`
	Tags            []string `toml:"tags" yaml:"tags" json:"tags"`
	ImageAlt        string   `toml:"imageAlt" yaml:"imageAlt" json:"imageAlt,omitempty"`
	Layout          string   `toml:"layout" yaml:"layout" json:"layout,omitempty"` // Page template override
}

// Summary is the listing projection of Metadata.
type Summary struct {
	Title           string   `json:"title"`
	PubDate         string   `json:"pubdate"`
	Lede            string   `json:"lede"`
	Published       bool     `json:"published"`
	PID             string   `json:"pid"`
	ContentEncoding string   `json:"contentEncoding"`
	ResourceType    string   `json:"resourceType"`
	FeaturedImage   string   `json:"featuredImage"`
	Tags            []string `json:"tags"`
	ImageAlt        string   `json:"imageAlt"`
}

// Summarize projects the listing fields of m.
func (m *Metadata) Summarize() Summary {
	tags := make([]string, len(m.Tags))
	copy(tags, m.Tags)
	return Summary{
		Title:           m.Title,
		PubDate:         string(m.PubDate),
		Lede:            m.Lede,
		Published:       m.Published,
		PID:             m.PID,
		ContentEncoding: m.ContentEncoding,
		ResourceType:    m.ResourceType,
		FeaturedImage:   m.FeaturedImage,
		Tags:            tags,
		ImageAlt:        m.ImageAlt,
	}
}

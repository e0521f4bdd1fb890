package fcpxml

import "encoding/xml"

// Version is the FCPXML document version written.
const Version = "1.11"

type Document struct {
	XMLName   xml.Name  `xml:"fcpxml"`
	Version   string    `xml:"version,attr"`
	Resources Resources `xml:"resources"`
	Library   Library   `xml:"library"`
}

type Resources struct {
	Formats []Format `xml:"format"`
	Assets  []Asset  `xml:"asset,omitempty"`
	Effects []Effect `xml:"effect,omitempty"`
}

type Format struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr,omitempty"`
	FrameDuration string `xml:"frameDuration,attr,omitempty"`
	Width         string `xml:"width,attr,omitempty"`
	Height        string `xml:"height,attr,omitempty"`
	ColorSpace    string `xml:"colorSpace,attr,omitempty"`
}

type Asset struct {
	ID            string   `xml:"id,attr"`
	Name          string   `xml:"name,attr"`
	UID           string   `xml:"uid,attr"`
	Start         string   `xml:"start,attr"`
	Duration      string   `xml:"duration,attr"`
	HasVideo      string   `xml:"hasVideo,attr,omitempty"`
	Format        string   `xml:"format,attr,omitempty"`
	HasAudio      string   `xml:"hasAudio,attr,omitempty"`
	AudioSources  string   `xml:"audioSources,attr,omitempty"`
	AudioChannels string   `xml:"audioChannels,attr,omitempty"`
	AudioRate     string   `xml:"audioRate,attr,omitempty"`
	MediaRep      MediaRep `xml:"media-rep"`
}

type MediaRep struct {
	Kind string `xml:"kind,attr"`
	Src  string `xml:"src,attr"`
}

// Effect is a title template referenced by <title ref="...">.
type Effect struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	UID  string `xml:"uid,attr,omitempty"`
}

type Library struct {
	Events []Event `xml:"event"`
}

type Event struct {
	Name     string    `xml:"name,attr"`
	UID      string    `xml:"uid,attr,omitempty"`
	Projects []Project `xml:"project"`
}

type Project struct {
	Name     string   `xml:"name,attr"`
	UID      string   `xml:"uid,attr,omitempty"`
	Sequence Sequence `xml:"sequence"`
}

type Sequence struct {
	Format      string `xml:"format,attr"`
	Duration    string `xml:"duration,attr"`
	TCStart     string `xml:"tcStart,attr"`
	TCFormat    string `xml:"tcFormat,attr"`
	AudioLayout string `xml:"audioLayout,attr"`
	AudioRate   string `xml:"audioRate,attr"`
	Spine       Spine  `xml:"spine"`
}

// Spine holds AssetClip and Gap values in record order.
type Spine struct {
	Items []any
}

// MarshalXML writes the items in slice order; the spine is magnetic, so
// order is position.
func (s Spine) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, item := range s.Items {
		if err := e.Encode(item); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

type AssetClip struct {
	XMLName   xml.Name `xml:"asset-clip"`
	Ref       string   `xml:"ref,attr"`
	Offset    string   `xml:"offset,attr"`
	Name      string   `xml:"name,attr"`
	Start     string   `xml:"start,attr,omitempty"`
	Duration  string   `xml:"duration,attr"`
	Format    string   `xml:"format,attr,omitempty"`
	TCFormat  string   `xml:"tcFormat,attr,omitempty"`
	SrcEnable string   `xml:"srcEnable,attr,omitempty"`
	Titles    []Title  `xml:"title,omitempty"`
}

type Gap struct {
	XMLName  xml.Name `xml:"gap"`
	Name     string   `xml:"name,attr"`
	Offset   string   `xml:"offset,attr"`
	Start    string   `xml:"start,attr"`
	Duration string   `xml:"duration,attr"`
	Titles   []Title  `xml:"title,omitempty"`
}

type Title struct {
	XMLName      xml.Name      `xml:"title"`
	Ref          string        `xml:"ref,attr"`
	Lane         string        `xml:"lane,attr,omitempty"`
	Offset       string        `xml:"offset,attr"`
	Name         string        `xml:"name,attr"`
	Duration     string        `xml:"duration,attr"`
	Text         *TitleText    `xml:"text,omitempty"`
	TextStyleDef *TextStyleDef `xml:"text-style-def,omitempty"`
}

type TitleText struct {
	TextStyle TextStyleRef `xml:"text-style"`
}

type TextStyleRef struct {
	Ref  string `xml:"ref,attr"`
	Text string `xml:",chardata"`
}

type TextStyleDef struct {
	ID        string    `xml:"id,attr"`
	TextStyle TextStyle `xml:"text-style"`
}

type TextStyle struct {
	Font      string `xml:"font,attr"`
	FontSize  string `xml:"fontSize,attr"`
	FontFace  string `xml:"fontFace,attr"`
	FontColor string `xml:"fontColor,attr"`
	Alignment string `xml:"alignment,attr"`
}

package bgg

import "encoding/xml"

// XML structures for decoding BGG API responses.
// Numeric values are kept as text and converted with the tolerant parsers in
// helpers.go, so a single bad attribute never fails a whole document.

// xmlItems is the root element for search results.
type xmlItems struct {
	XMLName xml.Name  `xml:"items"`
	Items   []xmlItem `xml:"item"`
}

// xmlItem represents an item in search results.
type xmlItem struct {
	Type      string        `xml:"type,attr"`
	ID        string        `xml:"id,attr"`
	Names     []xmlNameElem `xml:"name"`
	YearValue *xmlValue     `xml:"yearpublished"`
}

// xmlNameElem represents a name element with type and value attributes.
type xmlNameElem struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

// xmlValue represents an element with a value attribute.
type xmlValue struct {
	Value string `xml:"value,attr"`
}

// xmlThing is the root element for thing (game detail) responses.
type xmlThing struct {
	XMLName xml.Name       `xml:"items"`
	Items   []xmlThingItem `xml:"item"`
}

// xmlThingItem represents a detailed game item.
type xmlThingItem struct {
	Type        string        `xml:"type,attr"`
	ID          string        `xml:"id,attr"`
	Thumbnail   string        `xml:"thumbnail"`
	Image       string        `xml:"image"`
	Names       []xmlNameElem `xml:"name"`
	Description string        `xml:"description"`
	YearValue   xmlValue      `xml:"yearpublished"`
	MinPlayers  xmlValue      `xml:"minplayers"`
	MaxPlayers  xmlValue      `xml:"maxplayers"`
	PlayingTime xmlValue      `xml:"playingtime"`
	MinPlayTime xmlValue      `xml:"minplaytime"`
	MaxPlayTime xmlValue      `xml:"maxplaytime"`
	MinAge      xmlValue      `xml:"minage"`
	Links       []xmlLink     `xml:"link"`
	Statistics  xmlStatistics `xml:"statistics"`
}

// xmlLink represents a link element (designer, category, mechanic, etc.).
type xmlLink struct {
	Type  string `xml:"type,attr"`
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

// xmlStatistics contains game statistics.
type xmlStatistics struct {
	Ratings xmlRatings `xml:"ratings"`
}

// xmlRatings contains rating information.
type xmlRatings struct {
	UsersRated    xmlValue `xml:"usersrated"`
	Average       xmlValue `xml:"average"`
	Ranks         xmlRanks `xml:"ranks"`
	AverageWeight xmlValue `xml:"averageweight"`
}

// xmlRanks contains rank information.
type xmlRanks struct {
	Ranks []xmlRank `xml:"rank"`
}

// xmlRank represents a single rank entry.
type xmlRank struct {
	Type         string `xml:"type,attr"`
	ID           string `xml:"id,attr"`
	Name         string `xml:"name,attr"`
	FriendlyName string `xml:"friendlyname,attr"`
	Value        string `xml:"value,attr"`
}

// xmlHot is the root element for hot list responses.
type xmlHot struct {
	XMLName xml.Name     `xml:"items"`
	Items   []xmlHotItem `xml:"item"`
}

// xmlHotItem represents an item in the hot list.
type xmlHotItem struct {
	ID        string    `xml:"id,attr"`
	Rank      string    `xml:"rank,attr"`
	Thumbnail xmlValue  `xml:"thumbnail"`
	Name      xmlValue  `xml:"name"`
	YearValue *xmlValue `xml:"yearpublished"`
}

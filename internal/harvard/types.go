package harvard

// ObjectPage is one decoded page of the /object endpoint.
type ObjectPage struct {
	Info    PageInfo
	Records []Object
}

// PageInfo mirrors the "info" block returned with every page.
type PageInfo struct {
	TotalRecordsPerQuery int
	TotalRecords         int
	TotalPages           int
	CurrentPage          int // 1-based
	NextCursor           string
	ResponseTime         string
}

// Object is a single artwork record. Optional fields hold their zero value
// when the API omits them.
type Object struct {
	ID    int
	Title string
	URL   string

	AccessionYear       int
	Century             string
	Classification      string
	ContextualTextCount int
	Copyright           string
	CreditLine          string
	Culture             string
	Dated               string
	DateOfFirstPageView string
	DateOfLastPageView  string
	Description         string
	GroupCount          int
	ImageCount          int
	LastUpdate          string
	Medium              string
	MediaCount          int
	ObjectNumber        string
	Period              string
	PrimaryImageURL     string
	Provenance          string
	PublicationCount    int
	Rank                int
	Technique           string
	TotalPageViews      int

	Images []Image
	People []Person
	Colors []Color
}

// Image is one entry of an object's image list.
type Image struct {
	ImageID         int // zero when absent
	IDSID           int
	BaseImageURL    string
	Width           int
	Height          int
	DisplayOrder    int
	AltText         string
	PublicCaption   string
	Format          string
	Date            string
	Copyright       string
	Description     string
	Technique       string
	RenditionNumber string
	IIIFBaseURI     string
}

// Person is a contributor to an object (artist, maker, publisher...).
type Person struct {
	PersonID     int
	Name         string
	DisplayName  string
	Role         string
	DisplayOrder int
	PersonPrefix string
	Culture      string
	DisplayDate  string
	Birthplace   string
	Deathplace   string
}

// Color is one swatch of an object's color analysis.
type Color struct {
	Hex      string
	CSS3     string
	Hue      string
	Percent  float64 // 0..1
	Spectrum string
}

// SameObject reports whether two records describe the same artwork.
// Identity is the record id; the remaining fields are not compared.
func SameObject(a, b Object) bool {
	return a.ID == b.ID
}

// PrimaryImage returns the image with the lowest display order, or false
// when the object has no images.
func (o Object) PrimaryImage() (Image, bool) {
	if len(o.Images) == 0 {
		return Image{}, false
	}
	best := o.Images[0]
	for _, img := range o.Images[1:] {
		if img.DisplayOrder < best.DisplayOrder {
			best = img
		}
	}
	return best, true
}

// PeopleNames returns display names in display order, as delivered.
func (o Object) PeopleNames() []string {
	if len(o.People) == 0 {
		return nil
	}
	names := make([]string, 0, len(o.People))
	for _, p := range o.People {
		names = append(names, p.DisplayName)
	}
	return names
}

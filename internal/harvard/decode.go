package harvard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Wire structs keep required fields as pointers so a missing key can be told
// apart from a zero value. Field names match the API exactly, except for the
// person "prefix" which becomes PersonPrefix on the domain side.

type wirePage struct {
	Info    *wireInfo     `json:"info"`
	Records *[]wireObject `json:"records"`
}

type wireInfo struct {
	TotalRecordsPerQuery *int    `json:"totalrecordsperquery"`
	TotalRecords         *int    `json:"totalrecords"`
	Pages                *int    `json:"pages"`
	Page                 *int    `json:"page"`
	Next                 *string `json:"next"`
	ResponseTime         *string `json:"responsetime"`
}

type wireObject struct {
	ID    *int    `json:"id"`
	Title *string `json:"title"`
	URL   *string `json:"url"`

	AccessionYear       int    `json:"accessionyear"`
	Century             string `json:"century"`
	Classification      string `json:"classification"`
	ContextualTextCount int    `json:"contextualtextcount"`
	Copyright           string `json:"copyright"`
	CreditLine          string `json:"creditline"`
	Culture             string `json:"culture"`
	Dated               string `json:"dated"`
	DateOfFirstPageView string `json:"dateoffirstpageview"`
	DateOfLastPageView  string `json:"dateoflastpageview"`
	Description         string `json:"description"`
	GroupCount          int    `json:"groupcount"`
	ImageCount          int    `json:"imagecount"`
	LastUpdate          string `json:"lastupdate"`
	Medium              string `json:"medium"`
	MediaCount          int    `json:"mediacount"`
	ObjectNumber        string `json:"objectnumber"`
	Period              string `json:"period"`
	PrimaryImageURL     string `json:"primaryimageurl"`
	Provenance          string `json:"provenance"`
	PublicationCount    int    `json:"publicationcount"`
	Rank                int    `json:"rank"`
	Technique           string `json:"technique"`
	TotalPageViews      int    `json:"totalpageviews"`

	Images []wireImage  `json:"images"`
	People []wirePerson `json:"people"`
	Colors []wireColor  `json:"colors"`
}

type wireImage struct {
	DisplayOrder *int    `json:"displayorder"`
	BaseImageURL *string `json:"baseimageurl"`
	Width        *int    `json:"width"`
	Height       *int    `json:"height"`

	ImageID         int    `json:"imageid"`
	IDSID           int    `json:"idsid"`
	AltText         string `json:"alttext"`
	PublicCaption   string `json:"publiccaption"`
	Format          string `json:"format"`
	Date            string `json:"date"`
	Copyright       string `json:"copyright"`
	Description     string `json:"description"`
	Technique       string `json:"technique"`
	RenditionNumber string `json:"renditionnumber"`
	IIIFBaseURI     string `json:"iiifbaseuri"`
}

type wirePerson struct {
	Name         *string `json:"name"`
	PersonID     *int    `json:"personid"`
	Role         *string `json:"role"`
	DisplayOrder *int    `json:"displayorder"`
	DisplayName  *string `json:"displayname"`

	Prefix      string `json:"prefix"`
	Culture     string `json:"culture"`
	DisplayDate string `json:"displaydate"`
	Birthplace  string `json:"birthplace"`
	Deathplace  string `json:"deathplace"`
}

type wireColor struct {
	Color    *string  `json:"color"`
	CSS3     *string  `json:"css3"`
	Hue      *string  `json:"hue"`
	Percent  *float64 `json:"percent"`
	Spectrum *string  `json:"spectrum"`
}

// DecodeObjectPage parses a raw /object response body. Any syntax error, type
// mismatch or missing required field is reported as a *DecodingError.
func DecodeObjectPage(data []byte) (*ObjectPage, error) {
	var raw wirePage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodingError{Path: jsonPath(err), Err: err}
	}
	if raw.Info == nil {
		return nil, missing("info")
	}
	info, err := raw.Info.toDomain()
	if err != nil {
		return nil, err
	}
	if raw.Records == nil {
		return nil, missing("records")
	}

	records := make([]Object, 0, len(*raw.Records))
	for i, w := range *raw.Records {
		obj, err := w.toDomain(fmt.Sprintf("records[%d]", i))
		if err != nil {
			return nil, err
		}
		records = append(records, obj)
	}
	return &ObjectPage{Info: info, Records: records}, nil
}

func (w *wireInfo) toDomain() (PageInfo, error) {
	switch {
	case w.TotalRecordsPerQuery == nil:
		return PageInfo{}, missing("info.totalrecordsperquery")
	case w.TotalRecords == nil:
		return PageInfo{}, missing("info.totalrecords")
	case w.Pages == nil:
		return PageInfo{}, missing("info.pages")
	case w.Page == nil:
		return PageInfo{}, missing("info.page")
	case w.Next == nil:
		return PageInfo{}, missing("info.next")
	case w.ResponseTime == nil:
		return PageInfo{}, missing("info.responsetime")
	}
	return PageInfo{
		TotalRecordsPerQuery: *w.TotalRecordsPerQuery,
		TotalRecords:         *w.TotalRecords,
		TotalPages:           *w.Pages,
		CurrentPage:          *w.Page,
		NextCursor:           *w.Next,
		ResponseTime:         *w.ResponseTime,
	}, nil
}

func (w wireObject) toDomain(path string) (Object, error) {
	switch {
	case w.ID == nil:
		return Object{}, missing(path + ".id")
	case w.Title == nil:
		return Object{}, missing(path + ".title")
	case w.URL == nil:
		return Object{}, missing(path + ".url")
	}

	obj := Object{
		ID:                  *w.ID,
		Title:               *w.Title,
		URL:                 *w.URL,
		AccessionYear:       w.AccessionYear,
		Century:             w.Century,
		Classification:      w.Classification,
		ContextualTextCount: w.ContextualTextCount,
		Copyright:           w.Copyright,
		CreditLine:          w.CreditLine,
		Culture:             w.Culture,
		Dated:               w.Dated,
		DateOfFirstPageView: w.DateOfFirstPageView,
		DateOfLastPageView:  w.DateOfLastPageView,
		Description:         w.Description,
		GroupCount:          w.GroupCount,
		ImageCount:          w.ImageCount,
		LastUpdate:          w.LastUpdate,
		Medium:              w.Medium,
		MediaCount:          w.MediaCount,
		ObjectNumber:        w.ObjectNumber,
		Period:              w.Period,
		PrimaryImageURL:     w.PrimaryImageURL,
		Provenance:          w.Provenance,
		PublicationCount:    w.PublicationCount,
		Rank:                w.Rank,
		Technique:           w.Technique,
		TotalPageViews:      w.TotalPageViews,
	}

	if len(w.Images) > 0 {
		obj.Images = make([]Image, 0, len(w.Images))
		for i, wi := range w.Images {
			img, err := wi.toDomain(fmt.Sprintf("%s.images[%d]", path, i))
			if err != nil {
				return Object{}, err
			}
			obj.Images = append(obj.Images, img)
		}
	}
	if len(w.People) > 0 {
		obj.People = make([]Person, 0, len(w.People))
		for i, wp := range w.People {
			p, err := wp.toDomain(fmt.Sprintf("%s.people[%d]", path, i))
			if err != nil {
				return Object{}, err
			}
			obj.People = append(obj.People, p)
		}
	}
	if len(w.Colors) > 0 {
		obj.Colors = make([]Color, 0, len(w.Colors))
		for i, wc := range w.Colors {
			c, err := wc.toDomain(fmt.Sprintf("%s.colors[%d]", path, i))
			if err != nil {
				return Object{}, err
			}
			obj.Colors = append(obj.Colors, c)
		}
	}
	return obj, nil
}

func (w wireImage) toDomain(path string) (Image, error) {
	switch {
	case w.BaseImageURL == nil:
		return Image{}, missing(path + ".baseimageurl")
	case w.DisplayOrder == nil:
		return Image{}, missing(path + ".displayorder")
	case w.Width == nil:
		return Image{}, missing(path + ".width")
	case w.Height == nil:
		return Image{}, missing(path + ".height")
	}
	return Image{
		ImageID:         w.ImageID,
		IDSID:           w.IDSID,
		BaseImageURL:    *w.BaseImageURL,
		Width:           *w.Width,
		Height:          *w.Height,
		DisplayOrder:    *w.DisplayOrder,
		AltText:         w.AltText,
		PublicCaption:   w.PublicCaption,
		Format:          w.Format,
		Date:            w.Date,
		Copyright:       w.Copyright,
		Description:     w.Description,
		Technique:       w.Technique,
		RenditionNumber: w.RenditionNumber,
		IIIFBaseURI:     w.IIIFBaseURI,
	}, nil
}

func (w wirePerson) toDomain(path string) (Person, error) {
	switch {
	case w.PersonID == nil:
		return Person{}, missing(path + ".personid")
	case w.Name == nil:
		return Person{}, missing(path + ".name")
	case w.DisplayName == nil:
		return Person{}, missing(path + ".displayname")
	case w.Role == nil:
		return Person{}, missing(path + ".role")
	case w.DisplayOrder == nil:
		return Person{}, missing(path + ".displayorder")
	}
	return Person{
		PersonID:     *w.PersonID,
		Name:         *w.Name,
		DisplayName:  *w.DisplayName,
		Role:         *w.Role,
		DisplayOrder: *w.DisplayOrder,
		PersonPrefix: w.Prefix,
		Culture:      w.Culture,
		DisplayDate:  w.DisplayDate,
		Birthplace:   w.Birthplace,
		Deathplace:   w.Deathplace,
	}, nil
}

func (w wireColor) toDomain(path string) (Color, error) {
	switch {
	case w.Color == nil:
		return Color{}, missing(path + ".color")
	case w.CSS3 == nil:
		return Color{}, missing(path + ".css3")
	case w.Hue == nil:
		return Color{}, missing(path + ".hue")
	case w.Percent == nil:
		return Color{}, missing(path + ".percent")
	case w.Spectrum == nil:
		return Color{}, missing(path + ".spectrum")
	}
	return Color{
		Hex:      *w.Color,
		CSS3:     *w.CSS3,
		Hue:      *w.Hue,
		Percent:  *w.Percent,
		Spectrum: *w.Spectrum,
	}, nil
}

func missing(path string) error {
	return &DecodingError{Path: path, Err: errMissingField}
}

func jsonPath(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	return ""
}

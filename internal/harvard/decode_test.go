package harvard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "object_page.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestDecodeObjectPage_Fixture(t *testing.T) {
	page, err := DecodeObjectPage(loadFixture(t))
	if err != nil {
		t.Fatalf("DecodeObjectPage returned error: %v", err)
	}

	if page.Info.TotalPages != 8195 || page.Info.CurrentPage != 1 || page.Info.TotalRecords != 204851 {
		t.Fatalf("info = %#v", page.Info)
	}
	if page.Info.ResponseTime != "412 ms" || !strings.Contains(page.Info.NextCursor, "page=2") {
		t.Fatalf("info cursor/time = %q / %q", page.Info.NextCursor, page.Info.ResponseTime)
	}
	if len(page.Records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(page.Records))
	}

	obj := page.Records[0]
	if obj.ID != 299843 || obj.Dated != "1888" || obj.Classification != "Paintings" {
		t.Fatalf("record = %#v", obj)
	}
	if obj.Period != "" {
		t.Fatalf("null period = %q, want empty", obj.Period)
	}
	if len(obj.Images) != 2 || obj.Images[0].ImageID != 478554 || obj.Images[1].ImageID != 0 {
		t.Fatalf("images = %#v", obj.Images)
	}
	if obj.Images[0].AltText != "" || obj.Images[0].PublicCaption != "Front" {
		t.Fatalf("image text fields = %#v", obj.Images[0])
	}
	if len(obj.People) != 1 || obj.People[0].PersonPrefix != "Attributed to" {
		t.Fatalf("people = %#v", obj.People)
	}
	if len(obj.Colors) != 2 || obj.Colors[0].Percent != 0.31 || obj.Colors[1].Hue != "Orange" {
		t.Fatalf("colors = %#v", obj.Colors)
	}

	bare := page.Records[1]
	if len(bare.Images) != 0 || len(bare.People) != 0 || len(bare.Colors) != 0 {
		t.Fatalf("bare record should have empty sequences: %#v", bare)
	}
}

func TestDecodeObjectPage_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		body string
		path string
	}{
		{
			name: "missing totalrecords",
			body: `{"info":{"totalrecordsperquery":25,"pages":1,"page":1,"next":"","responsetime":"1 ms"},"records":[]}`,
			path: "info.totalrecords",
		},
		{
			name: "missing info",
			body: `{"records":[]}`,
			path: "info",
		},
		{
			name: "missing records",
			body: `{"info":{"totalrecordsperquery":25,"totalrecords":1,"pages":1,"page":1,"next":"","responsetime":"1 ms"}}`,
			path: "records",
		},
		{
			name: "record without title",
			body: `{"info":{"totalrecordsperquery":25,"totalrecords":1,"pages":1,"page":1,"next":"","responsetime":"1 ms"},"records":[{"id":1,"url":"u"}]}`,
			path: "records[0].title",
		},
		{
			name: "record without url",
			body: `{"info":{"totalrecordsperquery":25,"totalrecords":1,"pages":1,"page":1,"next":"","responsetime":"1 ms"},"records":[{"id":1,"title":"t"}]}`,
			path: "records[0].url",
		},
		{
			name: "image without baseimageurl",
			body: `{"info":{"totalrecordsperquery":25,"totalrecords":1,"pages":1,"page":1,"next":"","responsetime":"1 ms"},"records":[{"id":1,"title":"t","url":"u","images":[{"width":1,"height":1,"displayorder":1}]}]}`,
			path: "records[0].images[0].baseimageurl",
		},
		{
			name: "person without displayname",
			body: `{"info":{"totalrecordsperquery":25,"totalrecords":1,"pages":1,"page":1,"next":"","responsetime":"1 ms"},"records":[{"id":1,"title":"t","url":"u","people":[{"personid":1,"name":"n","role":"r","displayorder":1}]}]}`,
			path: "records[0].people[0].displayname",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeObjectPage([]byte(tc.body))
			var decErr *DecodingError
			if !errors.As(err, &decErr) {
				t.Fatalf("err = %v, want *DecodingError", err)
			}
			if decErr.Path != tc.path {
				t.Fatalf("path = %q, want %q", decErr.Path, tc.path)
			}
			if !errors.Is(err, errMissingField) {
				t.Fatalf("err = %v, want errMissingField", err)
			}
		})
	}
}

func TestDecodeObjectPage_RejectsBadSyntaxAndTypes(t *testing.T) {
	if _, err := DecodeObjectPage([]byte(`{"info":`)); !IsDecoding(err) {
		t.Fatalf("truncated body err = %v, want decoding error", err)
	}

	body := `{"info":{"totalrecordsperquery":25,"totalrecords":1,"pages":1,"page":1,"next":"","responsetime":"1 ms"},"records":[{"id":"abc","title":"t","url":"u"}]}`
	_, err := DecodeObjectPage([]byte(body))
	var decErr *DecodingError
	if !errors.As(err, &decErr) {
		t.Fatalf("wrong-typed id err = %v, want *DecodingError", err)
	}
	if !strings.Contains(decErr.Path, "id") {
		t.Fatalf("path = %q, want it to mention id", decErr.Path)
	}
}

func TestObject_PrimaryImageAndNames(t *testing.T) {
	obj := Object{
		Images: []Image{{BaseImageURL: "b", DisplayOrder: 2}, {BaseImageURL: "a", DisplayOrder: 1}},
		People: []Person{{DisplayName: "One"}, {DisplayName: "Two"}},
	}
	img, ok := obj.PrimaryImage()
	if !ok || img.BaseImageURL != "a" {
		t.Fatalf("PrimaryImage = %#v, %v", img, ok)
	}
	if got := obj.PeopleNames(); len(got) != 2 || got[1] != "Two" {
		t.Fatalf("PeopleNames = %v", got)
	}
	if _, ok := (Object{}).PrimaryImage(); ok {
		t.Fatalf("PrimaryImage on empty object should report false")
	}
	if !SameObject(Object{ID: 7, Title: "a"}, Object{ID: 7, Title: "b"}) {
		t.Fatalf("SameObject should compare ids only")
	}
}

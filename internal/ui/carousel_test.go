package ui

import (
	"testing"

	"github.com/five82/curator/internal/harvard"
)

func TestCarousel_OrdersByDisplayOrderAndClamps(t *testing.T) {
	obj := harvard.Object{ID: 7, Images: []harvard.Image{
		{BaseImageURL: "c", DisplayOrder: 3},
		{BaseImageURL: "a", DisplayOrder: 1},
		{BaseImageURL: "b", DisplayOrder: 2},
	}}

	c := newCarousel(obj)
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if img, _ := c.Current(); img.BaseImageURL != "a" {
		t.Fatalf("first image = %q, want a", img.BaseImageURL)
	}
	if c.CanPrev() {
		t.Fatalf("CanPrev on first image = true")
	}
	if c.Prev().Label() != "1/3" {
		t.Fatalf("Prev on first image moved to %s", c.Prev().Label())
	}

	c = c.Next().Next()
	if img, _ := c.Current(); img.BaseImageURL != "c" {
		t.Fatalf("third image = %q, want c", img.BaseImageURL)
	}
	if c.CanNext() {
		t.Fatalf("CanNext on last image = true")
	}
	if got := c.Next().Label(); got != "3/3" {
		t.Fatalf("Next on last image = %s, want 3/3", got)
	}

	// The source object is untouched.
	if obj.Images[0].BaseImageURL != "c" {
		t.Fatalf("newCarousel reordered the object's images")
	}
}

func TestCarousel_Empty(t *testing.T) {
	var c carousel
	if _, ok := c.Current(); ok {
		t.Fatalf("Current on empty carousel ok = true")
	}
	if c.CanNext() || c.CanPrev() {
		t.Fatalf("empty carousel can move")
	}
	if c.Label() != "no images" {
		t.Fatalf("Label = %q", c.Label())
	}
}

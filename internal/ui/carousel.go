package ui

import (
	"fmt"
	"sort"

	"github.com/five82/curator/internal/harvard"
)

// carousel steps through an artwork's images in display order. The zero
// value is an empty carousel.
type carousel struct {
	objectID int
	images   []harvard.Image
	index    int
}

func newCarousel(obj harvard.Object) carousel {
	images := make([]harvard.Image, len(obj.Images))
	copy(images, obj.Images)
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].DisplayOrder < images[j].DisplayOrder
	})
	return carousel{objectID: obj.ID, images: images}
}

func (c carousel) Len() int { return len(c.images) }

func (c carousel) Current() (harvard.Image, bool) {
	if len(c.images) == 0 {
		return harvard.Image{}, false
	}
	return c.images[c.index], true
}

func (c carousel) CanPrev() bool { return c.index > 0 }

func (c carousel) CanNext() bool { return c.index < len(c.images)-1 }

func (c carousel) Prev() carousel {
	if c.CanPrev() {
		c.index--
	}
	return c
}

func (c carousel) Next() carousel {
	if c.CanNext() {
		c.index++
	}
	return c
}

// Label renders the position as "2/5", or "no images".
func (c carousel) Label() string {
	if len(c.images) == 0 {
		return "no images"
	}
	return fmt.Sprintf("%d/%d", c.index+1, len(c.images))
}

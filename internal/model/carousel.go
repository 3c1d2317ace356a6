// Package model holds the records persisted by the service.
package model

// CarouselImage is one row of the carousel_images table.
//
// ImagePath is where the file was written on disk, e.g.
// "public/uploads/1700000000000-tacos.jpg". The file is served under
// /uploads/ by its base name.
type CarouselImage struct {
	ID        int64  `db:"id" json:"id"`
	ImagePath string `db:"image_path" json:"image_path"`
}

package render

import "image/color"

// FormatSpec describes one output rendition. ResizeLongest scales so the
// longest side matches; Extent pads onto a centered canvas of that exact
// size afterwards. A zero value skips the operation.
type FormatSpec struct {
	Name          string
	Ext           string
	ResizeLongest int
	Extent        [2]int
	Background    color.Color
	JPEGQuality   int
	Watermark     bool
	BrandIcon     bool
	IconOffset    [2]int
}

var white = color.White

// OutputSpecs is the fixed set of renditions generated for every approved
// image. Catalog and e-commerce feeds consume web_large and web_square;
// print_master feeds the print catalog; transparent keeps the cutout for
// compositing.
var OutputSpecs = []FormatSpec{
	{
		Name:          "web_large",
		Ext:           "jpg",
		ResizeLongest: 2000,
		Background:    white,
		JPEGQuality:   90,
		BrandIcon:     true,
		IconOffset:    [2]int{15, 15},
	},
	{
		Name:          "web_square",
		Ext:           "jpg",
		ResizeLongest: 1000,
		Extent:        [2]int{1000, 1000},
		Background:    white,
		JPEGQuality:   85,
	},
	{
		Name:          "thumbnail",
		Ext:           "jpg",
		ResizeLongest: 300,
		Extent:        [2]int{300, 300},
		Background:    white,
		JPEGQuality:   80,
	},
	{
		Name:          "print_master",
		Ext:           "tif",
		ResizeLongest: 3000,
		Background:    white,
	},
	{
		Name: "transparent",
		Ext:  "png",
	},
	{
		Name:          "watermarked_preview",
		Ext:           "jpg",
		ResizeLongest: 1200,
		Background:    white,
		JPEGQuality:   75,
		Watermark:     true,
	},
}

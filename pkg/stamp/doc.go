// Package stamp draws a line of text onto an image at an anchored position,
// with a drop shadow so it stays legible on light and dark backgrounds.
package stamp

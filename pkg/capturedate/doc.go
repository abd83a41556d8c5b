// Package capturedate reads the moment a photo was taken from its embedded
// metadata (EXIF DateTimeOriginal) and renders it as display text.
//
// A missing timestamp is a normal outcome reported as ok == false, never as
// a fatal error.
package capturedate

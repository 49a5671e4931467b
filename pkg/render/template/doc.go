// Package template defines the template engine seam the HTML renderer depends
// on. The pongo2 implementation lives in the gotemplate subpackage.
package template

// Package specs provides a small net/http handler that serves the specs
// widgets of the design form for a given type value.
//
// The handler responds to GET and HEAD requests. It reads the type query
// parameter (plus any current specs selection) and answers with the HTML
// fragment that replaces the specs slot, or with the widget set as JSON when
// the client asks for it via Accept or format=json.
package specs

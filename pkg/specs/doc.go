// Package specs is the dynamic field controller of the design form. The value
// of the "type" selector picks one Variant (Digital, Periodical or Default);
// each variant owns its option set, its rendering rule and the way its inputs
// collapse into the single "specs" payload field.
package specs

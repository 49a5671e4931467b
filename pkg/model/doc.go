// Package model holds the renderer-facing form description (FormModel, Field,
// Option) and the immutable FormState snapshot that every stage of the
// submission pipeline consumes.
package model

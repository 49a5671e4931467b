// Package forms declares the two intake forms served by formrelay: the
// design request form and the registration form.
//
// A Definition bundles everything the submission pipeline and the renderers
// need for one form: the FormModel, the identity hydrator, the validator
// chain, the payload builder, the upstream endpoint and the user-facing
// messages. Definitions are plain values; build them with Design and
// Registration and customise them through Option.
package forms

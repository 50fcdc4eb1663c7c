// Package submission turns a generated response into the form-encoded payload
// the formResponse endpoint accepts, and parses pre-fill links back into
// identifier/value pairs.
//
// Answers map one-to-one onto entry parameters. A checkbox answer repeats its
// identifier once per selected choice. When the "__other_option__" sentinel
// is present the free text travels under "<id>.other_option_response".
package submission

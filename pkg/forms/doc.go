// Package forms exposes the raw form description structure (the Forms API v1
// form resource) together with the Source, Document and Loader contracts used
// to obtain it. Implementations live under internal/forms so the Google API
// client stays hidden from consumers.
package forms

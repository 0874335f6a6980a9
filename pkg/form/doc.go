// Package form holds the per-wizard form state: the record, the errors shown
// to the user and the change-driven validation rules that decide when those
// errors are refreshed.
//
// Records are addressed with dotted paths that follow their JSON field names
// (`phone.countryCode`, `employmentHistory.2.endDate.year`). SetField
// round-trips the record through JSON, so a record that customises its JSON
// encoding (a tagged union, for example) controls how a path write lands.
package form

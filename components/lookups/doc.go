// Package lookups serves the onboarding reference data (categories,
// specialties, skills, languages, countries and phone codes) as JSON options
// for form inputs.
//
// The handler responds to GET and HEAD requests on <route>/<kind> and
// supports query and limit parameters to filter results. Specialties and
// skills are scoped by a category parameter. The backing data comes from the
// embedded catalog unless one is supplied through WithCatalog.
package lookups

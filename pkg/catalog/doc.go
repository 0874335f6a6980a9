// Package catalog provides the reference data used by the onboarding wizards:
// work categories and their specialties, skill suggestions, languages,
// countries and phone dial codes.
//
// The default catalog is embedded from data/catalog.yaml and parsed once.
package catalog

// Package types defines the Store interface and its table interfaces, the
// donation entities (providers, receivers, food listings, claims), report
// results and filters, configuration, and the standard errors for pantry.
//
// Implementations live under internal/; callers depend only on this package.
package types

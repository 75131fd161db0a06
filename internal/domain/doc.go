// Package domain contains the core study group entities, value objects, and
// domain rules of the application. It is independent of any storage or
// delivery mechanism: relationships between entities are held as ids and
// resolved by the store, and ordering of owned collections is represented
// as ordered id slices.
package domain
